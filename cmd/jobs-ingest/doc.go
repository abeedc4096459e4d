// Package main hosts the job ingestion service entrypoint.
//
// Architecture overview:
//   - Feed source: internal/source.Feed streams raw posting documents out of exported JSON feed files. Files that
//     cannot be read or parsed are logged and skipped so one bad export never sinks a run.
//   - Extraction: internal/extract.Extractor resolves the normalized record fields (company, posting date, salary,
//     city, zipcode, job key, URL) from each document. Resolvers recover locally: an unparseable field becomes nil
//     on the record, only a posting with no payload is skipped outright.
//   - Persistence: internal/pipeline.Coordinator writes every record to each configured sink in order. Sinks are
//     isolated: Postgres is the durable upsert store with a per-record transaction, Redis keeps a one-hour cache
//     entry under job:<id>, and Mongo holds the full document upserted by _id.
//   - Degraded mode: each sink is dialed with bounded retries at startup; a sink that never connects is disabled for
//     the run and the others keep receiving records.
//   - Configuration & plumbing: Viper populates config from env/files; zap provides structured logging; Prometheus
//     counters are exported via /metrics; /v1/stats reports the live ingestion tally.
//
// Quick checklist:
//   - Configure env vars with the INGEST_ prefix: INGEST_SOURCE_PATHS, INGEST_DB_DSN, INGEST_CACHE_ADDR,
//     INGEST_DOCUMENTS_URI, INGEST_CONNECT_ATTEMPTS, INGEST_SERVER_PORT.
//   - Run locally: go run ./cmd/jobs-ingest -config config.yaml (or rely solely on env overrides).
//   - The process reacts to SIGINT/SIGTERM with a graceful drain: the HTTP server and all sinks are closed before
//     exit and the final tally is logged.
package main
