// Package postgres implements the durable relational sink.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS jobs (
	id              TEXT PRIMARY KEY,
	companyName     TEXT,
	correctDate     TIMESTAMP,
	jobKey          TEXT,
	jobPageUrl      TEXT,
	annualSalaryAvg DECIMAL(12,2),
	city            TEXT,
	zipcode         INTEGER
)`

const upsertSQL = `
INSERT INTO jobs (
	id, companyName, correctDate, jobKey, jobPageUrl, annualSalaryAvg, city, zipcode
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
	companyName = EXCLUDED.companyName,
	correctDate = EXCLUDED.correctDate,
	jobKey = EXCLUDED.jobKey,
	jobPageUrl = EXCLUDED.jobPageUrl,
	annualSalaryAvg = EXCLUDED.annualSalaryAvg,
	city = EXCLUDED.city,
	zipcode = EXCLUDED.zipcode
RETURNING id`

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type txPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// Store upserts job records into the jobs table. Each write runs in its
// own transaction; a failed write is rolled back and reported, leaving
// prior rows untouched.
type Store struct {
	pool      txPool
	logger    *zap.Logger
	persisted atomic.Int64
}

// New connects a Store using the provided config, verifies the
// connection, and creates the jobs table when absent.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := &Store{pool: pool, logger: logger}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewWithPool constructs a store from an existing pool (primarily for
// testing). The schema is not bootstrapped.
func NewWithPool(pool txPool, logger *zap.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Store{pool: pool, logger: logger}, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

// Name identifies the sink.
func (s *Store) Name() string { return "postgres" }

// Write upserts one record keyed by id, last write wins. On success the
// running total of persisted records is logged for observability.
func (s *Store) Write(ctx context.Context, rec jobs.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}

	var upsertedID string
	err = tx.QueryRow(ctx, upsertSQL,
		rec.ID,
		rec.CompanyName,
		rec.PostedAt,
		rec.JobKey,
		rec.JobPageURL,
		rec.AnnualSalaryAvg,
		rec.City,
		zipcodeColumn(rec.Zipcode),
	).Scan(&upsertedID)
	if err != nil {
		s.rollback(ctx, tx)
		return fmt.Errorf("upsert job %s: %w", rec.ID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		s.rollback(ctx, tx)
		return fmt.Errorf("commit upsert for job %s: %w", rec.ID, err)
	}

	total := s.persisted.Add(1)
	s.logger.Info("record persisted",
		zap.String("id", upsertedID),
		zap.Int64("total_persisted", total))
	return nil
}

func (s *Store) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.logger.Error("rollback failed", zap.Error(err))
	}
}

// Persisted returns the number of records durably written this run.
func (s *Store) Persisted() int64 {
	return s.persisted.Load()
}

// Close releases the pool and logs the run total.
func (s *Store) Close(_ context.Context) error {
	s.logger.Info("durable store closing",
		zap.Int64("total_persisted", s.persisted.Load()))
	s.pool.Close()
	return nil
}

// zipcodeColumn converts the validated 5-digit string for the INTEGER
// column; resolution guarantees digits, so a nil result only reflects a
// nil input.
func zipcodeColumn(zip *string) *int32 {
	if zip == nil {
		return nil
	}
	n, err := strconv.ParseInt(*zip, 10, 32)
	if err != nil {
		return nil
	}
	v := int32(n)
	return &v
}
