package jobs

import "context"

// Sink is a persistence backend with an idempotent write contract:
// writing the same record twice leaves one entry keyed by Record.ID
// holding the latest field values.
type Sink interface {
	// Name identifies the sink in logs, metrics, and outcomes.
	Name() string
	// Write upserts one record. Implementations must not retain rec.
	Write(ctx context.Context, rec Record) error
	// Close releases the sink's connection resources.
	Close(ctx context.Context) error
}

// Source supplies raw postings, one Document per job.
type Source interface {
	// Each invokes fn for every posting. A non-nil error from fn stops
	// iteration and is returned unchanged.
	Each(ctx context.Context, fn func(doc Document) error) error
}

// IDGenerator mints record identifiers. jobKey is the source-provided
// requisition identifier, empty when the posting has none; strategies
// that cannot use it must still return a unique ID.
type IDGenerator interface {
	NewID(jobKey string) (string, error)
}
