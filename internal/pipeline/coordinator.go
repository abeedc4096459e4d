// Package pipeline runs extraction and coordinates writes across the
// configured sinks.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
	"github.com/jobfeeds/jobs-ingest/internal/metrics"
)

// Outcome reports what happened to one record across all sinks.
type Outcome struct {
	// Rejected is set when the record carried no ID and was not offered
	// to any sink.
	Rejected bool
	// Errors holds the write failure per sink name. Sinks that accepted
	// the record do not appear.
	Errors map[string]error
}

// Coordinator writes each record to every sink in order. Sinks are
// isolated from each other: a failure in one is recorded and the rest
// still receive the record.
type Coordinator struct {
	sinks  []jobs.Sink
	logger *zap.Logger
}

// NewCoordinator returns a Coordinator over the given sinks. The slice
// order is the write order.
func NewCoordinator(sinks []jobs.Sink, logger *zap.Logger) *Coordinator {
	return &Coordinator{sinks: sinks, logger: logger}
}

// Sinks reports how many sinks are attached.
func (c *Coordinator) Sinks() int { return len(c.sinks) }

// Persist offers the record to every sink sequentially and reports the
// per-sink result. A record without an ID is rejected outright.
func (c *Coordinator) Persist(ctx context.Context, rec jobs.Record) Outcome {
	if rec.ID == "" {
		metrics.ObserveRejectedRecord()
		c.logger.Warn("rejecting record without id",
			zap.Any("record", rec.Fields()),
		)
		return Outcome{Rejected: true}
	}

	out := Outcome{Errors: make(map[string]error)}
	for _, sink := range c.sinks {
		if err := sink.Write(ctx, rec); err != nil {
			metrics.ObserveSinkWrite(sink.Name(), "error")
			c.logger.Error("sink write failed",
				zap.String("sink", sink.Name()),
				zap.Any("record", rec.Fields()),
				zap.Error(err),
			)
			out.Errors[sink.Name()] = err
			continue
		}
		metrics.ObserveSinkWrite(sink.Name(), "ok")
	}
	return out
}

// Close closes every sink, collecting all failures.
func (c *Coordinator) Close(ctx context.Context) error {
	var errs []error
	for _, sink := range c.sinks {
		if err := sink.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}
