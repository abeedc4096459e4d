package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
	"github.com/jobfeeds/jobs-ingest/internal/metrics"
)

// Connect dials a sink with a bounded number of attempts and a fixed
// delay between them. When every attempt fails the sink is disabled for
// the run and a nil sink is returned: ingestion proceeds degraded on
// the remaining sinks rather than aborting.
func Connect(ctx context.Context, name string, attempts int, delay time.Duration, dial func(context.Context) (jobs.Sink, error), logger *zap.Logger) jobs.Sink {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		sink, err := dial(ctx)
		if err == nil {
			if attempt > 1 {
				logger.Info("sink connected after retry",
					zap.String("sink", name),
					zap.Int("attempt", attempt),
				)
			}
			return sink
		}
		lastErr = err
		logger.Warn("sink connection failed",
			zap.String("sink", name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			metrics.ObserveSinkDisabled(name)
			logger.Warn("sink disabled, connect cancelled",
				zap.String("sink", name),
				zap.Error(ctx.Err()),
			)
			return nil
		}
	}

	metrics.ObserveSinkDisabled(name)
	logger.Warn("sink disabled for this run",
		zap.String("sink", name),
		zap.Error(lastErr),
	)
	return nil
}
