package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/extract"
	"github.com/jobfeeds/jobs-ingest/internal/jobs"
	"github.com/jobfeeds/jobs-ingest/internal/metrics"
)

// Summary is the running tally of one ingestion pass.
type Summary struct {
	// Extracted counts postings that produced a record.
	Extracted int
	// Skipped counts postings with no usable payload.
	Skipped int
	// Rejected counts records refused by the coordinator.
	Rejected int
	// Persisted and Failed count sink writes per sink name.
	Persisted map[string]int
	Failed    map[string]int
}

// Runner drives postings from a source through extraction and
// persistence while keeping a tally that the stats endpoint can read
// concurrently.
type Runner struct {
	source      jobs.Source
	extractor   *extract.Extractor
	coordinator *Coordinator
	logger      *zap.Logger

	mu      sync.Mutex
	summary Summary
}

// NewRunner wires a Runner over the given stages.
func NewRunner(source jobs.Source, extractor *extract.Extractor, coordinator *Coordinator, logger *zap.Logger) *Runner {
	return &Runner{
		source:      source,
		extractor:   extractor,
		coordinator: coordinator,
		logger:      logger,
		summary: Summary{
			Persisted: make(map[string]int),
			Failed:    make(map[string]int),
		},
	}
}

// Run consumes the source to completion, extracting and persisting each
// posting in order, then logs the final tally. The source's error, if
// any, is returned after the tally is logged.
func (r *Runner) Run(ctx context.Context) error {
	err := r.source.Each(ctx, func(doc jobs.Document) error {
		rec, ok := r.extractor.Extract(doc)
		if !ok {
			metrics.ObservePosting("skipped")
			r.track(func(s *Summary) { s.Skipped++ })
			return nil
		}
		metrics.ObservePosting("extracted")
		r.track(func(s *Summary) { s.Extracted++ })

		out := r.coordinator.Persist(ctx, rec)
		r.track(func(s *Summary) {
			if out.Rejected {
				s.Rejected++
				return
			}
			for _, sink := range r.coordinator.sinks {
				if _, failed := out.Errors[sink.Name()]; failed {
					s.Failed[sink.Name()]++
				} else {
					s.Persisted[sink.Name()]++
				}
			}
		})
		return nil
	})

	summary := r.Snapshot()
	r.logger.Info("ingestion pass finished",
		zap.Int("extracted", summary.Extracted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("rejected", summary.Rejected),
		zap.Any("persisted", summary.Persisted),
		zap.Any("failed", summary.Failed),
	)
	return err
}

// Snapshot returns a copy of the current tally.
func (r *Runner) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.summary
	out.Persisted = make(map[string]int, len(r.summary.Persisted))
	for k, v := range r.summary.Persisted {
		out.Persisted[k] = v
	}
	out.Failed = make(map[string]int, len(r.summary.Failed))
	for k, v := range r.summary.Failed {
		out.Failed[k] = v
	}
	return out
}

func (r *Runner) track(fn func(*Summary)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.summary)
}
