// Package source provides feed adapters that supply raw posting
// documents to the pipeline.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// feedFile is the on-disk shape of one exported feed: a single JSON
// object whose "jobs" array holds the raw posting documents.
type feedFile struct {
	Jobs []jobs.Document `json:"jobs"`
}

// Feed reads posting documents from local JSON feed files. A file that
// cannot be read or parsed is logged and skipped; the remaining files
// are still processed.
type Feed struct {
	paths  []string
	logger *zap.Logger
}

// NewFeed returns a Feed over the given file paths.
func NewFeed(paths []string, logger *zap.Logger) *Feed {
	return &Feed{paths: paths, logger: logger}
}

// Each invokes fn for every posting document in every readable feed
// file, in file order. Iteration stops early when fn returns an error
// or the context is cancelled.
func (f *Feed) Each(ctx context.Context, fn func(jobs.Document) error) error {
	for _, path := range f.paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			f.logger.Warn("skipping unreadable feed file",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		var feed feedFile
		if err := json.Unmarshal(raw, &feed); err != nil {
			f.logger.Warn("skipping malformed feed file",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		for _, doc := range feed.Jobs {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("feed interrupted: %w", err)
			}
			if err := fn(doc); err != nil {
				return err
			}
		}
	}
	return nil
}
