package extract

import (
	"time"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// Feeds write ISO-8601 with either a colon or compact UTC offset.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// resolveDate parses the posting timestamp. Parse failures are logged
// and yield nil, never an error.
func (e *Extractor) resolveDate(payload jobs.Document) *time.Time {
	raw, ok := payload.String("create_date")
	if !ok || raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	e.logger.Error("unparseable create_date", zap.String("create_date", raw))
	return nil
}
