// Package extract maps raw posting documents into normalized job records.
//
// Every resolver recovers locally: a field that cannot be parsed becomes
// nil on the record and is logged, never an error. The only case that
// produces no record at all is a posting with no payload.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// Extractor converts one raw posting into a jobs.Record.
type Extractor struct {
	idGen  jobs.IDGenerator
	logger *zap.Logger
}

// New constructs an Extractor.
func New(idGen jobs.IDGenerator, logger *zap.Logger) *Extractor {
	return &Extractor{idGen: idGen, logger: logger}
}

// Extract resolves all record fields from a raw posting. The second
// return value is false when the posting carries no nested payload and
// must be skipped entirely.
func (e *Extractor) Extract(raw jobs.Document) (jobs.Record, bool) {
	payload := raw.Child("data")
	if len(payload) == 0 {
		e.logger.Info("skipping posting with empty payload")
		return jobs.Record{}, false
	}

	jobKey := resolveJobKey(payload)
	keyArg := ""
	if jobKey != nil {
		keyArg = *jobKey
	}
	id, err := e.idGen.NewID(keyArg)
	if err != nil {
		e.logger.Error("mint record id", zap.Error(err))
		return jobs.Record{}, false
	}

	return jobs.Record{
		ID:              id,
		CompanyName:     resolveCompany(payload),
		PostedAt:        e.resolveDate(payload),
		JobKey:          jobKey,
		JobPageURL:      resolveJobURL(payload),
		AnnualSalaryAvg: e.resolveSalary(payload),
		City:            resolveCity(payload),
		Zipcode:         e.resolveZipcode(payload),
	}, true
}

// resolveCompany prefers hiring_organization, then brand, falling back
// to the sentinel so the field is never empty.
func resolveCompany(payload jobs.Document) *string {
	for _, key := range []string{"hiring_organization", "brand"} {
		if v, ok := payload.String(key); ok {
			if name := strings.TrimSpace(v); name != "" {
				return &name
			}
		}
	}
	name := jobs.UnknownCompany
	return &name
}

func resolveJobKey(payload jobs.Document) *string {
	if v, ok := payload.String("req_id"); ok && v != "" {
		return &v
	}
	return nil
}

// resolveJobURL checks candidate locations in order of preference.
func resolveJobURL(payload jobs.Document) *string {
	meta := payload.Child("meta_data")
	candidates := []func() (string, bool){
		func() (string, bool) { return meta.String("canonical_url") },
		func() (string, bool) { return payload.String("apply_url") },
		func() (string, bool) { return payload.String("canonical_url") },
	}
	for _, candidate := range candidates {
		if v, ok := candidate(); ok && v != "" {
			return &v
		}
	}
	return nil
}
