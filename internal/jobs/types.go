// Package jobs defines core types shared across the ingestion pipeline.
package jobs

import "time"

// UnknownCompany is the sentinel stored when a posting names no employer.
const UnknownCompany = "Unknown Company"

// TimeLayout is the canonical wire format for posting timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Record is the normalized output of extraction for one posting.
// Nil pointers mean the field could not be resolved from the source
// document. A Record is never mutated after extraction.
type Record struct {
	ID              string
	CompanyName     *string
	PostedAt        *time.Time
	JobKey          *string
	JobPageURL      *string
	AnnualSalaryAvg *float64
	City            *string
	Zipcode         *string
}

// Fields flattens the record into the serializable map written to the
// cache and document sinks and logged on persistence failures. PostedAt
// is rendered in TimeLayout so every sink sees the same shape.
func (r Record) Fields() map[string]any {
	fields := map[string]any{
		"id":              r.ID,
		"companyName":     r.CompanyName,
		"correctDate":     nil,
		"jobKey":          r.JobKey,
		"jobPageUrl":      r.JobPageURL,
		"annualSalaryAvg": r.AnnualSalaryAvg,
		"city":            r.City,
		"zipcode":         r.Zipcode,
	}
	if r.PostedAt != nil {
		fields["correctDate"] = r.PostedAt.Format(TimeLayout)
	}
	return fields
}
