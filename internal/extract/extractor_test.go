package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

func TestExtractFullPosting(t *testing.T) {
	t.Parallel()

	e := New(&staticIDGen{id: "id-1"}, zap.NewNop())
	rec, ok := e.Extract(jobs.Document{
		"data": map[string]any{
			"create_date":         "2024-03-01T09:30:00+00:00",
			"hiring_organization": "Acme Staffing ",
			"salary_value":        19.0,
			"req_id":              "REQ-77",
			"apply_url":           "https://jobs.example.com/apply/77",
			"full_location":       "saint paul, MN, US",
			"postal_code":         "55101-1234",
		},
	})

	require.True(t, ok)
	require.Equal(t, "id-1", rec.ID)
	require.Equal(t, "Acme Staffing", *rec.CompanyName)
	require.Equal(t, "2024-03-01 09:30:00", rec.PostedAt.Format(jobs.TimeLayout))
	require.Equal(t, "REQ-77", *rec.JobKey)
	require.Equal(t, "https://jobs.example.com/apply/77", *rec.JobPageURL)
	require.InDelta(t, 39520.0, *rec.AnnualSalaryAvg, 0.001)
	require.Equal(t, "St. Paul", *rec.City)
	require.Equal(t, "55101", *rec.Zipcode)
}

func TestExtractSkipsEmptyPayload(t *testing.T) {
	t.Parallel()

	e := New(&staticIDGen{id: "unused"}, zap.NewNop())

	for _, raw := range []jobs.Document{
		{},
		{"data": map[string]any{}},
		{"data": "not an object"},
		{"data": nil},
	} {
		_, ok := e.Extract(raw)
		require.False(t, ok)
	}
}

func TestExtractPartialPosting(t *testing.T) {
	t.Parallel()

	// A payload with unusable fields still yields a record; only the
	// unresolvable fields are nil.
	e := New(&staticIDGen{id: "id-2"}, zap.NewNop())
	rec, ok := e.Extract(jobs.Document{
		"data": map[string]any{
			"create_date": "garbage",
			"postal_code": "ABC",
		},
	})

	require.True(t, ok)
	require.Equal(t, "id-2", rec.ID)
	require.Equal(t, jobs.UnknownCompany, *rec.CompanyName)
	require.Nil(t, rec.PostedAt)
	require.Nil(t, rec.JobKey)
	require.Nil(t, rec.JobPageURL)
	require.Nil(t, rec.AnnualSalaryAvg)
	require.Nil(t, rec.City)
	require.Nil(t, rec.Zipcode)
}

func TestResolveCompanyFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload jobs.Document
		want    string
	}{
		{"hiring organization", jobs.Document{"hiring_organization": "Acme"}, "Acme"},
		{"brand fallback", jobs.Document{"brand": " BrandCo "}, "BrandCo"},
		{"whitespace only falls through", jobs.Document{"hiring_organization": "  ", "brand": "BrandCo"}, "BrandCo"},
		{"sentinel", jobs.Document{}, jobs.UnknownCompany},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := resolveCompany(tc.payload)
			require.NotNil(t, got)
			require.Equal(t, tc.want, *got)
		})
	}
}

func TestResolveJobURLPreference(t *testing.T) {
	t.Parallel()

	payload := jobs.Document{
		"meta_data":     map[string]any{"canonical_url": "https://c.example.com/meta"},
		"apply_url":     "https://c.example.com/apply",
		"canonical_url": "https://c.example.com/top",
	}

	got := resolveJobURL(payload)
	require.NotNil(t, got)
	require.Equal(t, "https://c.example.com/meta", *got)

	delete(payload, "meta_data")
	require.Equal(t, "https://c.example.com/apply", *resolveJobURL(payload))

	delete(payload, "apply_url")
	require.Equal(t, "https://c.example.com/top", *resolveJobURL(payload))

	delete(payload, "canonical_url")
	require.Nil(t, resolveJobURL(payload))
}
