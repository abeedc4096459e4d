package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordFields(t *testing.T) {
	t.Parallel()

	company := "Acme"
	posted := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	salary := 39520.0
	rec := Record{
		ID:              "rec-1",
		CompanyName:     &company,
		PostedAt:        &posted,
		AnnualSalaryAvg: &salary,
	}

	fields := rec.Fields()
	require.Equal(t, "rec-1", fields["id"])
	require.Equal(t, &company, fields["companyName"])
	require.Equal(t, "2024-03-01 09:30:00", fields["correctDate"])
	require.Equal(t, &salary, fields["annualSalaryAvg"])

	// Unresolved fields serialize as nulls, not absent keys.
	require.Contains(t, fields, "zipcode")
	require.Nil(t, fields["jobKey"])
}

func TestRecordFieldsNilDate(t *testing.T) {
	t.Parallel()

	fields := Record{ID: "rec-2"}.Fields()
	require.Nil(t, fields["correctDate"])
	require.Nil(t, fields["companyName"])
}
