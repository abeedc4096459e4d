package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

func TestNormalizeCity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Mcallen", "McAllen"},
		{"saint paul", "St. Paul"},
		{"st. louis", "St. Louis"},
		{"CDG Airport Zone", "CDG Airport Zone"},
		{"north las vegas", "North Las Vegas"},
		{"aix en provence", "Aix en Provence"},
		{"la crosse", "La Crosse"},
		{"winston-salem", "Winston-Salem"},
		{"  austin  ", "Austin"},
		{"NEW YORK", "New York"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got := normalizeCity(tc.in)
			require.NotNil(t, got)
			require.Equal(t, tc.want, *got)
		})
	}
}

func TestNormalizeCityEmpty(t *testing.T) {
	t.Parallel()

	require.Nil(t, normalizeCity(""))
	require.Nil(t, normalizeCity("   "))
}

func TestResolveCityPrefersFullLocation(t *testing.T) {
	t.Parallel()

	got := resolveCity(jobs.Document{
		"full_location": "Mcallen, TX, US",
		"city":          "houston",
	})
	require.NotNil(t, got)
	require.Equal(t, "McAllen", *got)
}

func TestResolveCityFallsBackToCityField(t *testing.T) {
	t.Parallel()

	got := resolveCity(jobs.Document{"city": "saint paul"})
	require.NotNil(t, got)
	require.Equal(t, "St. Paul", *got)

	require.Nil(t, resolveCity(jobs.Document{}))
}
