package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

func TestWriteReplacesByID(t *testing.T) {
	t.Parallel()

	sink := New()
	first := "First Corp"
	second := "Second Corp"

	require.NoError(t, sink.Write(context.Background(), jobs.Record{ID: "rec-1", CompanyName: &first}))
	require.NoError(t, sink.Write(context.Background(), jobs.Record{ID: "rec-1", CompanyName: &second}))

	require.Equal(t, 1, sink.Len())
	rec, ok := sink.Get("rec-1")
	require.True(t, ok)
	require.Equal(t, "Second Corp", *rec.CompanyName)
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	sink := New()
	_, ok := sink.Get("absent")
	require.False(t, ok)
}

func TestConcurrentWrites(t *testing.T) {
	t.Parallel()

	sink := New()
	ids := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = sink.Write(context.Background(), jobs.Record{ID: id})
			}
		}(id)
	}
	wg.Wait()

	require.Equal(t, len(ids), sink.Len())
}
