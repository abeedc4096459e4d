package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()

	// Helpers must not panic once Init has run.
	ObservePosting("extracted")
	ObservePosting("skipped")
	ObserveSinkWrite("postgres", "ok")
	ObserveSinkWrite("redis", "error")
	ObserveRejectedRecord()
	ObserveSinkDisabled("mongo")
}

func TestHandlerServesCollectors(t *testing.T) {
	Init()
	ObserveSinkWrite("postgres", "ok")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics endpoint returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ingest_sink_writes_total") {
		t.Fatalf("expected ingest_sink_writes_total in metrics output")
	}
}
