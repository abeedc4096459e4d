// Package metrics exposes Prometheus collectors for the ingestion service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ingestPostingsTotal        *prometheus.CounterVec
	ingestSinkWritesTotal      *prometheus.CounterVec
	ingestRecordsRejectedTotal prometheus.Counter
	ingestSinksDisabledTotal   *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		ingestPostingsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_postings_total",
				Help: "Total number of postings seen, labeled by result (extracted or skipped).",
			},
			[]string{"result"},
		)

		ingestSinkWritesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_sink_writes_total",
				Help: "Total number of sink write attempts, labeled by sink and status.",
			},
			[]string{"sink", "status"},
		)

		ingestRecordsRejectedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ingest_records_rejected_total",
				Help: "Total records rejected before reaching any sink (missing identifier).",
			},
		)

		ingestSinksDisabledTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_sinks_disabled_total",
				Help: "Sinks disabled for the run after exhausting connection retries.",
			},
			[]string{"sink"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePosting increments the posting counter for the given result.
func ObservePosting(result string) {
	ingestPostingsTotal.WithLabelValues(result).Inc()
}

// ObserveSinkWrite increments the write counter for one sink attempt.
func ObserveSinkWrite(sink, status string) {
	ingestSinkWritesTotal.WithLabelValues(sink, status).Inc()
}

// ObserveRejectedRecord counts a record rejected before any sink write.
func ObserveRejectedRecord() {
	ingestRecordsRejectedTotal.Inc()
}

// ObserveSinkDisabled counts a sink entering degraded mode.
func ObserveSinkDisabled(sink string) {
	ingestSinksDisabledTotal.WithLabelValues(sink).Inc()
}
