// Package metrics exposes the Prometheus collectors recorded by the pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeConfigError = "config_error"
	OutcomePanic       = "panic"
)

// Candidate stages.
const (
	StageRaw      = "raw"
	StageFiltered = "filtered"
)

var (
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_provider_requests_total",
			Help: "Provider searches by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digest_provider_duration_seconds",
			Help:    "Duration of provider searches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"provider"},
	)

	CandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_candidates_total",
			Help: "Candidates seen per pool before and after filtering",
		},
		[]string{"pool", "stage"},
	)

	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_pipeline_runs_total",
			Help: "Pipeline runs by outcome (success or error kind)",
		},
		[]string{"outcome"},
	)
)

// RecordProvider counts one adapter call.
func RecordProvider(provider, outcome string, elapsed time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, outcome).Inc()
	ProviderDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// RecordCandidates adds a pool size at a stage.
func RecordCandidates(pool, stage string, n int) {
	CandidatesTotal.WithLabelValues(pool, stage).Add(float64(n))
}

// RecordRun counts a finished pipeline run.
func RecordRun(outcome string) {
	PipelineRunsTotal.WithLabelValues(outcome).Inc()
}
