// Package metrics holds the Prometheus instruments used across the service.
// All collectors are registered with the global registry, so mounting
// promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeTimeout = "timeout"

	SinkLog      = "log"
	SinkNotifier = "notifier"
)

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Submission attempts that reached the spreadsheet endpoint, by outcome.",
		}, []string{"outcome"})

	ValidationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registration_validation_failures_total",
			Help: "Submit attempts rejected by field validation.",
		})

	SubmitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "registration_submit_duration_seconds",
			Help:    "Latency of the outbound spreadsheet POST.",
			Buckets: prometheus.DefBuckets,
		})

	SideEffectFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_side_effect_failures_total",
			Help: "Best-effort work after a successful submission that failed, by sink.",
		}, []string{"sink"})

	FormSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "registration_form_sessions",
			Help: "Form sessions currently held in memory.",
		})
)

func init() {
	prometheus.MustRegister(
		Submissions,
		ValidationFailures,
		SubmitDuration,
		SideEffectFailures,
		FormSessions,
	)
}
