// Package metrics exposes prometheus metrics for the harness.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/soltools/sol-tester/types"
)

const (
	MetricsNamespace = "soltester"
)

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of harness errors",
	}, []string{
		"error",
	})

	casesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "cases_total",
		Help:      "Count of executed test cases",
	}, []string{
		"run_id",
		"mode",
		"result",
	})

	runResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_results",
		Help:      "Result of whole suite runs",
	}, []string{
		"run_id",
		"result",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of whole suite runs",
	}, []string{
		"run_id",
	})
)

// RecordError increments the error counter for a named harness error.
func RecordError(name string) {
	errorsTotal.WithLabelValues(name).Inc()
}

// RecordCase records the outcome of one executed test case.
func RecordCase(runID string, mode types.Mode, status types.TestStatus) {
	casesTotal.WithLabelValues(runID, mode.String(), string(status)).Inc()
}

// RecordRun records the aggregate outcome of one suite run.
func RecordRun(runID string, status types.TestStatus, duration time.Duration) {
	runResults.WithLabelValues(runID, string(status)).Set(1)
	runDuration.WithLabelValues(runID).Set(duration.Seconds())
}
