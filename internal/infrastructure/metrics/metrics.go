// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var durationBuckets = []float64{
	0.001, // 1ms
	0.005, // 5ms
	0.01,  // 10ms
	0.025, // 25ms
	0.05,  // 50ms
	0.1,   // 100ms
	0.25,  // 250ms
	0.5,   // 500ms
	1.0,   // 1s
	2.5,   // 2.5s
	5.0,   // 5s
	10.0,  // 10s
}

var (
	// HTTPRequestDuration tracks request latency per matched route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raqueto_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: durationBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "raqueto_http_requests_in_flight",
		Help: "Number of HTTP requests currently being served",
	})

	// WorkflowDuration tracks workflow runs; outcome is success or failure
	WorkflowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raqueto_workflow_duration_seconds",
			Help:    "Duration of workflow runs in seconds",
			Buckets: durationBuckets,
		},
		[]string{"workflow", "outcome"},
	)

	WorkflowCompensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raqueto_workflow_compensations_total",
			Help: "Number of workflow steps rolled back",
		},
		[]string{"workflow", "step", "outcome"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raqueto_emails_sent_total",
			Help: "Transactional emails by template and outcome",
		},
		[]string{"template", "outcome"},
	)

	StorefrontRevalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raqueto_storefront_revalidations_total",
			Help: "Storefront cache revalidation requests by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest records the duration of a served request
func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// RecordWorkflow records the duration of a workflow run
func RecordWorkflow(workflow string, err error, d time.Duration) {
	WorkflowDuration.WithLabelValues(workflow, outcome(err)).Observe(d.Seconds())
}

func RecordCompensation(workflow, step string, err error) {
	WorkflowCompensations.WithLabelValues(workflow, step, outcome(err)).Inc()
}

func RecordEmail(template string, err error) {
	EmailsSent.WithLabelValues(template, outcome(err)).Inc()
}

func RecordRevalidation(result string) {
	StorefrontRevalidations.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
