package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the batch and the report API.
type Metrics struct {
	// Invoice generation
	InvoicesGenerated prometheus.Counter
	InvoicesFailed    prometheus.Counter

	// Email dispatch
	EmailsSent   prometheus.Counter
	EmailsFailed prometheus.Counter

	// Batch runs
	BatchRuns     *prometheus.CounterVec // labelled by outcome: done|aborted
	BatchDuration prometheus.Histogram

	// HTTP (report API)
	HTTPRequests *prometheus.CounterVec // labelled by method, path, status
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics registers all metrics with reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		InvoicesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "snackspace_invoices_generated_total",
			Help: "Invoices successfully generated",
		}),
		InvoicesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "snackspace_invoices_failed_total",
			Help: "Invoices marked FAILED during generation",
		}),
		EmailsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "snackspace_emails_sent_total",
			Help: "Outbox emails delivered",
		}),
		EmailsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "snackspace_emails_failed_total",
			Help: "Outbox emails rejected by the transport",
		}),
		BatchRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snackspace_batch_runs_total",
			Help: "Batch runs by outcome",
		}, []string{"outcome"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snackspace_batch_duration_seconds",
			Help:    "Wall-clock duration of a batch run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snackspace_http_requests_total",
			Help: "Report API requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snackspace_http_request_duration_seconds",
			Help:    "Report API request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}
