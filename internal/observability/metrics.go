package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	assessRequestsTotal  *prometheus.CounterVec
	assessLatencySeconds *prometheus.HistogramVec
	assessErrorsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the assessment API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		assessRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essaymark_requests_total",
			Help: "Total number of assessment API requests served.",
		}, []string{"method", "route", "status"})

		assessLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "essaymark_latency_seconds",
			Help:    "Latency distribution for assessment API requests.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		}, []string{"method", "route"})

		assessErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essaymark_errors_total",
			Help: "Total number of error responses returned by the assessment API.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(assessRequestsTotal, assessLatencySeconds, assessErrorsTotal)
	})
}

// AssessRequests exposes the counter for assessment requests.
func AssessRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return assessRequestsTotal
}

// AssessLatency exposes the latency histogram for assessment requests.
func AssessLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return assessLatencySeconds
}

// AssessErrors exposes the counter for assessment error responses.
func AssessErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return assessErrorsTotal
}
