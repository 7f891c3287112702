package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordcloud",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wordcloud",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordcloud",
			Subsystem: "generator",
			Name:      "generations_total",
			Help:      "Word cloud generations by outcome",
		},
		[]string{"outcome"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wordcloud",
			Subsystem: "generator",
			Name:      "render_duration_seconds",
			Help:      "Time spent in the layout engine",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

func RecordGeneration(outcome string) {
	GenerationsTotal.WithLabelValues(outcome).Inc()
}

func RecordRender(durationSec float64) {
	RenderDuration.Observe(durationSec)
}
