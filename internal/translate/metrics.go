package translate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	// statusEmpty marks responses where the provider was up but returned
	// no usable translation.
	statusEmpty = "empty"
)

var (
	translationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linguachat_translation_requests_total",
			Help: "Total number of translation requests",
		},
		[]string{"status"},
	)

	translationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linguachat_translation_request_duration_seconds",
			Help:    "Duration of translation requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"status"},
	)
)

func observeRequest(status string, duration time.Duration) {
	translationRequestsTotal.WithLabelValues(status).Inc()
	translationRequestDuration.WithLabelValues(status).Observe(duration.Seconds())
}
