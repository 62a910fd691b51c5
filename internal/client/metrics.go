package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics registers the client collectors on reg. A nil reg leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fbconsole",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fbconsole",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// observe records one finished request. outcome is the status class
// (2xx, 4xx, ...) or the failure kind when no status arrived.
func (m *metrics) observe(method, outcome string, start time.Time) {
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
