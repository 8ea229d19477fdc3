package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "clinic_client"

// Metrics counts client traffic and refresh activity.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
	Queued    prometheus.Counter
}

// NewMetrics creates the client collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Total number of API calls by method and response status",
			},
			[]string{"method", "status"},
		),
		Refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "refresh_total",
				Help:      "Total number of token refresh calls by result",
			},
			[]string{"result"},
		),
		Queued: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "refresh_queued_total",
				Help:      "Total number of requests queued behind an in-flight refresh",
			},
		),
	}
}

func (m *Metrics) recordRequest(method, status string) {
	m.Requests.WithLabelValues(method, status).Inc()
}

func (m *Metrics) recordRefresh(result string) {
	m.Refreshes.WithLabelValues(result).Inc()
}
