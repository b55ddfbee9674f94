// Package metrics provides Prometheus metrics for the coach server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	SessionsInitialized prometheus.Counter
	SessionsCleared     prometheus.Counter
	MessagesExchanged   prometheus.Counter
	GenerationFallbacks prometheus.Counter
	WorkflowCompletions prometheus.Counter
	RequestsTotal       *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		SessionsInitialized: factory.NewCounter(prometheus.CounterOpts{
			Name: "coach_sessions_initialized_total",
			Help: "Total number of session init operations",
		}),
		SessionsCleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "coach_sessions_cleared_total",
			Help: "Total number of session clear operations",
		}),
		MessagesExchanged: factory.NewCounter(prometheus.CounterOpts{
			Name: "coach_messages_exchanged_total",
			Help: "Total number of user/assistant message pairs exchanged",
		}),
		GenerationFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "coach_generation_fallbacks_total",
			Help: "Total number of assistant replies substituted with fallback text",
		}),
		WorkflowCompletions: factory.NewCounter(prometheus.CounterOpts{
			Name: "coach_workflow_completions_total",
			Help: "Total number of interview workflows reaching the feedback summary",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coach_http_requests_total",
			Help: "Total number of HTTP requests by operation and status",
		}, []string{"operation", "status"}),
	}
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
