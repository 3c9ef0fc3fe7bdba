// Package metrics provides Prometheus instrumentation for the adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks wall time of backend exchanges by logical
	// endpoint, including exchanges that end in an error envelope.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ollama_mcp_request_duration_seconds",
			Help:    "Wall time of Ollama backend exchanges in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// ToolCallsTotal tracks tool dispatches by outcome. kind is empty on
	// success.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ollama_mcp_tool_calls_total",
			Help: "Total number of tool dispatches by envelope outcome.",
		},
		[]string{"tool", "status", "kind"},
	)

	// GateRejectionsTotal counts dispatches stopped by the
	// not-implemented gate before any network activity.
	GateRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ollama_mcp_gate_rejections_total",
			Help: "Total number of dispatches rejected by the policy gate.",
		},
		[]string{"tool"},
	)
)

// RecordDispatch records one finished tool dispatch.
func RecordDispatch(tool, status, kind string) {
	ToolCallsTotal.WithLabelValues(tool, status, kind).Inc()
}
