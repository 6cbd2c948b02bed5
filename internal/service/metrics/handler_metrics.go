package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HandlerMetrics covers the presentation side: live sessions and renders.
type HandlerMetrics struct {
	Sessions      prometheus.Gauge
	Rejected      *prometheus.CounterVec
	RenderLatency *prometheus.HistogramVec
	RenderCache   *prometheus.CounterVec
}

func NewHandlerMetrics(reg prometheus.Registerer) *HandlerMetrics {
	f := promauto.With(reg)
	return &HandlerMetrics{
		Sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "energy",
			Subsystem: "dashboard",
			Name:      "live_sessions",
			Help:      "Open websocket sessions",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energy",
			Subsystem: "dashboard",
			Name:      "rejected_sessions_total",
			Help:      "Websocket upgrades refused, by reason",
		}, []string{"reason"}),
		RenderLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "energy",
			Subsystem: "dashboard",
			Name:      "render_seconds",
			Help:      "Time spent rendering a view",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"format"}),
		RenderCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energy",
			Subsystem: "dashboard",
			Name:      "render_cache_total",
			Help:      "Render cache lookups by result",
		}, []string{"format", "result"}),
	}
}
