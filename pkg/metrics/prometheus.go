package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	usage        *prometheus.GaugeVec
	score        prometheus.Gauge
	recs         prometheus.Gauge
	points       prometheus.Gauge
	loading      prometheus.Gauge
}

// New registers the dashboard collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "energy_status_fetches_total",
				Help: "Status fetch cycles by result",
			},
			[]string{"result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "energy_errors_total",
				Help: "Errors encountered by kind",
			},
			[]string{"kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "energy_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		usage: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "energy_usage_kwh",
				Help: "Last reported usage by kind (current, expected)",
			},
			[]string{"kind"},
		),
		score: f.NewGauge(prometheus.GaugeOpts{
			Name: "energy_efficiency_score",
			Help: "Last reported efficiency score (0-100)",
		}),
		recs: f.NewGauge(prometheus.GaugeOpts{
			Name: "energy_recommendations",
			Help: "Number of recommendations in the last status",
		}),
		points: f.NewGauge(prometheus.GaugeOpts{
			Name: "energy_prediction_points",
			Help: "Number of prediction points in the last status",
		}),
		loading: f.NewGauge(prometheus.GaugeOpts{
			Name: "energy_dashboard_loading",
			Help: "1 until the first fetch cycle completes",
		}),
	}
}

// RecordFetch counts one completed fetch cycle; result is "ok" or "error".
func (r *Recorder) RecordFetch(result string) {
	r.fetchesTotal.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordSnapshot mirrors the last successful status into gauges.
func (r *Recorder) RecordSnapshot(current, expected, score float64, recommendations, predictions int) {
	r.usage.WithLabelValues("current").Set(current)
	r.usage.WithLabelValues("expected").Set(expected)
	r.score.Set(score)
	r.recs.Set(float64(recommendations))
	r.points.Set(float64(predictions))
}

func (r *Recorder) SetLoading(loading bool) {
	if loading {
		r.loading.Set(1)
		return
	}
	r.loading.Set(0)
}
