package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gol"

// Metrics are the prometheus collectors a Game reports to
type Metrics struct {
	Generations  prometheus.Counter
	Population   prometheus.Gauge
	StepDuration prometheus.Histogram
	Stuck        prometheus.Gauge
	Mutations    *prometheus.CounterVec
	Loads        *prometheus.CounterVec
}

// NewMetrics registers the game collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Generations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Number of generations stepped.",
		}),
		Population: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "population",
			Help:      "Alive cells in the current generation.",
		}),
		StepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "step_duration_seconds",
			Help:      "Time spent computing one generation.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		Stuck: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stuck",
			Help:      "1 when the last step produced an all-dead or unchanged generation.",
		}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "mutations_total",
			Help:      "Committed grid mutations by kind.",
		}, []string{"kind"}),
		Loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pattern_loads_total",
			Help:      "RLE pattern loads by result.",
		}, []string{"result"}),
	}
}
