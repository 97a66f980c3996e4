package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the query pipeline.
// A single instance is created by the bootstrap container and shared.
type Metrics struct {
	QueriesTotal       *prometheus.CounterVec
	StepDuration       *prometheus.HistogramVec
	DocumentsRetrieved prometheus.Histogram
	LLMFailures        *prometheus.CounterVec
	SearchFailures     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Queries processed, labeled by assistant and detected language.",
		}, []string{"assistant", "language"}),

		StepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assistant_step_duration_seconds",
			Help:    "Wall time per pipeline step.",
			Buckets: prometheus.DefBuckets,
		}, []string{"step"}),

		DocumentsRetrieved: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assistant_documents_retrieved",
			Help:    "Documents returned per retrieval.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}),

		LLMFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_llm_failures_total",
			Help: "LLM call failures, labeled by step.",
		}, []string{"step"}),

		SearchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "assistant_search_failures_total",
			Help: "Vector search failures.",
		}),
	}
}
