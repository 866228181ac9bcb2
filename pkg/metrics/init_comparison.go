package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scoreBuckets = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

func (r *Registry) initComparisonMetrics() {
	r.ComparisonsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowgraph_comparisons_total",
			Help: "Total number of graph comparisons",
		},
		[]string{"status"},
	)

	r.ComparisonDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowgraph_comparison_duration_seconds",
			Help:    "Graph comparison duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.NodeScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowgraph_node_score",
			Help:    "Distribution of node alignment scores",
			Buckets: scoreBuckets,
		},
	)

	r.EdgeScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowgraph_edge_score",
			Help:    "Distribution of edge agreement scores",
			Buckets: scoreBuckets,
		},
	)

	r.MatchedVertices = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowgraph_matched_vertices",
			Help:    "Number of corresponded vertex pairs per comparison",
			Buckets: []float64{1, 5, 10, 20, 40, 80},
		},
	)
}

func (r *Registry) initEvaluationMetrics() {
	r.EvaluationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowgraph_evaluation_runs_total",
			Help: "Total number of corpus evaluation runs",
		},
		[]string{"status"},
	)

	r.EvaluationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowgraph_evaluation_duration_seconds",
			Help:    "Corpus evaluation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)
}
