package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFlowMetrics() {
	r.FlowEdgesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowgraph_edges_total",
			Help: "Edge insertion outcomes on flow graphs (inserted, rejected, pruned)",
		},
		[]string{"result"},
	)

	r.FlowMergesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "flowgraph_merges_total",
			Help: "Total number of flow graph merges",
		},
	)

	r.FlowVertices = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flowgraph_flow_vertices",
			Help:    "Number of actions in built flow graphs",
			Buckets: []float64{5, 10, 20, 40, 80, 160},
		},
	)
}

func (r *Registry) initDOTMetrics() {
	r.DOTParseTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowgraph_dot_parse_total",
			Help: "DOT documents parsed, by status",
		},
		[]string{"status"},
	)
}
