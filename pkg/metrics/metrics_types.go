package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the flow graph engine
type Registry struct {
	// Flow construction metrics
	FlowEdgesTotal  *prometheus.CounterVec
	FlowMergesTotal prometheus.Counter
	FlowVertices    prometheus.Histogram

	// Comparison metrics
	ComparisonsTotal   *prometheus.CounterVec
	ComparisonDuration prometheus.Histogram
	NodeScore          prometheus.Histogram
	EdgeScore          prometheus.Histogram
	MatchedVertices    prometheus.Histogram

	// Interchange metrics
	DOTParseTotal *prometheus.CounterVec

	// Evaluation metrics
	EvaluationRunsTotal *prometheus.CounterVec
	EvaluationDuration  prometheus.Histogram

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
// Each registry owns its own prometheus.Registry so tests can run in isolation.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initFlowMetrics()
	r.initComparisonMetrics()
	r.initDOTMetrics()
	r.initEvaluationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
