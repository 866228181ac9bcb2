package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

// Edge insertion outcomes
const (
	EdgeInserted = "inserted"
	EdgeRejected = "rejected"
	EdgePruned   = "pruned"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Record methods are no-ops on a nil *Registry so callers can leave metrics unset.

// RecordEdge records the outcome of a flow graph edge insertion
func (r *Registry) RecordEdge(result string) {
	if r == nil {
		return
	}
	r.FlowEdgesTotal.WithLabelValues(result).Inc()
}

// RecordMerge records a flow graph merge
func (r *Registry) RecordMerge() {
	if r == nil {
		return
	}
	r.FlowMergesTotal.Inc()
}

// RecordFlowBuilt records the size of a finished flow graph
func (r *Registry) RecordFlowBuilt(vertices int) {
	if r == nil {
		return
	}
	r.FlowVertices.Observe(float64(vertices))
}

// RecordComparison records a completed graph comparison
func (r *Registry) RecordComparison(nodeScore, edgeScore float64, matched int, duration time.Duration) {
	if r == nil {
		return
	}
	r.ComparisonsTotal.WithLabelValues(StatusSuccess).Inc()
	r.ComparisonDuration.Observe(duration.Seconds())
	r.NodeScore.Observe(nodeScore)
	r.EdgeScore.Observe(edgeScore)
	r.MatchedVertices.Observe(float64(matched))
}

// RecordComparisonError records a comparison that could not be scored
func (r *Registry) RecordComparisonError() {
	if r == nil {
		return
	}
	r.ComparisonsTotal.WithLabelValues(StatusError).Inc()
}

// RecordDOTParse records the outcome of parsing a DOT document
func (r *Registry) RecordDOTParse(err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.DOTParseTotal.WithLabelValues(StatusError).Inc()
		return
	}
	r.DOTParseTotal.WithLabelValues(StatusSuccess).Inc()
}

// RecordEvaluation records a corpus evaluation run
func (r *Registry) RecordEvaluation(err error, duration time.Duration) {
	if r == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.EvaluationRunsTotal.WithLabelValues(status).Inc()
	r.EvaluationDuration.Observe(duration.Seconds())
}

// WriteText writes every gathered metric in the Prometheus text exposition format
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
