package flow

import (
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
)

// PairClassifier decides whether dst depends on src. The heuristic flow is
// available as context for feature extraction.
type PairClassifier interface {
	Depends(src, dst *Action, heuristic *FlowGraph) bool
}

// Pair is an ordered (source, target) action id pair
type Pair struct {
	Source int `json:"source" validate:"gte=0"`
	Target int `json:"target" validate:"gtfield=Source"`
}

// PairSet is a PairClassifier backed by precomputed decisions, such as the
// output of an offline dependency classifier.
type PairSet map[Pair]struct{}

// NewPairSet builds a PairSet from pairs
func NewPairSet(pairs ...Pair) PairSet {
	set := make(PairSet, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}
	return set
}

// Depends reports whether (src, dst) is in the set
func (s PairSet) Depends(src, dst *Action, _ *FlowGraph) bool {
	_, ok := s[Pair{Source: src.ID, Target: dst.ID}]
	return ok
}

// HybridBuilder combines a pairwise classifier with the heuristic builder.
// The classifier proposes edges over every ordered pair of actions, then the
// heuristic flow is merged in to repair what the classifier missed.
type HybridBuilder struct {
	Classifier PairClassifier
	Heuristic  *HeuristicBuilder
}

// NewHybridBuilder creates a hybrid builder sharing the heuristic's sinks
func NewHybridBuilder(classifier PairClassifier, heuristic *HeuristicBuilder) *HybridBuilder {
	return &HybridBuilder{Classifier: classifier, Heuristic: heuristic}
}

// Build returns the hybrid flow graph for actions
func (b *HybridBuilder) Build(actions []*Action) *FlowGraph {
	heuristic := b.Heuristic
	if heuristic == nil {
		heuristic = &HeuristicBuilder{}
	}
	logger := logging.OrDefault(heuristic.Logger)

	heuristicFlow := heuristic.Build(actions)
	flow := NewFlowGraph(WithLogger(logger), WithMetrics(heuristic.Metrics))

	ordered := heuristicFlow.Actions()
	for _, a := range ordered {
		flow.AddVertex(a)
	}

	proposed := 0
	for _, src := range ordered {
		for _, dst := range ordered {
			if src.ID < dst.ID && b.Classifier.Depends(src, dst, heuristicFlow) {
				proposed++
				flow.AddEdge(src, dst)
			}
		}
	}

	flow.MergeFlows(heuristicFlow)
	heuristic.Metrics.RecordFlowBuilt(flow.Len())

	logger.Debug("built hybrid flow",
		logging.Component("hybrid"),
		logging.Int("proposed", proposed),
		logging.Int("edges", flow.EdgeCount()))
	return flow
}
