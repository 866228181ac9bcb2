package flow

import (
	"fmt"

	"github.com/dd0wney/cluso-flowgraph/pkg/graph"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
)

// MergeFlows fuses the dependencies of other, a graph derived independently
// over the same actions, into f. Every leaf of f first receives the outgoing
// edges other has for it. Then each remaining leaf is linked to every later
// action sharing an object lemma with it. All insertions go through AddEdge.
//
// Actions of other that are not vertices of f cause a panic, as does a merge
// that leaves f with a cycle.
func (f *FlowGraph) MergeFlows(other *FlowGraph) {
	before := f.stats

	for _, leaf := range f.Leaves() {
		for _, e := range other.g.Outgoing(vertexID(leaf.ID)) {
			target, ok := f.actions[int(e.To)]
			if !ok {
				panic(fmt.Sprintf("flow: merged action %d is not a vertex of this graph", e.To))
			}
			f.AddEdge(leaf, target)
		}
	}

	actions := f.Actions()
	for _, leaf := range f.Leaves() {
		for _, target := range actions {
			if target.ID > leaf.ID && leaf.SharesObjectLemma(target) {
				f.AddEdge(leaf, target)
			}
		}
	}

	if !graph.IsDAG(f.g) {
		panic("flow: merged graph contains a cycle")
	}

	f.metrics.RecordMerge()
	f.logger.Debug("merged flows",
		logging.Int("inserted", f.stats.Inserted-before.Inserted),
		logging.Int("rejected", f.stats.Rejected-before.Rejected),
		logging.Int("pruned", f.stats.Pruned-before.Pruned))
}
