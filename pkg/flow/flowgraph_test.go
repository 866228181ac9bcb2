package flow

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/cluso-flowgraph/pkg/graph"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
)

// newAction registers an action whose objects are single-token ingredients
func newAction(reg *Registry, verb string, objects ...string) *Action {
	a := reg.NewAction(Token{Text: verb, Lemma: verb})
	for _, o := range objects {
		word := NewTaggedWord(EntityIngredient, Token{Text: o, Lemma: o})
		if err := a.AddObject(word, RoleDirectObject); err != nil {
			panic(err)
		}
	}
	return a
}

// newFlow creates n object-less actions and a flow graph holding them
func newFlow(n int, opts ...Option) (*FlowGraph, []*Action) {
	reg := NewRegistry()
	f := NewFlowGraph(opts...)
	actions := make([]*Action, n)
	for i := range actions {
		actions[i] = newAction(reg, "step")
		f.AddVertex(actions[i])
	}
	return f, actions
}

// dominatedPredecessors lists the predecessors p of target that reach source
// and still hold the direct edge p->target
func dominatedPredecessors(f *FlowGraph, source, target *Action) []uint64 {
	g := f.Digraph()
	var dominated []uint64
	for _, p := range g.Predecessors(uint64(target.ID)) {
		if graph.PathExists(g, p, uint64(source.ID)) {
			dominated = append(dominated, p)
		}
	}
	return dominated
}

func TestFlowGraph_AddVertexIdempotent(t *testing.T) {
	f, actions := newFlow(2)
	f.AddVertex(actions[0])

	if f.Len() != 2 {
		t.Errorf("Expected 2 actions, got %d", f.Len())
	}
}

func TestFlowGraph_DuplicateEdgeRejected(t *testing.T) {
	f, a := newFlow(2)

	edge, ok := f.AddEdge(a[0], a[1])
	if !ok {
		t.Fatal("First AddEdge should succeed")
	}
	if edge != (graph.Edge{From: 0, To: 1}) {
		t.Errorf("Unexpected edge %+v", edge)
	}

	if _, ok := f.AddEdge(a[0], a[1]); ok {
		t.Error("Second AddEdge should be rejected")
	}
	if f.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", f.EdgeCount())
	}
}

func TestFlowGraph_TransitiveEdgeRejected(t *testing.T) {
	f, a := newFlow(3)

	f.AddEdge(a[0], a[1])
	f.AddEdge(a[1], a[2])

	if _, ok := f.AddEdge(a[0], a[2]); ok {
		t.Error("Transitively implied edge should be rejected")
	}
	if f.HasEdge(a[0], a[2]) {
		t.Error("Edge 0->2 should not exist")
	}
}

func TestFlowGraph_DominancePruning(t *testing.T) {
	f, a := newFlow(3)

	f.AddEdge(a[0], a[1])
	if _, ok := f.AddEdge(a[0], a[2]); !ok {
		t.Fatal("AddEdge(0, 2) should succeed")
	}
	if _, ok := f.AddEdge(a[1], a[2]); !ok {
		t.Fatal("AddEdge(1, 2) should succeed")
	}

	if f.HasEdge(a[0], a[2]) {
		t.Error("Edge 0->2 should have been pruned by the chain 0->1->2")
	}
	want := []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}}
	got := f.Edges()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	stats := f.Stats()
	if stats.Inserted != 3 || stats.Pruned != 1 || stats.Rejected != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestFlowGraph_PruningIsLocalToTarget(t *testing.T) {
	f, a := newFlow(3)

	f.AddEdge(a[0], a[2])
	f.AddEdge(a[1], a[2])
	if _, ok := f.AddEdge(a[0], a[1]); !ok {
		t.Fatal("AddEdge(0, 1) should succeed")
	}

	want := []graph.Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 1, To: 2}}
	got := f.Edges()
	if len(got) != len(want) {
		t.Fatalf("Edges() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Edges() = %v, want %v", got, want)
			break
		}
	}
	if d := dominatedPredecessors(f, a[0], a[1]); len(d) != 0 {
		t.Errorf("Dominated predecessors of 1 remain: %v", d)
	}
	if !graph.IsDAG(f.Digraph()) {
		t.Error("Graph should stay acyclic")
	}
}

func TestFlowGraph_CycleRejectedWithoutMutation(t *testing.T) {
	f, a := newFlow(3)
	f.AddEdge(a[0], a[1])
	f.AddEdge(a[1], a[2])

	tests := []struct {
		name           string
		source, target int
	}{
		{"back edge", 2, 0},
		{"reverse edge", 1, 0},
		{"self loop", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := f.AddEdge(a[tt.source], a[tt.target]); ok {
				t.Errorf("AddEdge(%d, %d) should be rejected", tt.source, tt.target)
			}
			if f.EdgeCount() != 2 || !f.HasEdge(a[0], a[1]) || !f.HasEdge(a[1], a[2]) {
				t.Errorf("Graph mutated by rejected edge: %v", f.Edges())
			}
		})
	}
}

func TestFlowGraph_AddEdgeUnknownActionPanics(t *testing.T) {
	f, a := newFlow(1)
	stranger := &Action{ID: 42}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for action outside the graph")
		}
	}()
	f.AddEdge(a[0], stranger)
}

func TestFlowGraph_PathExists(t *testing.T) {
	f, a := newFlow(4)
	f.AddEdge(a[0], a[1])
	f.AddEdge(a[1], a[2])

	if !f.PathExists(a[0], a[2]) {
		t.Error("Expected path 0->2")
	}
	if f.PathExists(a[2], a[0]) {
		t.Error("Unexpected path 2->0")
	}
	if f.PathExists(a[0], a[3]) {
		t.Error("Unexpected path 0->3")
	}
	for _, v := range a {
		if f.PathExists(v, v) {
			t.Errorf("Unexpected cycle through %d", v.ID)
		}
	}
}

func TestFlowGraph_LeavesAndSingletons(t *testing.T) {
	f, a := newFlow(5)
	f.AddEdge(a[0], a[1])
	f.AddEdge(a[2], a[1])

	leaves := f.Leaves()
	var ids []int
	for _, l := range leaves {
		ids = append(ids, l.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 4 {
		t.Errorf("Leaves() = %v, want [1 3 4]", ids)
	}

	if removed := f.RemoveSingletons(); removed != 2 {
		t.Errorf("RemoveSingletons() = %d, want 2", removed)
	}
	if f.Len() != 3 {
		t.Errorf("Expected 3 actions left, got %d", f.Len())
	}
	if _, ok := f.Action(3); ok {
		t.Error("Singleton 3 should be gone")
	}
	if f.RemoveSingletons() != 0 {
		t.Error("Second RemoveSingletons should remove nothing")
	}
}

func TestFlowGraph_RecordsMetrics(t *testing.T) {
	m := metrics.NewRegistry()
	f, a := newFlow(3, WithMetrics(m))

	f.AddEdge(a[0], a[2])
	f.AddEdge(a[0], a[1])
	f.AddEdge(a[1], a[2])
	f.AddEdge(a[0], a[2])

	counter := func(c prometheus.Counter) float64 {
		var metric dto.Metric
		if err := c.Write(&metric); err != nil {
			t.Fatalf("Failed to write metric: %v", err)
		}
		return metric.Counter.GetValue()
	}

	if got := counter(m.FlowEdgesTotal.WithLabelValues(metrics.EdgeInserted)); got != 3 {
		t.Errorf("Expected 3 inserted edges, got %v", got)
	}
	if got := counter(m.FlowEdgesTotal.WithLabelValues(metrics.EdgePruned)); got != 1 {
		t.Errorf("Expected 1 pruned edge, got %v", got)
	}
	if got := counter(m.FlowEdgesTotal.WithLabelValues(metrics.EdgeRejected)); got != 1 {
		t.Errorf("Expected 1 rejected edge, got %v", got)
	}
}

func TestFlowGraph_Invariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("graph stays acyclic and prunes dominated edges into each new target", prop.ForAll(
		func(endpoints []int) bool {
			f, a := newFlow(8)
			for i := 0; i+1 < len(endpoints); i += 2 {
				u, v := a[endpoints[i]], a[endpoints[i+1]]
				closesCycle := u == v || f.PathExists(v, u)
				before := f.Edges()

				f.AddEdge(u, v)

				if closesCycle {
					if len(f.Edges()) != len(before) {
						return false
					}
					continue
				}
				for _, x := range a {
					if f.PathExists(x, x) {
						return false
					}
				}
				if len(dominatedPredecessors(f, u, v)) != 0 {
					return false
				}
			}
			return graph.IsDAG(f.Digraph())
		},
		gen.SliceOf(gen.IntRange(0, 7)),
	))

	properties.Property("adding an edge twice never succeeds the second time", prop.ForAll(
		func(endpoints []int, u, v int) bool {
			f, a := newFlow(8)
			for i := 0; i+1 < len(endpoints); i += 2 {
				f.AddEdge(a[endpoints[i]], a[endpoints[i+1]])
			}
			f.AddEdge(a[u], a[v])
			_, ok := f.AddEdge(a[u], a[v])
			return !ok
		},
		gen.SliceOf(gen.IntRange(0, 7)),
		gen.IntRange(0, 7),
		gen.IntRange(0, 7),
	))

	properties.Property("a more specific chain supersedes a direct edge", prop.ForAll(
		func(p, u, v int) bool {
			if p == u || u == v || p == v {
				return true
			}
			f, a := newFlow(8)
			f.AddEdge(a[p], a[u])
			f.AddEdge(a[p], a[v])
			f.AddEdge(a[u], a[v])
			return !f.HasEdge(a[p], a[v])
		},
		gen.IntRange(0, 7),
		gen.IntRange(0, 7),
		gen.IntRange(0, 7),
	))

	properties.TestingRun(t)
}
