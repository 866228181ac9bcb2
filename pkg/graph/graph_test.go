package graph

import (
	"testing"
)

// buildChain creates 1->2->...->n
func buildChain(n uint64) *Digraph {
	g := New()
	for i := uint64(1); i <= n; i++ {
		g.AddVertex(i)
	}
	for i := uint64(1); i < n; i++ {
		g.AddEdge(i, i+1)
	}
	return g
}

func TestDigraph_AddVertexIdempotent(t *testing.T) {
	g := New()
	g.AddVertex(7)
	g.AddVertex(7)

	if g.VertexCount() != 1 {
		t.Errorf("Expected 1 vertex, got %d", g.VertexCount())
	}
}

func TestDigraph_EdgesAndDegrees(t *testing.T) {
	g := New()
	for _, id := range []uint64{1, 2, 3} {
		g.AddVertex(id)
	}
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)

	if g.OutDegree(1) != 2 {
		t.Errorf("OutDegree(1) = %d, want 2", g.OutDegree(1))
	}
	if g.InDegree(3) != 2 {
		t.Errorf("InDegree(3) = %d, want 2", g.InDegree(3))
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}

	want := []Edge{{1, 2}, {1, 3}, {2, 3}}
	got := g.Edges()
	if len(got) != len(want) {
		t.Fatalf("Edges() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Edges()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	in := g.Incoming(3)
	if len(in) != 2 || in[0].From != 1 || in[1].From != 2 {
		t.Errorf("Incoming(3) = %v", in)
	}
}

func TestDigraph_RemoveEdge(t *testing.T) {
	g := buildChain(3)

	if !g.RemoveEdge(1, 2) {
		t.Error("Expected RemoveEdge to report an existing edge")
	}
	if g.RemoveEdge(1, 2) {
		t.Error("Expected second RemoveEdge to report false")
	}
	if g.HasEdge(1, 2) {
		t.Error("Edge 1->2 should be gone")
	}
	if g.InDegree(2) != 0 {
		t.Errorf("InDegree(2) = %d, want 0", g.InDegree(2))
	}
}

func TestDigraph_RemoveVertexDropsIncidentEdges(t *testing.T) {
	g := buildChain(3)
	g.RemoveVertex(2)

	if g.HasVertex(2) {
		t.Error("Vertex 2 should be removed")
	}
	if g.OutDegree(1) != 0 || g.InDegree(3) != 0 {
		t.Error("Incident edges of vertex 2 should be removed")
	}
}

func TestDigraph_AddEdgeUnknownVertexPanics(t *testing.T) {
	g := New()
	g.AddVertex(1)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when adding an edge to a non-member vertex")
		}
	}()
	g.AddEdge(1, 2)
}

func TestDigraph_Clone(t *testing.T) {
	g := buildChain(3)
	c := g.Clone()
	c.RemoveEdge(1, 2)

	if !g.HasEdge(1, 2) {
		t.Error("Mutating a clone must not affect the original")
	}
}

func TestPathExists(t *testing.T) {
	g := buildChain(4)
	g.AddVertex(5)

	tests := []struct {
		name   string
		source uint64
		target uint64
		want   bool
	}{
		{"direct", 1, 2, true},
		{"transitive", 1, 4, true},
		{"reverse", 4, 1, false},
		{"self without cycle", 2, 2, false},
		{"isolated", 1, 5, false},
		{"unknown", 1, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathExists(g, tt.source, tt.target); got != tt.want {
				t.Errorf("PathExists(%d, %d) = %v, want %v", tt.source, tt.target, got, tt.want)
			}
		})
	}
}

func TestPathExists_SelfOnCycle(t *testing.T) {
	g := buildChain(3)
	g.AddEdge(3, 1)

	if !PathExists(g, 2, 2) {
		t.Error("Expected vertex on a cycle to reach itself")
	}
}

func TestShortestPathLength(t *testing.T) {
	g := buildChain(4)
	g.AddEdge(1, 4)

	tests := []struct {
		source, target uint64
		want           int
		ok             bool
	}{
		{1, 1, 0, true},
		{1, 2, 1, true},
		{1, 3, 2, true},
		{1, 4, 1, true},
		{2, 4, 2, true},
		{4, 1, 0, false},
	}

	for _, tt := range tests {
		got, ok := ShortestPathLength(g, tt.source, tt.target)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ShortestPathLength(%d, %d) = (%d, %v), want (%d, %v)",
				tt.source, tt.target, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTopologicalSort(t *testing.T) {
	g := New()
	for _, id := range []uint64{1, 2, 3, 4} {
		g.AddVertex(id)
	}
	g.AddEdge(3, 1)
	g.AddEdge(1, 2)
	g.AddEdge(4, 2)

	order, err := TopologicalSort(g)
	if err != nil {
		t.Fatalf("TopologicalSort failed: %v", err)
	}

	pos := make(map[uint64]int)
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("Edge %v violates order %v", e, order)
		}
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := buildChain(3)
	g.AddEdge(3, 1)

	if _, err := TopologicalSort(g); err != ErrCycle {
		t.Errorf("Expected ErrCycle, got %v", err)
	}
	if IsDAG(g) {
		t.Error("IsDAG should be false for a cyclic graph")
	}
}
