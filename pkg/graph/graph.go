package graph

import (
	"fmt"
	"sort"
)

// Edge is an unlabeled directed arc between two vertices.
type Edge struct {
	From uint64
	To   uint64
}

// Digraph is a minimal directed graph over integer vertex ids.
// It performs no cycle checking; invariants are enforced by the layers built on top of it.
// A Digraph is not safe for concurrent mutation.
type Digraph struct {
	out map[uint64]map[uint64]struct{}
	in  map[uint64]map[uint64]struct{}
}

// New creates an empty directed graph
func New() *Digraph {
	return &Digraph{
		out: make(map[uint64]map[uint64]struct{}),
		in:  make(map[uint64]map[uint64]struct{}),
	}
}

// AddVertex inserts a vertex. Adding an existing vertex is a no-op.
func (g *Digraph) AddVertex(id uint64) {
	if _, ok := g.out[id]; ok {
		return
	}
	g.out[id] = make(map[uint64]struct{})
	g.in[id] = make(map[uint64]struct{})
}

// HasVertex reports whether id is a member of the graph
func (g *Digraph) HasVertex(id uint64) bool {
	_, ok := g.out[id]
	return ok
}

// RemoveVertex deletes a vertex together with all of its incident edges.
func (g *Digraph) RemoveVertex(id uint64) {
	if !g.HasVertex(id) {
		return
	}
	for to := range g.out[id] {
		delete(g.in[to], id)
	}
	for from := range g.in[id] {
		delete(g.out[from], id)
	}
	delete(g.out, id)
	delete(g.in, id)
}

// AddEdge inserts from->to unconditionally. Both endpoints must already be
// vertices of the graph; anything else is a programming error and panics.
func (g *Digraph) AddEdge(from, to uint64) Edge {
	g.mustHave(from)
	g.mustHave(to)
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
	return Edge{From: from, To: to}
}

// RemoveEdge deletes from->to and reports whether it was present.
func (g *Digraph) RemoveEdge(from, to uint64) bool {
	if !g.HasEdge(from, to) {
		return false
	}
	delete(g.out[from], to)
	delete(g.in[to], from)
	return true
}

// HasEdge reports whether the edge from->to exists
func (g *Digraph) HasEdge(from, to uint64) bool {
	targets, ok := g.out[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Successors returns the targets of the outgoing edges of id in ascending order.
func (g *Digraph) Successors(id uint64) []uint64 {
	g.mustHave(id)
	return sortedKeys(g.out[id])
}

// Predecessors returns the sources of the incoming edges of id in ascending order.
func (g *Digraph) Predecessors(id uint64) []uint64 {
	g.mustHave(id)
	return sortedKeys(g.in[id])
}

// Outgoing returns the outgoing edges of id.
func (g *Digraph) Outgoing(id uint64) []Edge {
	succ := g.Successors(id)
	edges := make([]Edge, len(succ))
	for i, to := range succ {
		edges[i] = Edge{From: id, To: to}
	}
	return edges
}

// Incoming returns the incoming edges of id.
func (g *Digraph) Incoming(id uint64) []Edge {
	pred := g.Predecessors(id)
	edges := make([]Edge, len(pred))
	for i, from := range pred {
		edges[i] = Edge{From: from, To: id}
	}
	return edges
}

// OutDegree returns the number of outgoing edges of id
func (g *Digraph) OutDegree(id uint64) int {
	g.mustHave(id)
	return len(g.out[id])
}

// InDegree returns the number of incoming edges of id
func (g *Digraph) InDegree(id uint64) int {
	g.mustHave(id)
	return len(g.in[id])
}

// Vertices returns all vertex ids in ascending order.
func (g *Digraph) Vertices() []uint64 {
	ids := make([]uint64, 0, len(g.out))
	for id := range g.out {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Edges returns every edge ordered by source, then target.
func (g *Digraph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, from := range g.Vertices() {
		for _, to := range sortedKeys(g.out[from]) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// VertexCount returns the number of vertices
func (g *Digraph) VertexCount() int {
	return len(g.out)
}

// EdgeCount returns the number of edges
func (g *Digraph) EdgeCount() int {
	n := 0
	for _, targets := range g.out {
		n += len(targets)
	}
	return n
}

// Clone returns a deep copy of the graph.
func (g *Digraph) Clone() *Digraph {
	c := New()
	for id := range g.out {
		c.AddVertex(id)
	}
	for from, targets := range g.out {
		for to := range targets {
			c.out[from][to] = struct{}{}
			c.in[to][from] = struct{}{}
		}
	}
	return c
}

func (g *Digraph) mustHave(id uint64) {
	if !g.HasVertex(id) {
		panic(fmt.Sprintf("graph: vertex %d is not a member of the graph", id))
	}
}

func sortedKeys(set map[uint64]struct{}) []uint64 {
	keys := make([]uint64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
