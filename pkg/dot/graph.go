package dot

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-flowgraph/pkg/graph"
)

var (
	// ErrUnknownVertex is returned when an edge references an undeclared vertex
	ErrUnknownVertex = errors.New("unknown vertex")
	// ErrDuplicateVertex is returned when a vertex id is declared twice
	ErrDuplicateVertex = errors.New("duplicate vertex")
)

// Vertex is a labeled vertex of an interchange graph
type Vertex struct {
	ID    uint64
	Label string
}

// Graph is a directed graph whose vertices carry label text. It is the
// shape flow charts take in the DOT interchange format and the input of the
// similarity engine.
type Graph struct {
	digraph *graph.Digraph
	labels  map[uint64]string
}

// NewGraph creates an empty labeled graph
func NewGraph() *Graph {
	return &Graph{
		digraph: graph.New(),
		labels:  make(map[uint64]string),
	}
}

// AddVertex declares a vertex. Declaring an id twice is an error.
func (g *Graph) AddVertex(id uint64, label string) error {
	if g.digraph.HasVertex(id) {
		return fmt.Errorf("%w: %d", ErrDuplicateVertex, id)
	}
	g.digraph.AddVertex(id)
	g.labels[id] = label
	return nil
}

// AddEdge inserts from->to between two declared vertices
func (g *Graph) AddEdge(from, to uint64) error {
	if !g.digraph.HasVertex(from) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, from)
	}
	if !g.digraph.HasVertex(to) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, to)
	}
	g.digraph.AddEdge(from, to)
	return nil
}

// Label returns the label of id and whether id is a vertex
func (g *Graph) Label(id uint64) (string, bool) {
	label, ok := g.labels[id]
	return label, ok
}

// Vertices returns every vertex in ascending id order
func (g *Graph) Vertices() []Vertex {
	ids := g.digraph.Vertices()
	vertices := make([]Vertex, len(ids))
	for i, id := range ids {
		vertices[i] = Vertex{ID: id, Label: g.labels[id]}
	}
	return vertices
}

// Edges returns every edge ordered by source, then target
func (g *Graph) Edges() []graph.Edge {
	return g.digraph.Edges()
}

// Len returns the number of vertices
func (g *Graph) Len() int {
	return g.digraph.VertexCount()
}

// Digraph exposes the underlying structure for read-only traversal.
// Callers must not mutate it.
func (g *Graph) Digraph() *graph.Digraph {
	return g.digraph
}
