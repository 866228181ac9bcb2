package flow

import (
	"io"

	"github.com/dd0wney/cluso-flowgraph/pkg/dot"
)

// Labeled projects the flow onto a labeled graph: each action becomes a
// vertex with the action id and the action's Label as text.
func (f *FlowGraph) Labeled() *dot.Graph {
	g := dot.NewGraph()
	for _, a := range f.Actions() {
		// ids are unique within a FlowGraph
		if err := g.AddVertex(vertexID(a.ID), a.Label()); err != nil {
			panic(err)
		}
	}
	for _, e := range f.g.Edges() {
		if err := g.AddEdge(e.From, e.To); err != nil {
			panic(err)
		}
	}
	return g
}

// WriteDOT writes the flow in DOT syntax
func (f *FlowGraph) WriteDOT(w io.Writer) error {
	return dot.Write(w, f.Labeled())
}
