package graph

import (
	"errors"
)

// ErrCycle is returned when an operation requires a DAG but the graph has a cycle
var ErrCycle = errors.New("graph contains a cycle")

// TopologicalSort returns the vertices in topological order using Kahn's algorithm.
// For every edge u->v, u comes before v. Ties are broken by ascending id.
func TopologicalSort(g *Digraph) ([]uint64, error) {
	vertices := g.Vertices()

	inDegree := make(map[uint64]int, len(vertices))
	queue := make([]uint64, 0)
	for _, id := range vertices {
		inDegree[id] = len(g.in[id])
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]uint64, 0, len(vertices))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, to := range g.Successors(current) {
			inDegree[to]--
			if inDegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	// Unprocessed vertices sit on (or behind) a cycle
	if len(sorted) != len(vertices) {
		return nil, ErrCycle
	}
	return sorted, nil
}

// IsDAG reports whether the graph has no directed cycle
func IsDAG(g *Digraph) bool {
	_, err := TopologicalSort(g)
	return err == nil
}
