package graph

import (
	"container/list"
)

// PathExists reports whether target is reachable from source over at least one edge:
// either the edge source->target exists or target is reachable from a successor of source.
// PathExists(g, v, v) is true only if v lies on a cycle.
func PathExists(g *Digraph, source, target uint64) bool {
	if !g.HasVertex(source) || !g.HasVertex(target) {
		return false
	}

	visited := make(map[uint64]bool)
	stack := g.Successors(source)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for to := range g.out[current] {
			if !visited[to] {
				stack = append(stack, to)
			}
		}
	}

	return false
}

// ShortestPathLength returns the number of edges on a shortest directed path from
// source to target using breadth-first search. The second result is false when
// target is unreachable. A vertex reaches itself with length 0.
func ShortestPathLength(g *Digraph, source, target uint64) (int, bool) {
	if !g.HasVertex(source) || !g.HasVertex(target) {
		return 0, false
	}
	if source == target {
		return 0, true
	}

	depth := map[uint64]int{source: 0}
	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(uint64)
		next := depth[current] + 1

		for to := range g.out[current] {
			if _, seen := depth[to]; seen {
				continue
			}
			if to == target {
				return next, true
			}
			depth[to] = next
			queue.PushBack(to)
		}
	}

	return 0, false
}
