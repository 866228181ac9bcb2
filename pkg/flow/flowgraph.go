package flow

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-flowgraph/pkg/graph"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
)

// EdgeStats counts the outcome of every AddEdge call over a graph's lifetime
type EdgeStats struct {
	Inserted int
	Rejected int
	Pruned   int
}

// FlowGraph is a dependency graph over recipe actions. It stays acyclic, and
// every AddEdge(s, t) leaves no predecessor p of t that reaches s with a
// direct edge p->t. Pruning is local to the target of the new edge, so a
// direct edge may still run alongside a longer path elsewhere in the graph.
//
// FlowGraph is not safe for concurrent use. Each graph is built by a single
// goroutine; compare finished graphs through their Labeled projection.
type FlowGraph struct {
	actions map[int]*Action
	g       *graph.Digraph
	stats   EdgeStats
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a FlowGraph
type Option func(*FlowGraph)

// WithLogger sets the logger used for edge decisions
func WithLogger(logger logging.Logger) Option {
	return func(f *FlowGraph) {
		f.logger = logger
	}
}

// WithMetrics records edge decisions and merges in the given registry
func WithMetrics(m *metrics.Registry) Option {
	return func(f *FlowGraph) {
		f.metrics = m
	}
}

// NewFlowGraph creates an empty flow graph
func NewFlowGraph(opts ...Option) *FlowGraph {
	f := &FlowGraph{
		actions: make(map[int]*Action),
		g:       graph.New(),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AddVertex inserts an action. Adding an id that is already present is a no-op.
func (f *FlowGraph) AddVertex(a *Action) {
	if _, ok := f.actions[a.ID]; ok {
		return
	}
	f.actions[a.ID] = a
	f.g.AddVertex(vertexID(a.ID))
}

// AddEdge adds the dependency source->target if the graph does not already
// imply it. Before the check, every predecessor p of target that can reach
// source loses its direct edge p->target, since the new chain through source
// supersedes it. Edges that would close a cycle are rejected untouched.
//
// It returns the inserted edge, or false when the edge was rejected.
// Both actions must already be vertices of the graph.
func (f *FlowGraph) AddEdge(source, target *Action) (graph.Edge, bool) {
	src, dst := f.mustHave(source), f.mustHave(target)

	if src == dst || graph.PathExists(f.g, dst, src) {
		f.reject(source, target, "would create a cycle")
		return graph.Edge{}, false
	}

	for _, p := range f.g.Predecessors(dst) {
		if graph.PathExists(f.g, p, src) {
			f.g.RemoveEdge(p, dst)
			f.stats.Pruned++
			f.metrics.RecordEdge(metrics.EdgePruned)
			f.logger.Debug("pruned dominated edge",
				logging.Source(int(p)),
				logging.Target(target.ID),
				logging.Int("via", source.ID))
		}
	}

	if graph.PathExists(f.g, src, dst) {
		f.reject(source, target, "path already exists")
		return graph.Edge{}, false
	}

	edge := f.g.AddEdge(src, dst)
	f.stats.Inserted++
	f.metrics.RecordEdge(metrics.EdgeInserted)
	return edge, true
}

func (f *FlowGraph) reject(source, target *Action, reason string) {
	f.stats.Rejected++
	f.metrics.RecordEdge(metrics.EdgeRejected)
	f.logger.Debug("rejected edge",
		logging.Source(source.ID),
		logging.Target(target.ID),
		logging.String("reason", reason))
}

// PathExists reports whether target is reachable from source
func (f *FlowGraph) PathExists(source, target *Action) bool {
	return graph.PathExists(f.g, vertexID(source.ID), vertexID(target.ID))
}

// Leaves returns the actions with no outgoing edge, by ascending id
func (f *FlowGraph) Leaves() []*Action {
	var leaves []*Action
	for _, id := range f.g.Vertices() {
		if f.g.OutDegree(id) == 0 {
			leaves = append(leaves, f.actions[int(id)])
		}
	}
	return leaves
}

// RemoveSingletons drops every action with no incident edge and returns how
// many were removed.
func (f *FlowGraph) RemoveSingletons() int {
	removed := 0
	for _, id := range f.g.Vertices() {
		if f.g.InDegree(id) == 0 && f.g.OutDegree(id) == 0 {
			f.g.RemoveVertex(id)
			delete(f.actions, int(id))
			removed++
		}
	}
	if removed > 0 {
		f.logger.Debug("removed singleton actions", logging.Count(removed))
	}
	return removed
}

// Action returns the action with the given id
func (f *FlowGraph) Action(id int) (*Action, bool) {
	a, ok := f.actions[id]
	return a, ok
}

// Actions returns every action by ascending id
func (f *FlowGraph) Actions() []*Action {
	actions := make([]*Action, 0, len(f.actions))
	for _, a := range f.actions {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i].ID < actions[j].ID })
	return actions
}

// Edges returns every dependency, sorted by source then target id
func (f *FlowGraph) Edges() []graph.Edge {
	return f.g.Edges()
}

// HasEdge reports whether the direct edge source->target exists
func (f *FlowGraph) HasEdge(source, target *Action) bool {
	return f.g.HasEdge(vertexID(source.ID), vertexID(target.ID))
}

// InDegree returns the number of direct prerequisites of a
func (f *FlowGraph) InDegree(a *Action) int {
	return f.g.InDegree(vertexID(a.ID))
}

// OutDegree returns the number of actions directly depending on a
func (f *FlowGraph) OutDegree(a *Action) int {
	return f.g.OutDegree(vertexID(a.ID))
}

// Len returns the number of actions
func (f *FlowGraph) Len() int {
	return len(f.actions)
}

// EdgeCount returns the number of dependencies
func (f *FlowGraph) EdgeCount() int {
	return f.g.EdgeCount()
}

// Stats returns the edge decision counters
func (f *FlowGraph) Stats() EdgeStats {
	return f.stats
}

// Digraph exposes a copy of the underlying structure
func (f *FlowGraph) Digraph() *graph.Digraph {
	return f.g.Clone()
}

func (f *FlowGraph) mustHave(a *Action) uint64 {
	if a == nil {
		panic("flow: nil action")
	}
	if _, ok := f.actions[a.ID]; !ok {
		panic(fmt.Sprintf("flow: action %d is not a vertex of this graph", a.ID))
	}
	return vertexID(a.ID)
}

func vertexID(id int) uint64 {
	if id < 0 {
		panic(fmt.Sprintf("flow: negative action id %d", id))
	}
	return uint64(id)
}
