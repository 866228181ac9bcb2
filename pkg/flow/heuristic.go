package flow

import (
	"container/heap"

	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
)

// actionQueue is a max-heap of actions keyed by id
type actionQueue []*Action

func (q actionQueue) Len() int           { return len(q) }
func (q actionQueue) Less(i, j int) bool { return q[i].ID > q[j].ID }
func (q actionQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *actionQueue) Push(x any) {
	*q = append(*q, x.(*Action))
}

func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return a
}

// HeuristicBuilder derives dependencies from lexical co-reference. An action
// depends on the most recent earlier action that touched one of its objects;
// the frontier maps every object lemma to the last action that mentioned it.
type HeuristicBuilder struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// NewHeuristicBuilder creates a builder that logs and records through the given sinks
func NewHeuristicBuilder(logger logging.Logger, m *metrics.Registry) *HeuristicBuilder {
	return &HeuristicBuilder{Logger: logger, Metrics: m}
}

// Build returns the flow graph for actions, which must be in recipe order.
//
// For each object word of an action, the frontier actions of its token lemmas
// are queued (appliances excepted) and the most recent queued action becomes a
// prerequisite. The queue carries over between the words of one action. An
// action left without prerequisites depends on the action right before it,
// and every action nothing depends on feeds into the final action.
func (b *HeuristicBuilder) Build(actions []*Action) *FlowGraph {
	logger := logging.OrDefault(b.Logger)
	flow := NewFlowGraph(WithLogger(logger), WithMetrics(b.Metrics))

	for _, a := range actions {
		flow.AddVertex(a)
	}

	frontier := make(map[string]*Action)
	for _, a := range flow.Actions() {
		b.addDependencies(flow, frontier, a)
	}

	all := flow.Actions()
	if len(all) > 0 {
		last := all[len(all)-1]
		for _, leaf := range flow.Leaves() {
			if leaf.ID != last.ID {
				flow.AddEdge(leaf, last)
			}
		}
	}

	flow.metrics.RecordFlowBuilt(flow.Len())
	logger.Debug("built heuristic flow",
		logging.Component("heuristic"),
		logging.Count(flow.Len()),
		logging.Int("edges", flow.EdgeCount()))
	return flow
}

func (b *HeuristicBuilder) addDependencies(flow *FlowGraph, frontier map[string]*Action, action *Action) {
	queue := &actionQueue{}

	for _, word := range action.Objects() {
		if word.Entity != EntityAppliance {
			for _, lemma := range word.Lemmas() {
				if prev, ok := frontier[lemma]; ok {
					heap.Push(queue, prev)
				}
			}
		}
		if queue.Len() > 0 {
			prev := heap.Pop(queue).(*Action)
			flow.AddEdge(prev, action)
		}
	}

	for _, lemma := range action.ObjectLemmas() {
		frontier[lemma] = action
	}

	if flow.InDegree(action) == 0 {
		var prev *Action
		for _, a := range flow.Actions() {
			if a.ID < action.ID && (prev == nil || a.ID > prev.ID) {
				prev = a
			}
		}
		if prev != nil {
			flow.AddEdge(prev, action)
		}
	}
}
