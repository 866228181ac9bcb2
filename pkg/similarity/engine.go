package similarity

import (
	"fmt"
	"math"
	"time"

	"github.com/dd0wney/cluso-flowgraph/pkg/assignment"
	"github.com/dd0wney/cluso-flowgraph/pkg/dot"
	"github.com/dd0wney/cluso-flowgraph/pkg/flow"
	"github.com/dd0wney/cluso-flowgraph/pkg/graph"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
)

// Options tunes the comparison
type Options struct {
	// Threshold is the similarity a matched pair must exceed to count
	Threshold float64 `yaml:"threshold" validate:"gte=0,lt=1"`
	// Alpha is the steepness of the edge agreement decay
	Alpha float64 `yaml:"alpha" validate:"gt=0"`
	// Shift is the path length at which the decay is steepest
	Shift float64 `yaml:"shift" validate:"gte=1"`
}

// DefaultOptions returns the standard scoring parameters
func DefaultOptions() Options {
	return Options{
		Threshold: 0.05,
		Alpha:     2,
		Shift:     3,
	}
}

// Match is an aligned vertex pair, by vertex id in the compared graphs
type Match struct {
	A          uint64  `json:"a"`
	B          uint64  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// Result holds the agreement of two graphs
type Result struct {
	NodeScore float64 `json:"node_score"`
	EdgeScore float64 `json:"edge_score"`
	Matches   []Match `json:"matches"`
}

// Engine compares labeled graphs by content and structure. An Engine holds
// no mutable state and may be shared between goroutines.
type Engine struct {
	lemmatizer Lemmatizer
	opts       Options
	logger     logging.Logger
	metrics    *metrics.Registry
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger logging.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records comparison outcomes in m
func WithMetrics(m *metrics.Registry) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an engine. A nil lemmatizer selects WordLemmatizer.
func NewEngine(lemmatizer Lemmatizer, opts Options, options ...EngineOption) *Engine {
	if lemmatizer == nil {
		lemmatizer = NewWordLemmatizer()
	}
	e := &Engine{
		lemmatizer: lemmatizer,
		opts:       opts,
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Options returns the scoring parameters
func (e *Engine) Options() Options {
	return e.opts
}

// projection is a graph whose vertices were replaced by content bags
type projection struct {
	g     *graph.Digraph
	ids   []uint64
	index map[uint64]int
	bags  []*ContentBag
}

func (e *Engine) project(g *dot.Graph, nextID *uint64) *projection {
	vertices := g.Vertices()
	p := &projection{
		g:     g.Digraph(),
		ids:   make([]uint64, len(vertices)),
		index: make(map[uint64]int, len(vertices)),
		bags:  make([]*ContentBag, len(vertices)),
	}
	for i, v := range vertices {
		p.ids[i] = v.ID
		p.index[v.ID] = i
		p.bags[i] = NewBag(*nextID, e.lemmatizer.Lemmas(v.Label))
		*nextID++
	}
	return p
}

// Compare scores the agreement of a and b.
//
// Vertices are aligned one to one by a minimum-cost assignment over
// 1 - Similarity; aligned pairs above the threshold correspond. The node
// score is the Jaccard index of the two vertex sets under that
// correspondence. The edge score averages, in both directions, how closely
// each edge between corresponded vertices is mirrored by a path in the other
// graph, decayed with Norm.
//
// Neither graph is modified.
func (e *Engine) Compare(a, b *dot.Graph) (*Result, error) {
	start := time.Now()

	var nextID uint64
	pa := e.project(a, &nextID)
	pb := e.project(b, &nextID)

	costs := make([][]float64, len(pa.bags))
	sims := make([][]float64, len(pa.bags))
	for i, x := range pa.bags {
		costs[i] = make([]float64, len(pb.bags))
		sims[i] = make([]float64, len(pb.bags))
		for j, y := range pb.bags {
			sims[i][j] = Similarity(x, y)
			costs[i][j] = 1 - sims[i][j]
		}
	}

	match, err := assignment.Solve(costs)
	if err != nil {
		e.metrics.RecordComparisonError()
		return nil, fmt.Errorf("align vertices: %w", err)
	}

	forward := make(map[int]int)
	inverse := make(map[int]int)
	result := &Result{}
	for i, j := range match {
		if j == assignment.Unassigned || sims[i][j] <= e.opts.Threshold {
			continue
		}
		forward[i] = j
		inverse[j] = i
		result.Matches = append(result.Matches, Match{A: pa.ids[i], B: pb.ids[j], Similarity: sims[i][j]})
	}

	intersection := len(forward)
	if den := len(pa.bags) + len(pb.bags) - intersection; den == 0 {
		result.NodeScore = 1
	} else {
		result.NodeScore = float64(intersection) / float64(den)
	}

	result.EdgeScore = (e.edgeAgreement(pa, pb, forward) + e.edgeAgreement(pb, pa, inverse)) / 2

	duration := time.Since(start)
	e.metrics.RecordComparison(result.NodeScore, result.EdgeScore, intersection, duration)
	e.logger.Debug("compared graphs",
		logging.Int("vertices_a", len(pa.bags)),
		logging.Int("vertices_b", len(pb.bags)),
		logging.Count(intersection),
		logging.Float64("alignment_cost", assignment.TotalCost(costs, match)),
		logging.NodeScore(result.NodeScore),
		logging.EdgeScore(result.EdgeScore),
		logging.Latency(duration))

	return result, nil
}

// edgeAgreement scores how well the edges of from are mirrored in to.
// Every outgoing edge of a corresponded vertex counts toward the denominator;
// edges whose target has no counterpart contribute nothing.
func (e *Engine) edgeAgreement(from, to *projection, corr map[int]int) float64 {
	var numerator float64
	denominator := 0

	for i := range from.ids {
		j, ok := corr[i]
		if !ok {
			continue
		}
		for _, succ := range from.g.Successors(from.ids[i]) {
			denominator++
			jj, ok := corr[from.index[succ]]
			if !ok {
				continue
			}
			d := math.Inf(1)
			if n, reachable := graph.ShortestPathLength(to.g, to.ids[j], to.ids[jj]); reachable {
				d = float64(n)
			}
			numerator += Norm(d, e.opts.Alpha, e.opts.Shift)
		}
	}

	return numerator / float64(max(1, denominator))
}

// CompareFlows compares two flow graphs through their labeled projections
func (e *Engine) CompareFlows(a, b *flow.FlowGraph) (*Result, error) {
	return e.Compare(a.Labeled(), b.Labeled())
}
