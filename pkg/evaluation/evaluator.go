package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-flowgraph/pkg/dot"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
	"github.com/dd0wney/cluso-flowgraph/pkg/parallel"
	"github.com/dd0wney/cluso-flowgraph/pkg/similarity"
)

// Kind tells which agreement a pair score measures
type Kind string

const (
	// KindInterAnnotator compares two human annotators
	KindInterAnnotator Kind = "inter-annotator"
	// KindSystem compares an annotator with the system
	KindSystem Kind = "system"
)

// PairScore is the agreement of two flow charts for one task
type PairScore struct {
	Left      string  `json:"left"`
	Right     string  `json:"right"`
	Kind      Kind    `json:"kind"`
	NodeScore float64 `json:"node_score"`
	EdgeScore float64 `json:"edge_score"`
	Matched   int     `json:"matched"`
}

// TaskReport collects the pair scores of one task and their averages.
// Averages over no pairs are 0.
type TaskReport struct {
	Task       string      `json:"task"`
	Pairs      []PairScore `json:"pairs"`
	InterNode  float64     `json:"inter_node"`
	InterEdge  float64     `json:"inter_edge"`
	SystemNode float64     `json:"system_node"`
	SystemEdge float64     `json:"system_edge"`
}

// Report is the outcome of one evaluation run
type Report struct {
	RunID     uuid.UUID     `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Tasks     []TaskReport  `json:"tasks"`
}

// Evaluator scores a corpus with a similarity engine. A nil Engine uses the
// default options with WordLemmatizer.
type Evaluator struct {
	Engine  *similarity.Engine
	Workers int
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// NewEvaluator creates an evaluator
func NewEvaluator(engine *similarity.Engine, workers int, logger logging.Logger, m *metrics.Registry) *Evaluator {
	return &Evaluator{Engine: engine, Workers: workers, Logger: logger, Metrics: m}
}

type job struct {
	task        string
	left, right string
	kind        Kind
	a, b        *dot.Graph
}

// Run compares, for every task, each pair of annotators and each annotator
// with the system. Comparisons run concurrently; the report lists them in a
// fixed order. Cancelling ctx stops scheduling further comparisons.
func (e *Evaluator) Run(ctx context.Context, corpus *Corpus) (*Report, error) {
	logger := logging.OrDefault(e.Logger).With(logging.Component("evaluation"))
	engine := e.Engine
	if engine == nil {
		engine = similarity.NewEngine(nil, similarity.DefaultOptions())
	}
	report := &Report{RunID: uuid.New(), StartedAt: time.Now()}
	timer := logging.StartTimer(logger, "evaluation run", logging.String("run_id", report.RunID.String()))

	jobs, err := plan(corpus)
	if err != nil {
		e.Metrics.RecordEvaluation(err, time.Since(report.StartedAt))
		timer.EndError(err)
		return nil, err
	}

	pool, err := parallel.NewWorkerPool(e.Workers, parallel.WithLogger(logger))
	if err != nil {
		e.Metrics.RecordEvaluation(err, time.Since(report.StartedAt))
		timer.EndError(err)
		return nil, err
	}
	defer pool.Close()

	scores := make([]PairScore, len(jobs))
	err = parallel.ForEach(ctx, pool, jobs, func(_ context.Context, i int, j job) error {
		result, err := engine.Compare(j.a, j.b)
		if err != nil {
			return fmt.Errorf("task %s: compare %s with %s: %w", j.task, j.left, j.right, err)
		}
		scores[i] = PairScore{
			Left:      j.left,
			Right:     j.right,
			Kind:      j.kind,
			NodeScore: result.NodeScore,
			EdgeScore: result.EdgeScore,
			Matched:   len(result.Matches),
		}
		logger.Debug("compared flow charts",
			logging.Task(j.task),
			logging.Annotator(j.left),
			logging.String("against", j.right),
			logging.NodeScore(result.NodeScore),
			logging.EdgeScore(result.EdgeScore))
		return nil
	})
	if err != nil {
		e.Metrics.RecordEvaluation(err, time.Since(report.StartedAt))
		timer.EndError(err)
		return nil, err
	}

	byTask := make(map[string]*TaskReport, len(corpus.Tasks))
	for _, task := range corpus.Tasks {
		report.Tasks = append(report.Tasks, TaskReport{Task: task})
	}
	for i := range report.Tasks {
		byTask[report.Tasks[i].Task] = &report.Tasks[i]
	}
	for i, j := range jobs {
		tr := byTask[j.task]
		tr.Pairs = append(tr.Pairs, scores[i])
	}
	for i := range report.Tasks {
		report.Tasks[i].summarize()
	}

	report.Duration = time.Since(report.StartedAt)
	e.Metrics.RecordEvaluation(nil, report.Duration)
	timer.End(logging.Count(len(jobs)), logging.Int("workers", pool.Workers()))
	return report, nil
}

// plan lists the comparisons of a run, task by task: annotator pairs i < j in
// corpus order, then every annotator against the system.
func plan(corpus *Corpus) ([]job, error) {
	if corpus == nil || len(corpus.Tasks) == 0 {
		return nil, ErrEmptyCorpus
	}

	lookup := func(annotator, task string) (*dot.Graph, error) {
		g, ok := corpus.Human[annotator][task]
		if !ok {
			return nil, fmt.Errorf("annotator %s has no flow chart for task %s", annotator, task)
		}
		return g, nil
	}

	var jobs []job
	for _, task := range corpus.Tasks {
		for i, left := range corpus.Annotators {
			a, err := lookup(left, task)
			if err != nil {
				return nil, err
			}
			for _, right := range corpus.Annotators[i+1:] {
				b, err := lookup(right, task)
				if err != nil {
					return nil, err
				}
				jobs = append(jobs, job{task: task, left: left, right: right, kind: KindInterAnnotator, a: a, b: b})
			}
		}

		if corpus.System == nil {
			continue
		}
		system, ok := corpus.System[task]
		if !ok {
			return nil, fmt.Errorf("system has no flow chart for task %s", task)
		}
		for _, left := range corpus.Annotators {
			a, _ := lookup(left, task)
			jobs = append(jobs, job{task: task, left: left, right: "system", kind: KindSystem, a: a, b: system})
		}
	}
	return jobs, nil
}

func (t *TaskReport) summarize() {
	var inter, system []PairScore
	for _, p := range t.Pairs {
		switch p.Kind {
		case KindInterAnnotator:
			inter = append(inter, p)
		case KindSystem:
			system = append(system, p)
		}
	}
	t.InterNode, t.InterEdge = average(inter)
	t.SystemNode, t.SystemEdge = average(system)
}

func average(pairs []PairScore) (node, edge float64) {
	if len(pairs) == 0 {
		return 0, 0
	}
	for _, p := range pairs {
		node += p.NodeScore
		edge += p.EdgeScore
	}
	n := float64(len(pairs))
	return node / n, edge / n
}
