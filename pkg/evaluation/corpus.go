package evaluation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-flowgraph/pkg/config"
	"github.com/dd0wney/cluso-flowgraph/pkg/dot"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
)

// ErrEmptyCorpus is returned when a corpus names no tasks
var ErrEmptyCorpus = errors.New("corpus has no tasks")

// maxOpenFiles bounds concurrent reads while loading a corpus
const maxOpenFiles = 16

// Corpus holds the flow charts of every task, drawn by each human annotator
// and optionally by the system under evaluation.
type Corpus struct {
	Tasks      []string
	Annotators []string
	// Human maps annotator, then task, to a flow chart
	Human map[string]map[string]*dot.Graph
	// System maps task to the generated flow chart; nil when not evaluated
	System map[string]*dot.Graph
}

// TaskFile returns the path of the flow chart for task drawn by owner
func TaskFile(root, owner, task string) string {
	return filepath.Join(root, owner, "task"+task+".dot")
}

type chart struct {
	owner string
	task  string
	graph *dot.Graph
}

// LoadCorpus parses every flow chart cfg names. A missing or malformed file
// fails the whole load.
func LoadCorpus(ctx context.Context, cfg config.CorpusConfig, m *metrics.Registry) (*Corpus, error) {
	if len(cfg.Tasks) == 0 {
		return nil, ErrEmptyCorpus
	}

	owners := append([]string(nil), cfg.Annotators...)
	if cfg.System != "" {
		owners = append(owners, cfg.System)
	}

	var (
		mu     sync.Mutex
		charts []chart
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOpenFiles)
	for _, owner := range owners {
		for _, task := range cfg.Tasks {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				graph, err := loadChart(TaskFile(cfg.Root, owner, task), m)
				if err != nil {
					return err
				}
				mu.Lock()
				charts = append(charts, chart{owner: owner, task: task, graph: graph})
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := &Corpus{
		Tasks:      append([]string(nil), cfg.Tasks...),
		Annotators: append([]string(nil), cfg.Annotators...),
		Human:      make(map[string]map[string]*dot.Graph, len(cfg.Annotators)),
	}
	if cfg.System != "" {
		corpus.System = make(map[string]*dot.Graph, len(cfg.Tasks))
	}
	for _, a := range cfg.Annotators {
		corpus.Human[a] = make(map[string]*dot.Graph, len(cfg.Tasks))
	}
	for _, c := range charts {
		// an annotator directory named like the system directory counts as human
		if tasks, ok := corpus.Human[c.owner]; ok {
			tasks[c.task] = c.graph
		} else {
			corpus.System[c.task] = c.graph
		}
	}

	return corpus, nil
}

func loadChart(path string, m *metrics.Registry) (*dot.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flow chart: %w", err)
	}
	defer f.Close()

	g, err := dot.ParseReader(f)
	m.RecordDOTParse(err)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}
