package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-flowgraph/pkg/dot"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
	"github.com/dd0wney/cluso-flowgraph/pkg/report"
	"github.com/dd0wney/cluso-flowgraph/pkg/similarity"
)

func newCompareCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare <a.dot> <b.dot>",
		Short: "Score the agreement of two flow charts",
		Long: `Compare aligns the actions of two flow charts by lemma overlap and
reports a node score (aligned actions) and an edge score (dependencies
preserved between aligned actions). Both scores lie in [0, 1].

Examples:
  flowgraph compare annotator1/taskA.dot system/taskA.dot
  flowgraph compare a.dot b.dot --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := readChart(args[0], a.metrics)
			if err != nil {
				return err
			}
			right, err := readChart(args[1], a.metrics)
			if err != nil {
				return err
			}

			engine := similarity.NewEngine(similarity.NewWordLemmatizer(), a.cfg.Similarity,
				similarity.WithLogger(a.logger),
				similarity.WithMetrics(a.metrics))
			res, err := engine.Compare(left, right)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return report.RenderComparison(cmd.OutOrStdout(), fmt.Sprintf("%s vs %s", args[0], args[1]), res)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func readChart(path string, m *metrics.Registry) (*dot.Graph, error) {
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
