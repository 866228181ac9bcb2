package main

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-flowgraph/pkg/evaluation"
	"github.com/dd0wney/cluso-flowgraph/pkg/report"
	"github.com/dd0wney/cluso-flowgraph/pkg/similarity"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		asJSON      bool
		interactive bool
		root        string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score inter-annotator and system agreement over a corpus",
		Long: `Evaluate loads every flow chart the configuration's corpus section names,
compares each pair of annotators and each annotator with the system, and
prints per-task agreement with its averages.

Examples:
  flowgraph evaluate --config flowgraph.yaml
  flowgraph evaluate --config flowgraph.yaml --root ./flowcharts --json
  flowgraph evaluate --config flowgraph.yaml --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusCfg := a.cfg.Corpus
			if root != "" {
				corpusCfg.Root = root
			}

			corpus, err := evaluation.LoadCorpus(cmd.Context(), corpusCfg, a.metrics)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			engine := similarity.NewEngine(similarity.NewWordLemmatizer(), a.cfg.Similarity,
				similarity.WithLogger(a.logger),
				similarity.WithMetrics(a.metrics))
			evaluator := evaluation.NewEvaluator(engine, a.cfg.Evaluation.Workers, a.logger, a.metrics)

			r, err := evaluator.Run(cmd.Context(), corpus)
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			case interactive:
				p := tea.NewProgram(report.NewBrowser(r),
					tea.WithAltScreen(),
					tea.WithContext(cmd.Context()),
					tea.WithOutput(cmd.OutOrStdout()))
				_, err := p.Run()
				return err
			default:
				return report.Render(cmd.OutOrStdout(), r)
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the report in the terminal")
	cmd.Flags().StringVar(&root, "root", "", "corpus directory (overrides corpus.root)")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")
	return cmd
}
