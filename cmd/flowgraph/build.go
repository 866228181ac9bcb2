package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-flowgraph/pkg/flow"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/validation"
)

type buildOptions struct {
	actionsPath    string
	pairsPath      string
	outputPath     string
	keepSingletons bool
}

func newBuildCmd(a *app) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a flow chart from an annotated recipe",
		Long: `Build reads one recipe as produced by the annotation pipeline (JSON with
role-tagged sentences) and writes its action flow chart as DOT.

Without dependency pairs the lemma heuristic links each action to the
earlier actions that last touched its objects. With pairs, either from
--pairs or the document's "pairs" field, the accepted pairs are laid
down first and the heuristic flow is merged in.

Examples:
  flowgraph build --actions recipe.json
  flowgraph build --actions recipe.json --pairs pairs.json -o recipe.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.outputPath != "" {
				f, err := os.Create(opts.outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			return runBuild(a, opts, out)
		},
	}

	cmd.Flags().StringVarP(&opts.actionsPath, "actions", "a", "", "annotated recipe JSON")
	cmd.Flags().StringVarP(&opts.pairsPath, "pairs", "p", "", "JSON list of accepted dependency pairs")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "DOT output file (default stdout)")
	cmd.Flags().BoolVar(&opts.keepSingletons, "keep-singletons", false, "keep actions with no dependencies")
	_ = cmd.MarkFlagRequired("actions")
	return cmd
}

func runBuild(a *app, opts *buildOptions, out io.Writer) error {
	var doc flow.Document
	if err := readJSON(opts.actionsPath, &doc); err != nil {
		return err
	}
	if opts.pairsPath != "" {
		var pairs []flow.Pair
		if err := readJSON(opts.pairsPath, &pairs); err != nil {
			return err
		}
		doc.Pairs = append(doc.Pairs, pairs...)
	}
	if err := validation.ValidateDocument(&doc); err != nil {
		return fmt.Errorf("invalid document %s: %w", opts.actionsPath, err)
	}

	actions, err := flow.Assemble(flow.NewRegistry(), doc.Sentences)
	if err != nil {
		return fmt.Errorf("assemble actions: %w", err)
	}

	heuristic := flow.NewHeuristicBuilder(a.logger, a.metrics)
	var f *flow.FlowGraph
	if len(doc.Pairs) > 0 {
		f = flow.NewHybridBuilder(flow.NewPairSet(doc.Pairs...), heuristic).Build(actions)
	} else {
		f = heuristic.Build(actions)
	}

	removed := 0
	if !opts.keepSingletons {
		removed = f.RemoveSingletons()
	}

	stats := f.Stats()
	a.logger.Info("built flow chart",
		logging.String("title", doc.Title),
		logging.Path(opts.actionsPath),
		logging.Bool("hybrid", len(doc.Pairs) > 0),
		logging.Count(f.Len()),
		logging.Int("edges", f.EdgeCount()),
		logging.Int("pairs", len(doc.Pairs)),
		logging.Int("singletons_removed", removed),
		logging.Int("rejected", stats.Rejected),
		logging.Int("pruned", stats.Pruned))

	return f.WriteDOT(out)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
