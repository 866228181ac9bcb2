package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-flowgraph/pkg/config"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/metrics"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries the state shared by every subcommand
type app struct {
	configPath  string
	logLevel    string
	showMetrics bool

	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "flowgraph",
		Short: "Build and compare recipe action flow charts",
		Long: `Flowgraph turns role-annotated recipe text into action flow charts and
scores how well two flow charts agree.

Flow charts are read and written in a restricted DOT dialect: one
"id [label=\"text\"];" statement per action and "a -> b;" per dependency.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.showMetrics || a.metrics == nil {
				return nil
			}
			return a.metrics.WriteText(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "print Prometheus metrics to stderr on exit")

	root.AddCommand(newCompareCmd(a))
	root.AddCommand(newBuildCmd(a))
	root.AddCommand(newEvaluateCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = logging.NewJSONLogger(cmd.ErrOrStderr(), cfg.Level())
	a.metrics = metrics.NewRegistry()
	logging.SetDefaultLogger(a.logger)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flowgraph %s\n", Version)
		},
	}
}
