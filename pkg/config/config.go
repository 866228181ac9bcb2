package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/similarity"
	"github.com/dd0wney/cluso-flowgraph/pkg/validation"
)

// DefaultWorkers is the comparison concurrency when none is configured
const DefaultWorkers = 4

// MaxWorkers bounds the evaluation worker pool
const MaxWorkers = 256

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Config is the flowgraph configuration file
type Config struct {
	Similarity similarity.Options `yaml:"similarity"`
	Evaluation EvaluationConfig   `yaml:"evaluation"`
	Corpus     CorpusConfig       `yaml:"corpus"`
	LogLevel   string             `yaml:"log_level"`
}

// EvaluationConfig tunes the evaluation run
type EvaluationConfig struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

// CorpusConfig locates the annotated flow charts. Each annotator directory
// under Root holds one task<name>.dot file per task; System names the
// directory with the generated flow charts.
type CorpusConfig struct {
	Root       string   `yaml:"root"`
	Tasks      []string `yaml:"tasks" validate:"dive,required"`
	Annotators []string `yaml:"annotators" validate:"dive,required"`
	System     string   `yaml:"system"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Similarity: similarity.DefaultOptions(),
		Evaluation: EvaluationConfig{Workers: DefaultWorkers},
		Corpus: CorpusConfig{
			Root:   "flowcharts",
			System: "system",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML configuration file on top of the defaults and applies
// environment overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if level := os.Getenv(logging.EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	cfg.Evaluation.Workers = validation.DefaultOrInt(cfg.Evaluation.Workers, DefaultWorkers)

	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and value ranges
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	return validation.NewConfigValidator("Config").
		RangeFloat("Similarity.Threshold", c.Similarity.Threshold, 0, 1).
		PositiveFloat("Similarity.Alpha", c.Similarity.Alpha).
		MinFloat("Similarity.Shift", c.Similarity.Shift, 1).
		RangeInt("Evaluation.Workers", c.Evaluation.Workers, 1, MaxWorkers).
		OneOf("LogLevel", strings.ToLower(strings.TrimSpace(c.LogLevel)), logLevels).
		When(len(c.Corpus.Tasks) > 0, func(v *validation.ConfigValidator) {
			v.Required("Corpus.Root", c.Corpus.Root).
				Custom("Corpus.Annotators", func() error {
					if len(c.Corpus.Annotators) == 0 && c.Corpus.System == "" {
						return fmt.Errorf("no annotators and no system to evaluate")
					}
					return nil
				})
		}).
		Validate()
}

// Level returns the configured log level
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
