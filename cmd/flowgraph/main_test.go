package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-flowgraph/pkg/dot"
	"github.com/dd0wney/cluso-flowgraph/pkg/evaluation"
	"github.com/dd0wney/cluso-flowgraph/pkg/graph"
	"github.com/dd0wney/cluso-flowgraph/pkg/logging"
	"github.com/dd0wney/cluso-flowgraph/pkg/similarity"
)

const chart = `digraph {
  0 [label="Mix the chocolate and milk together."];
  1 [label="Put in pan."];
  0 -> 1;
}`

const recipe = `{
  "title": "onions",
  "sentences": [
    [
      {"word": {"tokens": [{"text": "Chop", "lemma": "chop", "beginOffset": 0, "endOffset": 4}]}, "role": "action", "head": -1},
      {"word": {"tokens": [{"text": "onion", "lemma": "onion", "beginOffset": 9, "endOffset": 14}], "entity": "ingredient"}, "role": "dobject", "head": 0}
    ],
    [
      {"word": {"tokens": [{"text": "Fry", "lemma": "fry", "beginOffset": 16, "endOffset": 19}]}, "role": "action", "head": -1},
      {"word": {"tokens": [{"text": "onion", "lemma": "onion", "beginOffset": 24, "endOffset": 29}], "entity": "ingredient"}, "role": "dobject", "head": 0}
    ]
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(logging.EnvLogLevel, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "flowgraph "+Version+"\n", out)
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.dot", chart)
	b := writeFile(t, dir, "b.dot", chart)

	out, _, err := execute(t, "compare", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "1.000")

	out, _, err = execute(t, "compare", "--json", a, b)
	require.NoError(t, err)
	var res similarity.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1.0, res.NodeScore)
	assert.Equal(t, 1.0, res.EdgeScore)
	assert.Len(t, res.Matches, 2)
}

func TestCompare_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.dot", chart)
	bad := writeFile(t, dir, "bad.dot", "digraph { 0 -> ; }")

	_, _, err := execute(t, "compare", a, filepath.Join(dir, "missing.dot"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "compare", a, bad)
	assert.ErrorIs(t, err, dot.ErrMalformed)

	_, _, err = execute(t, "compare", a)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	actions := writeFile(t, dir, "recipe.json", recipe)

	out, stderr, err := execute(t, "build", "--actions", actions, "--metrics")
	require.NoError(t, err)

	g, err := dot.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []graph.Edge{{From: 0, To: 1}}, g.Edges())
	label, _ := g.Label(1)
	assert.Equal(t, "fry onion", label)

	assert.Contains(t, stderr, "built flow chart")
	assert.Contains(t, stderr, `flowgraph_edges_total{result="inserted"} 1`)
}

func TestBuild_WithPairs(t *testing.T) {
	dir := t.TempDir()
	actions := writeFile(t, dir, "recipe.json", recipe)
	pairs := writeFile(t, dir, "pairs.json", `[{"source": 0, "target": 1}]`)
	output := filepath.Join(dir, "recipe.dot")

	_, _, err := execute(t, "build", "-a", actions, "-p", pairs, "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	g, err := dot.Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, []graph.Edge{{From: 0, To: 1}}, g.Edges())
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "build")
	assert.Error(t, err, "--actions is required")

	empty := writeFile(t, dir, "empty.json", `{"title": "nothing", "sentences": []}`)
	_, _, err = execute(t, "build", "--actions", empty)
	assert.Error(t, err)

	reversed := writeFile(t, dir, "pairs.json", `[{"source": 1, "target": 0}]`)
	actions := writeFile(t, dir, "recipe.json", recipe)
	_, _, err = execute(t, "build", "--actions", actions, "--pairs", reversed)
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flowcharts/1/taskA.dot", chart)
	writeFile(t, dir, "flowcharts/2/taskA.dot", chart)
	writeFile(t, dir, "flowcharts/system/taskA.dot", chart)
	cfg := writeFile(t, dir, "flowgraph.yaml", `
evaluation:
  workers: 2
corpus:
  root: `+filepath.Join(dir, "flowcharts")+`
  tasks: [A]
  annotators: ["1", "2"]
  system: system
`)

	out, _, err := execute(t, "evaluate", "--config", cfg, "--json")
	require.NoError(t, err)

	var r evaluation.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Tasks, 1)
	assert.Len(t, r.Tasks[0].Pairs, 3)
	assert.Equal(t, 1.0, r.Tasks[0].InterNode)
	assert.Equal(t, 1.0, r.Tasks[0].SystemEdge)

	out, _, err = execute(t, "evaluate", "--config", cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Task A"))
}

func TestEvaluate_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "flowgraph.yaml", "corpus:\n  root: "+dir+"\n  tasks: [A]\n  annotators: [\"1\"]\n")

	_, _, err := execute(t, "evaluate", "--config", cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "evaluate")
	assert.ErrorIs(t, err, evaluation.ErrEmptyCorpus)

	_, _, err = execute(t, "evaluate", "--log-level", "verbose")
	assert.Error(t, err)
}
