// Package report renders evaluation reports and single comparisons for the
// terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-flowgraph/pkg/evaluation"
	"github.com/dd0wney/cluso-flowgraph/pkg/similarity"
)

var (
	titleColor  = lipgloss.Color("#FF00FF")
	headerColor = lipgloss.Color("#00FFFF")
	borderColor = lipgloss.Color("#666666")
)

// styles binds the palette to the colour profile of one writer
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	return stylesFor(lipgloss.NewRenderer(w))
}

func stylesFor(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(titleColor).MarginBottom(1),
		header: r.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(borderColor),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

func (s styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
}

// Render writes one table of pair scores per task followed by a summary of
// the per-task averages.
func Render(w io.Writer, r *evaluation.Report) error {
	if r == nil {
		return fmt.Errorf("render report: nil report")
	}
	s := newStyles(w)

	var b strings.Builder
	b.WriteString(s.title.Render("Flow chart agreement"))
	b.WriteString("\n")
	b.WriteString(s.muted.Render(fmt.Sprintf("run %s  started %s  took %s",
		r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Duration.Round(time.Millisecond))))
	b.WriteString("\n\n")

	for _, task := range r.Tasks {
		b.WriteString(s.title.Render("Task " + task.Task))
		b.WriteString("\n")
		t := s.table("Left", "Right", "Kind", "Node", "Edge", "Matched")
		for _, p := range task.Pairs {
			t.Row(p.Left, p.Right, string(p.Kind), score(p.NodeScore), score(p.EdgeScore), strconv.Itoa(p.Matched))
		}
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}

	b.WriteString(s.title.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(summaryTable(s, r).String())
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryTable(s styles, r *evaluation.Report) *table.Table {
	t := s.table("Task", "Inter node", "Inter edge", "System node", "System edge")
	for _, task := range r.Tasks {
		t.Row(task.Task,
			score(task.InterNode), score(task.InterEdge),
			score(task.SystemNode), score(task.SystemEdge))
	}
	return t
}

// RenderComparison writes the scores of one comparison and the matched
// vertex pairs.
func RenderComparison(w io.Writer, name string, res *similarity.Result) error {
	if res == nil {
		return fmt.Errorf("render comparison: nil result")
	}
	s := newStyles(w)

	var b strings.Builder
	b.WriteString(s.title.Render(name))
	b.WriteString("\n")

	scores := s.table("Node score", "Edge score", "Matched")
	scores.Row(score(res.NodeScore), score(res.EdgeScore), strconv.Itoa(len(res.Matches)))
	b.WriteString(scores.String())
	b.WriteString("\n")

	if len(res.Matches) > 0 {
		matches := s.table("A", "B", "Similarity")
		for _, m := range res.Matches {
			matches.Row(strconv.FormatUint(m.A, 10), strconv.FormatUint(m.B, 10), score(m.Similarity))
		}
		b.WriteString(matches.String())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
