package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-flowgraph/pkg/evaluation"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(titleColor).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginLeft(2)

	detailBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

type view int

const (
	summaryView view = iota
	pairsView
	viewCount
)

var viewNames = [...]string{"Summary", "Pairs"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Quit},
	}
}

// Browser is an interactive view of an evaluation report
type Browser struct {
	report      *evaluation.Report
	styles      styles
	pairs       []taskPair
	currentView view
	pairTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
}

type taskPair struct {
	task string
	evaluation.PairScore
}

// NewBrowser creates a browser over r. Run it with tea.NewProgram.
func NewBrowser(r *evaluation.Report) Browser {
	var pairs []taskPair
	var rows []table.Row
	for _, task := range r.Tasks {
		for _, p := range task.Pairs {
			pairs = append(pairs, taskPair{task: task.Task, PairScore: p})
			rows = append(rows, table.Row{task.Task, p.Left, p.Right, score(p.NodeScore), score(p.EdgeScore)})
		}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Task", Width: 8},
			{Title: "Left", Width: 10},
			{Title: "Right", Width: 10},
			{Title: "Node", Width: 7},
			{Title: "Edge", Width: 7},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(headerColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(titleColor).
		Bold(false)
	t.SetStyles(s)

	return Browser{
		report:    r,
		styles:    stylesFor(lipgloss.DefaultRenderer()),
		pairs:     pairs,
		pairTable: t,
		help:      help.New(),
		keys:      keys,
	}
}

// Init implements tea.Model
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		if rows := msg.Height - 14; rows > 3 {
			b.pairTable.SetHeight(rows)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.Tab):
			b.currentView = (b.currentView + 1) % viewCount
			return b, nil
		case key.Matches(msg, b.keys.ShiftTab):
			b.currentView = (b.currentView + viewCount - 1) % viewCount
			return b, nil
		}
	}

	var cmd tea.Cmd
	if b.currentView == pairsView {
		b.pairTable, cmd = b.pairTable.Update(msg)
	}
	return b, cmd
}

// View implements tea.Model
func (b Browser) View() string {
	if b.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(b.styles.title.Render("Flow chart agreement " + b.report.RunID.String()))
	s.WriteString("\n")
	s.WriteString(b.renderTabs())
	s.WriteString("\n")

	switch b.currentView {
	case summaryView:
		s.WriteString(contentStyle.Render(summaryTable(b.styles, b.report).String()))
	case pairsView:
		s.WriteString(contentStyle.Render(b.renderPairs()))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(b.help.ShortHelpView(b.keys.ShortHelp())))
	return s.String()
}

func (b Browser) renderTabs() string {
	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		if view(i) == b.currentView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (b Browser) renderPairs() string {
	if len(b.pairs) == 0 {
		return "No comparisons in this report"
	}

	detail := "No pair selected"
	if p, ok := b.selected(); ok {
		detail = fmt.Sprintf("Task:     %s\nLeft:     %s\nRight:    %s\nKind:     %s\nNode:     %s\nEdge:     %s\nMatched:  %d",
			p.task, p.Left, p.Right, p.Kind, score(p.NodeScore), score(p.EdgeScore), p.Matched)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		b.pairTable.View(),
		detailBoxStyle.MarginLeft(2).Render(detail))
}

func (b Browser) selected() (taskPair, bool) {
	i := b.pairTable.Cursor()
	if i < 0 || i >= len(b.pairs) {
		return taskPair{}, false
	}
	return b.pairs[i], true
}
