package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tally/internal/modules/metrics/dto"
	"tally/internal/ui/theme"
)

// metricsPort is the slice of the metrics module this browser needs.
type metricsPort interface {
	Compare(ctx context.Context, input dto.CompareInput) (dto.CompareOutput, error)
	LatestDaily(ctx context.Context, dbPath string) ([]dto.DayRow, error)
}

// Options configure what the browser loads on startup.
type Options struct {
	Author   string
	Since    string
	HubSince string
	Project  string
	// DBPath loads the latest sqlite projection instead of recomputing.
	DBPath string
	// Compare inputs used when recomputing.
	ClaudeDir string
	CodexDir  string
	Bundle    string
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Group key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Group, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Group, k.Quit}}
}

type rowsMsg struct {
	rows []dto.DayRow
	err  error
}

type Model struct {
	metrics metricsPort
	opts    Options

	rows     []dto.DayRow // finest grouping: day+bucket
	err      error
	loading  bool
	byBucket bool // current grouping toggle
	cursor   int
	width    int
	height   int

	keys keyMap
	help help.Model
}

func NewModel(metrics metricsPort, opts Options) Model {
	return Model{
		metrics:  metrics,
		opts:     opts,
		loading:  true,
		byBucket: true,
		keys: keyMap{
			Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Group: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle grouping")),
			Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		},
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	ctx := context.Background()
	if m.opts.DBPath != "" {
		rows, err := m.metrics.LatestDaily(ctx, m.opts.DBPath)
		return rowsMsg{rows: rows, err: err}
	}
	out, err := m.metrics.Compare(ctx, dto.CompareInput{
		ClaudeDir: m.opts.ClaudeDir,
		CodexDir:  m.opts.CodexDir,
		Bundle:    m.opts.Bundle,
		Author:    m.opts.Author,
		Since:     m.opts.Since,
		HubSince:  m.opts.HubSince,
		Project:   m.opts.Project,
		Mode:      dto.ModeDayBucket,
	})
	return rowsMsg{rows: out.Days, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case rowsMsg:
		m.loading = false
		m.rows = msg.rows
		m.err = msg.err
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Group):
			m.byBucket = !m.byBucket
			m.cursor = 0
		}
	}
	return m, nil
}

// visible re-aggregates the stored day+bucket rows when the bucket split is
// toggled off. Rates are recomputed from the combined sums, never averaged.
func (m Model) visible() []dto.DayRow {
	if m.byBucket {
		return m.rows
	}
	byDay := make(map[string]*dto.DayRow)
	for _, r := range m.rows {
		agg, ok := byDay[r.Day]
		if !ok {
			agg = &dto.DayRow{Day: r.Day}
			byDay[r.Day] = agg
		}
		agg.Sessions += r.Sessions
		agg.Hours += r.Hours
		agg.Commits += r.Commits
		agg.Delta += r.Delta
	}
	out := make([]dto.DayRow, 0, len(byDay))
	for _, agg := range byDay {
		if agg.Hours > 0 {
			agg.DeltaPerHour = float64(agg.Delta) / agg.Hours
			agg.CommitsPerHour = float64(agg.Commits) / agg.Hours
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func (m Model) View() string {
	var b strings.Builder

	title := "tally · daily metrics"
	if m.opts.DBPath != "" {
		title += " (projection)"
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(theme.Muted.Render("computing metrics..."))
	case m.err != nil:
		b.WriteString(theme.Hot.Render("error: " + m.err.Error()))
	default:
		b.WriteString(m.table())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return theme.App.Render(b.String())
}

func (m Model) table() string {
	rows := m.visible()
	if len(rows) == 0 {
		return theme.Muted.Render("no metric rows")
	}

	header := fmt.Sprintf("%-12s", "day")
	if m.byBucket {
		header += fmt.Sprintf("%-15s", "bucket")
	}
	header += fmt.Sprintf("%9s %8s %9s %8s %8s %8s",
		"sessions", "hours", "commits", "delta", "dlt/h", "cmt/h")

	var b strings.Builder
	b.WriteString(theme.Header.Render(header))
	b.WriteString("\n")

	visible := m.pageBounds(len(rows))
	for i := visible.lo; i < visible.hi; i++ {
		r := rows[i]
		line := fmt.Sprintf("%-12s", r.Day)
		if m.byBucket {
			line += fmt.Sprintf("%-15s", r.Bucket)
		}
		line += fmt.Sprintf("%9d %8.2f %9d %8d %8.1f %8.2f",
			r.Sessions, r.Hours, r.Commits, r.Delta, r.DeltaPerHour, r.CommitsPerHour)
		if i == m.cursor {
			line = theme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Render(b.String())
}

type bounds struct{ lo, hi int }

// pageBounds keeps the cursor inside the rows that fit the terminal.
func (m Model) pageBounds(total int) bounds {
	visible := m.height - 7
	if visible < 1 {
		visible = total
	}
	if total <= visible {
		return bounds{0, total}
	}
	lo := m.cursor - visible/2
	if lo < 0 {
		lo = 0
	}
	hi := lo + visible
	if hi > total {
		hi = total
		lo = hi - visible
	}
	return bounds{lo, hi}
}
