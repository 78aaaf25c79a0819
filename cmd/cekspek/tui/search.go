// Package tui holds the interactive terminal views.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quochao170402/cekspek/cmd/cekspek/output"
	"github.com/quochao170402/cekspek/internal/search"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB")).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Searcher runs one query against the catalog.
type Searcher func(ctx context.Context, query string) ([]search.Summary, error)

type debounceMsg struct {
	ticket uint64
	query  string
}

type resultsMsg struct {
	ticket  uint64
	results []search.Summary
	err     error
}

// SearchModel searches as the user types. A query runs only after the input
// has been idle for the debounce window, and only the newest query's
// results are shown.
type SearchModel struct {
	input    textinput.Model
	search   Searcher
	ctx      context.Context
	seq      *search.Sequencer
	debounce time.Duration

	query   string
	results []search.Summary
	loading bool
	err     error
}

func NewSearchModel(ctx context.Context, s Searcher) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Cari HP... (min. 2 huruf)"
	ti.CharLimit = 100
	ti.Focus()

	return SearchModel{
		input:    ti,
		search:   s,
		ctx:      ctx,
		seq:      &search.Sequencer{},
		debounce: search.DebounceWindow,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case debounceMsg:
		if !m.seq.IsLatest(msg.ticket) {
			return m, nil
		}
		q, ok := search.Normalize(msg.query)
		if !ok {
			m.results, m.loading, m.err = nil, false, nil
			return m, nil
		}
		m.loading = true
		return m, m.runSearch(msg.ticket, q)

	case resultsMsg:
		if !m.seq.IsLatest(msg.ticket) {
			return m, nil
		}
		m.loading = false
		m.results, m.err = msg.results, msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.query {
		m.query = v
		return m, tea.Batch(cmd, m.schedule(v))
	}
	return m, cmd
}

func (m SearchModel) schedule(query string) tea.Cmd {
	ticket := m.seq.Next()
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{ticket: ticket, query: query}
	})
}

func (m SearchModel) runSearch(ticket uint64, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.search(m.ctx, query)
		return resultsMsg{ticket: ticket, results: results, err: err}
	}
}

func (m SearchModel) Results() []search.Summary {
	return m.results
}

func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CekSpek · Cari HP"))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(m.err.Error()))
	case m.loading:
		b.WriteString("Mencari...")
	case len(strings.TrimSpace(m.query)) < search.MinQueryLength:
	default:
		b.WriteString(output.SearchResults(m.results))
	}

	b.WriteString(helpStyle.Render("esc untuk keluar"))
	b.WriteByte('\n')
	return b.String()
}
