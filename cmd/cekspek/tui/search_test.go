package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quochao170402/cekspek/internal/search"
)

type recorder struct {
	queries []string
}

func (r *recorder) search(_ context.Context, q string) ([]search.Summary, error) {
	r.queries = append(r.queries, q)
	return []search.Summary{{ID: 1, Name: "POCO F6", BrandName: "Xiaomi"}}, nil
}

func typeText(t *testing.T, m SearchModel, text string) SearchModel {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(SearchModel)
	}
	return m
}

func update(t *testing.T, m SearchModel, msg tea.Msg) (SearchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SearchModel), cmd
}

func TestOnlyLatestKeystrokeSearches(t *testing.T) {
	rec := &recorder{}
	m := typeText(t, NewSearchModel(context.Background(), rec.search), "poc")
	assert.Equal(t, "poc", m.query)

	m, cmd := update(t, m, debounceMsg{ticket: 2, query: "po"})
	assert.Nil(t, cmd)
	assert.False(t, m.loading)

	m, cmd = update(t, m, debounceMsg{ticket: 3, query: "poc"})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	m, _ = update(t, m, cmd())
	assert.Equal(t, []string{"poc"}, rec.queries)
	assert.False(t, m.loading)
	require.Len(t, m.Results(), 1)
	assert.Contains(t, m.View(), "POCO F6")
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	rec := &recorder{}
	m := typeText(t, NewSearchModel(context.Background(), rec.search), "ab")

	m, cmd := update(t, m, debounceMsg{ticket: 2, query: "ab"})
	require.NotNil(t, cmd)
	stale := cmd()

	m = typeText(t, m, "c")
	m, _ = update(t, m, stale)
	assert.Empty(t, m.Results())
	assert.True(t, m.loading)
}

func TestShortQueryClearsResults(t *testing.T) {
	rec := &recorder{}
	m := typeText(t, NewSearchModel(context.Background(), rec.search), "a")
	m.results = []search.Summary{{Name: "old"}}

	m, cmd := update(t, m, debounceMsg{ticket: 1, query: "a"})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Results())
	assert.Empty(t, rec.queries)
	assert.NotContains(t, m.View(), "Tidak ada HP")
}

func TestEscQuits(t *testing.T) {
	m := NewSearchModel(context.Background(), (&recorder{}).search)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
