package cmd

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applyRecorder struct {
	queries []string
	sorts   []search.SortKey
}

func (r *applyRecorder) apply(q string, key search.SortKey) ([]table.Row, error) {
	r.queries = append(r.queries, q)
	r.sorts = append(r.sorts, key)
	if q == "" {
		return []table.Row{{"a"}, {"b"}}, nil
	}
	return []table.Row{{"a"}}, nil
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestBrowseFiltersOnlySettledQuery(t *testing.T) {
	rec := &applyRecorder{}
	m := newBrowseModel("Test", []table.Column{{Title: "Name", Width: 10}}, 2, time.Hour, rec.apply)
	require.Equal(t, []string{""}, rec.queries, "initial render")
	assert.Equal(t, 2, m.shown)

	var model tea.Model = m
	model = typeText(t, model, "jr")
	assert.Equal(t, []string{""}, rec.queries, "keystrokes do not filter")
	assert.True(t, model.(browseModel).query.Pending())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := waitForSettle(m.notify, m.query)()
	assert.Equal(t, settledMsg("jr"), msg)

	model, cmd := model.Update(msg)
	assert.NotNil(t, cmd, "waits for the next settled value")
	assert.Equal(t, []string{"", "jr"}, rec.queries)
	assert.Equal(t, 1, model.(browseModel).shown)
	m.query.Stop()
}

func TestBrowseDebounceWindow(t *testing.T) {
	rec := &applyRecorder{}
	m := newBrowseModel("Test", []table.Column{{Title: "Name", Width: 10}}, 2, 10*time.Millisecond, rec.apply)
	defer m.query.Stop()

	var model tea.Model = m
	model = typeText(t, model, "abc")

	select {
	case <-m.notify:
	case <-time.After(time.Second):
		t.Fatal("query never settled")
	}
	assert.Equal(t, "abc", m.query.Settled())
	model.Update(settledMsg(m.query.Settled()))
	assert.Equal(t, []string{"", "abc"}, rec.queries)
}

func TestBrowseSortCycles(t *testing.T) {
	rec := &applyRecorder{}
	m := newBrowseModel("Test", []table.Column{{Title: "Name", Width: 10}}, 2, time.Hour, rec.apply)
	defer m.query.Stop()

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, []search.SortKey{search.SortNone, search.SortName, search.SortGraduationYear}, rec.sorts)
}

func TestBrowseQuitStopsDebouncer(t *testing.T) {
	rec := &applyRecorder{}
	m := newBrowseModel("Test", []table.Column{{Title: "Name", Width: 10}}, 2, time.Hour, rec.apply)

	var model tea.Model = m
	model = typeText(t, model, "x")
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.query.Pending())
}

func TestBrowseSettleWaitEndsOnQuit(t *testing.T) {
	rec := &applyRecorder{}
	m := newBrowseModel("Test", []table.Column{{Title: "Name", Width: 10}}, 2, time.Hour, rec.apply)

	result := make(chan tea.Msg, 1)
	go func() { result <- waitForSettle(m.notify, m.query)() }()

	var model tea.Model = m
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	select {
	case msg := <-result:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("settle wait still blocked after quit")
	}
}
