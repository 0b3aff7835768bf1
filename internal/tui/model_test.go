package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/launchlens/internal/apitest"
	"github.com/sells-group/launchlens/internal/progress"
	"github.com/sells-group/launchlens/internal/report"
	"github.com/sells-group/launchlens/internal/workflow"
)

// fakeNav is a Navigator over a fixed report.
type fakeNav struct {
	snap  workflow.Snapshot
	pager *report.Pager
}

func newFakeNav(t *testing.T) *fakeNav {
	t.Helper()
	rep, err := report.Parse([]byte(apitest.ThreeCityReport))
	require.NoError(t, err)
	return &fakeNav{
		snap:  workflow.Snapshot{Seq: 1, State: workflow.Succeeded, Report: rep},
		pager: report.NewPager(rep.Len()),
	}
}

func (f *fakeNav) bump() {
	f.snap.Seq++
	f.snap.Page = f.pager.Index()
	f.snap.Expanded = f.pager.Expansion()
}

func (f *fakeNav) Next() bool {
	ok := f.pager.Next()
	f.bump()
	return ok
}

func (f *fakeNav) Previous() bool {
	ok := f.pager.Previous()
	f.bump()
	return ok
}

func (f *fakeNav) ToggleSection(title string) bool {
	open := f.pager.Toggle(title)
	f.bump()
	return open
}

func (f *fakeNav) Snapshot() workflow.Snapshot { return f.snap }

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Navigation(t *testing.T) {
	nav := newFakeNav(t)
	m := New(nav, "Coffee Shop")

	m.Update(key("right"))
	assert.Equal(t, 1, m.Snapshot().Page)
	assert.Contains(t, Body(m.Snapshot(), 120), "2. Bengaluru")

	m.Update(key("n"))
	m.Update(key("n"))
	assert.Equal(t, 2, m.Snapshot().Page, "next stops at the last city")

	m.Update(key("left"))
	m.Update(key("p"))
	m.Update(key("p"))
	assert.Equal(t, 0, m.Snapshot().Page)
}

func TestModel_ToggleSections(t *testing.T) {
	nav := newFakeNav(t)
	m := New(nav, "Coffee Shop")

	m.Update(key("1"))
	assert.True(t, m.Snapshot().Expanded[SectionInfluencers])
	assert.Contains(t, Body(m.Snapshot(), 120), "Asha Rao (Instagram) - Food | Street food explorer")

	m.Update(key("right"))
	assert.True(t, m.Snapshot().Expanded[SectionInfluencers], "expansion survives navigation")

	m.Update(key("1"))
	assert.False(t, m.Snapshot().Expanded[SectionInfluencers])

	seq := m.Snapshot().Seq
	m.Update(key("9"))
	assert.Equal(t, seq, m.Snapshot().Seq, "keys past the last section are ignored")
}

func TestModel_DropsStaleSnapshots(t *testing.T) {
	nav := newFakeNav(t)
	m := New(nav, "x")

	m.Update(SnapshotMsg(workflow.Snapshot{Seq: 10, State: workflow.Failed, Err: "quota exceeded"}))
	m.Update(SnapshotMsg(workflow.Snapshot{Seq: 9, State: workflow.AwaitingResult}))

	assert.Equal(t, workflow.Failed, m.Snapshot().State)
	assert.Contains(t, m.View(), "quota exceeded")
}

func TestModel_ProgressView(t *testing.T) {
	nav := newFakeNav(t)
	m := New(nav, "x")
	m.Update(SnapshotMsg(workflow.Snapshot{
		Seq:      5,
		State:    workflow.AwaitingResult,
		Progress: progress.State{Percent: 42, Remaining: 95, Running: true},
	}))

	view := m.View()
	assert.Contains(t, view, "42%")
	assert.Contains(t, view, "1:35")
}

func TestModel_Quit(t *testing.T) {
	m := New(newFakeNav(t), "x")
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBody(t *testing.T) {
	nav := newFakeNav(t)
	body := Body(nav.snap, 120)
	assert.Contains(t, body, "Best location to launch: Bengaluru")
	assert.Contains(t, body, report.DefaultSubheading)
	assert.Contains(t, body, "1. Pune")
	assert.Contains(t, body, "(1 of 3)")

	empty := Body(workflow.Snapshot{Report: &report.Report{}}, 80)
	assert.Contains(t, empty, "no matching cities")

	assert.Empty(t, Body(workflow.Snapshot{}, 80))
}
