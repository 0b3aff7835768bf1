// Package tui is a terminal view of an analysis: progress while it runs,
// then a page-per-city report browser.
package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"

	"github.com/sells-group/launchlens/internal/workflow"
)

// SnapshotMsg carries a controller snapshot into the program.
type SnapshotMsg workflow.Snapshot

// Navigator is the part of the controller the browser drives.
// *workflow.Controller satisfies it.
type Navigator interface {
	Next() bool
	Previous() bool
	ToggleSection(title string) bool
	Snapshot() workflow.Snapshot
}

// Model is the bubbletea model.
type Model struct {
	nav      Navigator
	title    string
	snap     workflow.Snapshot
	spinner  spinner.Model
	viewport viewport.Model
	width    int
}

// New returns a model showing nav's current state under title.
func New(nav Navigator, title string) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		nav:      nav,
		title:    title,
		snap:     nav.Snapshot(),
		spinner:  spin,
		viewport: viewport.New(80, 20),
		width:    80,
	}
	m.refresh()
	return m
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles snapshots, keys, resizes and spinner ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.apply(workflow.Snapshot(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "right", "n", "l":
		if m.nav.Next() {
			m.apply(m.nav.Snapshot())
		}
		return m, nil
	case "left", "p", "h":
		if m.nav.Previous() {
			m.apply(m.nav.Snapshot())
		}
		return m, nil
	}

	if i, err := strconv.Atoi(key); err == nil && i >= 1 && i <= len(Sections) {
		if m.snap.Report.Len() > 0 {
			m.nav.ToggleSection(Sections[i-1])
			m.apply(m.nav.Snapshot())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// apply keeps the newest snapshot. Snapshots published from different
// goroutines can arrive out of order.
func (m *Model) apply(s workflow.Snapshot) {
	if s.Seq < m.snap.Seq {
		return
	}
	m.snap = s
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(Body(m.snap, m.width))
}

// Snapshot returns the snapshot being displayed.
func (m *Model) Snapshot() workflow.Snapshot {
	return m.snap
}

// View renders the header, progress or report, and key help.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.snap.State.InFlight() {
		b.WriteString(m.spinner.View() + " Analyzing...  " + ProgressLine(m.snap.Progress))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("q quit"))
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("←/→ city  1-4 sections  ↑/↓ scroll  q quit"))
	return b.String()
}

// Run shows ctrl in a full-screen program until the user quits or ctx is
// done.
func Run(ctx context.Context, ctrl *workflow.Controller, title string) error {
	m := New(ctrl, title)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	// Send blocks until the event loop reads it, and the event loop may be
	// the goroutine that triggered the snapshot.
	ctrl.Subscribe(func(s workflow.Snapshot) {
		go p.Send(SnapshotMsg(s))
	})
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return eris.Wrap(err, "tui: run")
	}
	return nil
}
