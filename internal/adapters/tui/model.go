// Package tui provides the full-screen dashboard using the Bubbletea
// framework.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is sent on every frame tick.
type frameMsg time.Time

// Model adapts a Dashboard to Bubbletea. Input does not arrive as tea
// messages; the dashboard polls its own byte source on every frame.
type Model struct {
	dash     *Dashboard
	interval time.Duration
	view     string
}

// NewModel creates a model ticking dash fps times a second.
func NewModel(dash *Dashboard, fps int) Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Model{dash: dash, interval: time.Second / time.Duration(fps)}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.interval)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.dash.Resize(msg.Width, msg.Height)

	case frameMsg:
		frame, quit := m.dash.Frame(time.Time(msg))
		if quit {
			return m, tea.Quit
		}
		m.view = frame
		return m, frameCmd(m.interval)
	}
	return m, nil
}

// View renders the last frame.
func (m Model) View() string {
	if m.view == "" {
		return "Loading..."
	}
	return m.view
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
