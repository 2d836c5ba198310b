package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the dashboard key bindings. Keys decoded from the raw
// input stream are matched against these with key.Matches.
type keyMap struct {
	Quit   key.Binding
	Pause  key.Binding
	Help   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume day/year/life/deadline"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "H"),
			key.WithHelp("h", "open/close help/settings"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous menu item"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next menu item"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "kpenter"),
			key.WithHelp("enter", "select menu item"),
		),
	}
}

// helpLines lists every binding as "key: description".
func (k keyMap) helpLines() []string {
	bindings := []key.Binding{k.Quit, k.Pause, k.Help, k.Up, k.Down, k.Select}
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, h.Key+": "+h.Desc)
	}
	return lines
}
