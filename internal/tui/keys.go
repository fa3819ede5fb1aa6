package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause      key.Binding
	PauseUntil key.Binding
	Resume     key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause 5m"),
	),
	PauseUntil: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "pause until plugged"),
	),
	Resume: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resume"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r", "f5"),
		key.WithHelp("ctrl+r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.PauseUntil, k.Resume, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
