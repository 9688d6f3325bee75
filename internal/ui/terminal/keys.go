package terminal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start     key.Binding
	Pause     key.Binding
	Reset     key.Binding
	WorkUp    key.Binding
	WorkDown  key.Binding
	BreakUp   key.Binding
	BreakDown key.Binding
	Compact   key.Binding
	KeepOnTop key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		WorkUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "work minutes")),
		WorkDown:  key.NewBinding(key.WithKeys("down", "j")),
		BreakUp:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "break minutes")),
		BreakDown: key.NewBinding(key.WithKeys("left", "h")),
		Compact:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		KeepOnTop: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "keep on top")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Start, keys.Pause, keys.Reset, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Start, keys.Pause, keys.Reset},
		{keys.WorkUp, keys.BreakUp},
		{keys.Compact, keys.KeepOnTop},
		{keys.Help, keys.Quit},
	}
}
