package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Mock    key.Binding
	Theme   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Prev:    key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "previous page")),
	Next:    key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open post")),
	Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Mock:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle mock mode")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
	Refresh: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpKeys is the order bindings appear in the help screen
var helpKeys = []key.Binding{
	keys.Up, keys.Down, keys.Prev, keys.Next, keys.Enter, keys.Back,
	keys.Mock, keys.Theme, keys.Refresh, keys.Help, keys.Quit,
}
