package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the list view bindings.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Toggle     key.Binding
	Add        key.Binding
	Delete     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextFilter: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next filter")),
		PrevFilter: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev filter")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Add:        key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.NextFilter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextFilter, k.PrevFilter},
		{k.Add, k.Toggle, k.Delete},
		{k.Help, k.Quit},
	}
}
