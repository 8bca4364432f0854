package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	search    key.Binding
	favorites key.Binding
	channels  key.Binding
	toggle    key.Binding
	refresh   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "watch")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		favorites: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my list")),
		channels:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "live tv")),
		toggle:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.search, k.favorites, k.channels},
		{k.toggle, k.refresh, k.back, k.quit},
	}
}
