package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Pause  key.Binding
	Prev   key.Binding
	Next   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start/stop")),
		Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause/resume")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/→", "target")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("←/→", "target")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Pause, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Pause},
		{k.Prev, k.Next},
		{k.Help, k.Quit},
	}
}
