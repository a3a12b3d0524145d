package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	togglePlay key.Binding
	reset      key.Binding
	skip       key.Binding
	work       key.Binding
	shortBreak key.Binding
	longBreak  key.Binding
	task       key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
}

var defaultKeymap = keyMap{
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "play/pause"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	work: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "work"),
	),
	shortBreak: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "short break"),
	),
	longBreak: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "long break"),
	),
	task: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "task"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.togglePlay, k.reset, k.skip, k.task, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.togglePlay, k.reset, k.skip},
		{k.work, k.shortBreak, k.longBreak},
		{k.task, k.quit},
	}
}
