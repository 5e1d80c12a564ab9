package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Regenerate key.Binding
	Copy       key.Binding
	Longer     key.Binding
	Shorter    key.Binding
	Upper      key.Binding
	Lower      key.Binding
	Digits     key.Binding
	Symbols    key.Binding
	Ambiguous  key.Binding
	EasyTyping key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Regenerate: key.NewBinding(key.WithKeys("r", "enter", " "), key.WithHelp("r", "regenerate")),
		Copy:       key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		Longer:     key.NewBinding(key.WithKeys("+", "=", "right"), key.WithHelp("+/→", "longer")),
		Shorter:    key.NewBinding(key.WithKeys("-", "_", "left"), key.WithHelp("-/←", "shorter")),
		Upper:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "A-Z")),
		Lower:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "a-z")),
		Digits:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "0-9")),
		Symbols:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "symbols")),
		Ambiguous:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "exclude l1IO0")),
		EasyTyping: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "easy typing")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Regenerate, k.Copy, k.Longer, k.Shorter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Regenerate, k.Copy, k.Longer, k.Shorter},
		{k.Upper, k.Lower, k.Digits, k.Symbols},
		{k.Ambiguous, k.EasyTyping, k.Theme},
		{k.Help, k.Quit},
	}
}
