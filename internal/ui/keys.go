package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Pick       key.Binding
	Close      key.Binding
	Focus      key.Binding
	Clear      key.Binding
	DeleteWord key.Binding
	Backspace  key.Binding
	Quit       key.Binding
	QuitShort  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:       key.NewBinding(key.WithKeys("enter", " ", "down", "alt+down"), key.WithHelp("enter", "open")),
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown")),
		Home:       key.NewBinding(key.WithKeys("home")),
		End:        key.NewBinding(key.WithKeys("end")),
		Pick:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+u")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w")),
		Backspace:  key.NewBinding(key.WithKeys("backspace")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		QuitShort:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) collapsedHelp() []key.Binding {
	return []key.Binding{k.Open, k.Focus, k.QuitShort}
}

func (k keyMap) expandedHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pick, k.Close, k.Quit}
}
