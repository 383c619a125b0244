package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/styleselect/internal/logging/events"
)

// handleTextInput applies type-ahead keys to the list filter.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Clear):
		if !m.list.ClearFilter() {
			return false
		}
		events.Filter.Cleared()
	case key.Matches(msg, m.keys.DeleteWord):
		if !m.list.DeleteFilterWordBackward() {
			return false
		}
		events.Filter.Backspace(m.list.Filter)
	case key.Matches(msg, m.keys.Backspace):
		if !m.list.DeleteFilterRuneBackward() {
			return false
		}
		events.Filter.Backspace(m.list.Filter)
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		if !printable(text) || !m.list.InsertFilterText(text) {
			return false
		}
		events.Filter.Append(m.list.Filter)
	default:
		return false
	}
	m.syncViewport()
	return true
}

func printable(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
