package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/styleselect/internal/engine"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
// Quit commands are not executed.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Key sends a key press by name, e.g. "enter", "down" or "h".
func (h *Harness) Key(name string) {
	switch name {
	case "enter":
		h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.Send(tea.KeyMsg{Type: tea.KeyEscape})
	case "up":
		h.Send(tea.KeyMsg{Type: tea.KeyUp})
	case "down":
		h.Send(tea.KeyMsg{Type: tea.KeyDown})
	case "tab":
		h.Send(tea.KeyMsg{Type: tea.KeyTab})
	case "backspace":
		h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	case " ":
		h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	default:
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
	}
}

// Pump delivers n events from ch to the model.
func (h *Harness) Pump(ch <-chan engine.Event, n int) {
	for i := 0; i < n; i++ {
		evt, ok := <-ch
		if !ok {
			h.Send(engineDoneMsg{})
			return
		}
		h.Send(engineEventMsg{event: evt})
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		switch msg := msg.(type) {
		case nil, tea.QuitMsg:
			return
		case tea.BatchMsg:
			for _, sub := range msg {
				h.processCmd(sub)
			}
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
