package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/logging"
)

func waitForEngineEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return engineDoneMsg{}
		}
		return engineEventMsg{event: evt}
	}
}

type engineEventMsg struct {
	event engine.Event
}

type engineDoneMsg struct{}

func (m *Model) handleEngineEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(engineEventMsg)
	if !ok {
		return nil
	}
	m.applyEngineEvent(eventMsg.event)
	if m.engine != nil {
		return waitForEngineEvent(m.engine)
	}
	return nil
}

func (m *Model) handleEngineDoneMsg(msg tea.Msg) tea.Cmd {
	m.engine = nil
	m.engineDone = true
	return nil
}

func (m *Model) applyEngineEvent(evt engine.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		logging.Error(res.Err)
		m.errMsg = res.Err.Error()
		return
	}
	if res.StatusUpdated {
		m.docType = res.DocType
	}
	if res.Selector.EnabledChanged && !m.sel.Enabled() {
		m.collapse("disabled")
	}
	if res.Selector.RowsChanged || res.Selector.SelectionChanged {
		m.syncRows()
	}
}
