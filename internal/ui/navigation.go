package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/styleselect/internal/logging/events"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/style"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if m.mode == ModeCollapsed {
		return m.handleCollapsedKey(keyMsg)
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Close):
		m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Pick):
		m.handleEnterKey()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(m.list.MoveCursorUp)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(m.list.MoveCursorDown)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func() bool { return m.list.MoveCursorPageUp(m.maxVisibleRows()) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func() bool { return m.list.MoveCursorPageDown(m.maxVisibleRows()) })
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(m.list.MoveCursorHome)
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(m.list.MoveCursorEnd)
	}
	return nil
}

func (m *Model) handleCollapsedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.QuitShort):
		return tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.canvasFocused = !m.canvasFocused
	case key.Matches(msg, m.keys.Open):
		m.expand()
	}
	return nil
}

// expand opens the list with the cursor on the active row. A closed edit gate
// keeps the dropdown shut.
func (m *Model) expand() {
	if !m.sel.Enabled() {
		events.UI.Collapse("disabled")
		return
	}
	m.list.ClearFilter()
	m.list.UpdateEntries(m.sel.Rows())
	if !m.list.Focus(m.sel.Active()) {
		m.list.MoveCursorHome()
	}
	m.mode = ModeExpanded
	m.canvasFocused = false
	m.errMsg = ""
	m.syncViewport()
	events.UI.Expand(len(m.list.Items))
}

func (m *Model) collapse(reason string) {
	if m.mode == ModeCollapsed {
		return
	}
	m.mode = ModeCollapsed
	m.list.ClearFilter()
	events.UI.Collapse(reason)
}

func (m *Model) handleEscapeKey() {
	if m.list.ClearFilter() {
		events.Filter.Cleared()
		m.syncViewport()
		return
	}
	m.collapse("escape")
}

// handleEnterKey forwards the row under the cursor to the selector, which
// applies it and refocuses the canvas through Refocus.
func (m *Model) handleEnterKey() {
	entry, ok := m.list.Current()
	if !ok {
		return
	}
	if entry.Kind == style.KindPlaceholder {
		events.Command.Skip(entry.ID)
		m.collapse("placeholder")
		return
	}
	res := m.sel.Dispatch(selector.UserChanged{ID: entry.ID})
	if res.Err != nil {
		m.errMsg = res.Err.Error()
	} else {
		m.errMsg = ""
		if res.Dispatched {
			events.Action.Success(entry.ID)
		}
	}
	m.collapse("pick")
	m.syncRows()
}

func (m *Model) moveCursor(move func() bool) {
	if !move() {
		return
	}
	m.syncViewport()
	if entry, ok := m.list.Current(); ok {
		events.UI.Cursor(m.list.Cursor, entry.ID)
	}
}

// syncRows pulls rows from the selector into the list. A closed list follows
// the active selection.
func (m *Model) syncRows() {
	m.list.UpdateEntries(m.sel.Rows())
	if m.mode == ModeCollapsed {
		m.list.Focus(m.sel.Active())
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.list.EnsureCursorVisible(m.maxVisibleRows())
}

// maxVisibleRows is the list height left after the header, dropdown line,
// filter prompt, status line and optional footer.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return 0
	}
	reserved := 4
	if m.showFooter {
		reserved += 2
	}
	rows := m.height - reserved
	if rows < 1 {
		rows = 1
	}
	return rows
}
