package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/styleselect/internal/data/dispatcher"
	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/logging/events"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/style"
	"github.com/atomicstack/styleselect/internal/theme"
	uistate "github.com/atomicstack/styleselect/internal/ui/state"
)

type Mode int

const (
	ModeCollapsed Mode = iota
	ModeExpanded
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure the host model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	// Title is shown above the dropdown.
	Title string
}

// Model implements the Bubble Tea model for the style dropdown.
type Model struct {
	sel        *selector.Selector
	dispatcher *dispatcher.Dispatcher
	engine     <-chan engine.Event

	list          *uistate.List
	mode          Mode
	canvasFocused bool
	docType       style.DocType
	engineDone    bool
	errMsg        string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	title       string

	keys keyMap
	help help.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the host for sel. Engine events are read from events until
// it closes; a nil channel means events are delivered by the caller.
func NewModel(sel *selector.Selector, events <-chan engine.Event, opts Options) *Model {
	m := &Model{
		sel:           sel,
		dispatcher:    dispatcher.New(sel),
		engine:        events,
		list:          uistate.NewList(sel.Rows()),
		canvasFocused: true,
		showFooter:    opts.ShowFooter,
		title:         opts.Title,
		keys:          defaultKeyMap(),
		help:          help.New(),
	}
	if m.title == "" {
		m.title = "Style"
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	sel.SetShell(m)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	return waitForEngineEvent(m.engine)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// Refocus implements selector.Shell. It closes the list and returns input
// focus to the document canvas.
func (m *Model) Refocus() {
	m.collapse("refocus")
	m.canvasFocused = true
	events.UI.Refocus()
}

// Mode reports whether the dropdown is open.
func (m *Model) Mode() Mode {
	return m.mode
}

// CanvasFocused reports whether the document canvas holds input focus.
func (m *Model) CanvasFocused() bool {
	return m.canvasFocused
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(engineEventMsg{}):    m.handleEngineEventMsg,
		reflect.TypeOf(engineDoneMsg{}):     m.handleEngineDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.width
	m.syncViewport()
	return nil
}
