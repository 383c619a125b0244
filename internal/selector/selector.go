// Package selector keeps a style dropdown in sync with a document engine.
//
// A Selector owns the rendered rows, the active selection and the edit gate.
// All mutation goes through Dispatch, which the host calls from its event
// loop one event at a time; the selector itself never blocks or spawns work.
package selector

import (
	"github.com/atomicstack/styleselect/internal/logging/events"
	"github.com/atomicstack/styleselect/internal/style"
)

// PermEdit is the permission value that enables the dropdown.
const PermEdit = "edit"

// Engine is the document engine as seen by the selector.
type Engine interface {
	SendCommand(command string) error
	ApplyStyle(name, family string) error
	DocumentType() style.DocType
}

// Shell is the host UI that renders the dropdown.
type Shell interface {
	// Refocus returns input focus to the document canvas.
	Refocus()
}

// Options configures a Selector.
type Options struct {
	// Placeholder is the identifier of the leading info row.
	Placeholder string
	// Labels localizes row labels; names are shown verbatim when nil.
	Labels style.Labeler
	Shell  Shell
	// Enabled is the edit gate before the first permission event.
	Enabled bool
}

type verbatim struct{}

func (verbatim) Label(name string) string { return name }

// Selector is the style dropdown state machine.
type Selector struct {
	engine      Engine
	shell       Shell
	labels      style.Labeler
	placeholder string

	rows    []style.Entry
	active  string
	enabled bool
}

// New attaches a selector to engine. The dropdown starts with the placeholder
// row only.
func New(engine Engine, opts Options) *Selector {
	s := &Selector{
		engine:      engine,
		shell:       opts.Shell,
		labels:      opts.Labels,
		placeholder: opts.Placeholder,
		enabled:     opts.Enabled,
	}
	if s.labels == nil {
		s.labels = verbatim{}
	}
	if s.placeholder == "" {
		s.placeholder = style.DefaultPlaceholder
	}
	s.rows = style.Build(style.Catalog{}, "", s.placeholder, s.labels)
	s.active = s.placeholder
	return s
}

// Engine returns the engine the selector sends commands to.
func (s *Selector) Engine() Engine {
	return s.engine
}

// SetShell replaces the host shell, for hosts created after the selector.
func (s *Selector) SetShell(shell Shell) {
	s.shell = shell
}

// Dispatch applies one event. Unknown event types are ignored.
func (s *Selector) Dispatch(evt Event) Result {
	switch e := evt.(type) {
	case PermissionChanged:
		return s.updatePermission(e.Perm)
	case CatalogRefresh:
		return s.rebuild(e)
	case StateChanged:
		return s.reconcile(e)
	case UserChanged:
		return s.change(e.ID)
	default:
		return Result{}
	}
}

// Rows returns a copy of the rendered rows.
func (s *Selector) Rows() []style.Entry {
	return style.CloneEntries(s.rows)
}

// Active returns the identifier of the selected row.
func (s *Selector) Active() string {
	return s.active
}

// ActiveIndex returns the row index of the selection, or -1.
func (s *Selector) ActiveIndex() int {
	return s.indexOf(s.active)
}

// ActiveEntry returns the selected row.
func (s *Selector) ActiveEntry() style.Entry {
	if idx := s.ActiveIndex(); idx >= 0 {
		return s.rows[idx]
	}
	return s.rows[0]
}

// Enabled reports whether the dropdown accepts input.
func (s *Selector) Enabled() bool {
	return s.enabled
}

// Placeholder returns the identifier of the info row.
func (s *Selector) Placeholder() string {
	return s.placeholder
}

// Labels returns the labeler used for row labels.
func (s *Selector) Labels() style.Labeler {
	return s.labels
}

func (s *Selector) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, row := range s.rows {
		if row.Selectable() && row.ID == id {
			return i
		}
	}
	return -1
}

func (s *Selector) updatePermission(perm string) Result {
	enabled := perm == PermEdit
	changed := enabled != s.enabled
	s.enabled = enabled
	events.Permission.Changed(perm, enabled)
	return Result{EnabledChanged: changed}
}
