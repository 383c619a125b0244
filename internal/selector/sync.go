package selector

import (
	"fmt"
	"strings"

	"github.com/atomicstack/styleselect/internal/logging"
	"github.com/atomicstack/styleselect/internal/logging/events"
	"github.com/atomicstack/styleselect/internal/style"
)

// rebuild replaces every row from a fresh catalog. The previous selection
// survives only if the new rows still contain it.
func (s *Selector) rebuild(evt CatalogRefresh) Result {
	if evt.CommandName != style.ApplyCommand {
		events.Catalog.Ignored(evt.CommandName)
		return Result{}
	}
	doc := s.engine.DocumentType()
	previous := s.active
	s.rows = style.Build(evt.Values, doc, s.placeholder, s.labels)
	if s.indexOf(previous) < 0 {
		s.active = s.placeholder
	}
	events.Catalog.Rebuild(string(doc), len(s.rows), s.active)
	return Result{RowsChanged: true, SelectionChanged: s.active != previous}
}

// reconcile moves the selection to the row named by a state notification.
// Unmatched states leave the selection untouched.
func (s *Selector) reconcile(evt StateChanged) Result {
	if evt.State == "" || evt.CommandName != style.ApplyCommand {
		return Result{}
	}
	state := normalizeState(s.engine.DocumentType(), evt.State)
	idx := s.indexOf(state)
	if idx < 0 {
		events.Selection.Unmatched(evt.CommandName, evt.State)
		return Result{}
	}
	previous := s.active
	s.active = s.rows[idx].ID
	events.Selection.Reconcile(evt.CommandName, evt.State, state, s.active)
	return Result{SelectionChanged: s.active != previous}
}

// normalizeState maps engine state values onto row identifiers. Presentation
// states carry a template prefix and a backend-locale label; an unknown label
// normalizes to the empty string, which matches no row.
func normalizeState(doc style.DocType, state string) string {
	if doc != style.DocPresentation {
		return state
	}
	return style.ParsePresentationState(state).ID()
}

// change handles a row picked by the user.
func (s *Selector) change(id string) Result {
	if id == s.placeholder {
		return Result{}
	}
	events.Selection.User(id)

	var res Result
	if idx := s.indexOf(id); idx >= 0 && id != s.active {
		s.active = id
		res.SelectionChanged = true
	}

	switch {
	case strings.HasPrefix(id, style.CommandPrefix):
		events.Command.Send(id)
		res.Dispatched = true
		res.Err = s.engine.SendCommand(id)
	default:
		doc := s.engine.DocumentType()
		family, ok := doc.Family()
		if !ok {
			// Spreadsheet and drawing documents have no apply path yet.
			events.Command.Unhandled(id, string(doc))
			break
		}
		events.Command.Apply(id, family)
		res.Dispatched = true
		res.Err = s.engine.ApplyStyle(id, family)
	}
	if res.Err != nil {
		logging.Error(fmt.Errorf("dispatch %q: %w", id, res.Err))
		events.Action.Error(res.Err)
	}

	if s.shell != nil {
		s.shell.Refocus()
	}
	return res
}
