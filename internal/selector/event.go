package selector

import "github.com/atomicstack/styleselect/internal/style"

// Event is one of the inbound notifications the selector consumes.
type Event interface {
	isEvent()
}

// PermissionChanged mirrors the engine's edit permission.
type PermissionChanged struct {
	Perm string
}

// CatalogRefresh delivers a new style catalog for CommandName.
type CatalogRefresh struct {
	CommandName string
	Values      style.Catalog
}

// StateChanged reports the engine's current value for CommandName.
type StateChanged struct {
	CommandName string
	State       string
}

// UserChanged is raised by the host when the user picks a row.
type UserChanged struct {
	ID string
}

func (PermissionChanged) isEvent() {}
func (CatalogRefresh) isEvent()    {}
func (StateChanged) isEvent()      {}
func (UserChanged) isEvent()       {}

// Result summarises the effect of dispatching an event.
type Result struct {
	RowsChanged      bool
	SelectionChanged bool
	EnabledChanged   bool
	// Dispatched is set when an engine request was issued.
	Dispatched bool
	Err        error
}

// Changed reports whether anything visible changed.
func (r Result) Changed() bool {
	return r.RowsChanged || r.SelectionChanged || r.EnabledChanged
}
