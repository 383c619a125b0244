package events

import "github.com/atomicstack/styleselect/internal/logging"

type CatalogTracer struct{}

type SelectionTracer struct{}

type PermissionTracer struct{}

var (
	Catalog    = CatalogTracer{}
	Selection  = SelectionTracer{}
	Permission = PermissionTracer{}
)

func (CatalogTracer) Ignored(command string) {
	logging.Trace("catalog.ignored", map[string]interface{}{"command": command})
}

func (CatalogTracer) Rebuild(docType string, rows int, active string) {
	logging.Trace("catalog.rebuild", map[string]interface{}{"docType": docType, "rows": rows, "active": active})
}

func (SelectionTracer) Reconcile(command, state, normalized, active string) {
	logging.Trace("selection.reconcile", map[string]interface{}{
		"command":    command,
		"state":      state,
		"normalized": normalized,
		"active":     active,
	})
}

func (SelectionTracer) Unmatched(command, state string) {
	logging.Trace("selection.unmatched", map[string]interface{}{"command": command, "state": state})
}

func (SelectionTracer) User(id string) {
	logging.Trace("selection.user", map[string]interface{}{"id": id})
}

func (PermissionTracer) Changed(perm string, enabled bool) {
	logging.Trace("permission.changed", map[string]interface{}{"perm": perm, "enabled": enabled})
}
