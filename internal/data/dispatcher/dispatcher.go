package dispatcher

import (
	"fmt"

	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/protocol"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/style"
)

// Result reports what an engine event changed.
type Result struct {
	StatusUpdated bool
	DocType       style.DocType
	Selector      selector.Result
	Err           error
}

// Changed reports whether the dropdown needs to be redrawn.
func (r Result) Changed() bool {
	return r.StatusUpdated || r.Selector.Changed()
}

// Document wraps an engine so DocumentType follows status events in the
// order Handle delivers them, not the order the transport read them.
type Document struct {
	selector.Engine
	docType style.DocType
	known   bool
}

// Track wraps eng for use as a selector's engine.
func Track(eng selector.Engine) *Document {
	return &Document{Engine: eng}
}

// DocumentType returns the type from the last status event handled, falling
// back to the engine before the first one.
func (d *Document) DocumentType() style.DocType {
	if d.known {
		return d.docType
	}
	return d.Engine.DocumentType()
}

// Dispatcher feeds engine notifications into a Selector.
type Dispatcher struct {
	sel *selector.Selector
	doc *Document
}

// New dispatches into sel. When sel was built on a tracked Document, status
// events update it.
func New(sel *selector.Selector) *Dispatcher {
	d := &Dispatcher{sel: sel}
	if doc, ok := sel.Engine().(*Document); ok {
		d.doc = doc
	}
	return d
}

func (d *Dispatcher) Handle(evt engine.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case engine.KindStatus:
		if st, ok := evt.Data.(protocol.Status); ok {
			res.StatusUpdated = true
			res.DocType = st.Type
			if d.doc != nil {
				d.doc.docType = st.Type
				d.doc.known = true
			}
		}
	case engine.KindPermission:
		if perm, ok := evt.Data.(string); ok {
			res.Selector = d.sel.Dispatch(selector.PermissionChanged{Perm: perm})
		}
	case engine.KindCommandValues:
		if values, ok := evt.Data.(protocol.CommandValues); ok {
			res.Selector = d.sel.Dispatch(selector.CatalogRefresh{
				CommandName: values.CommandName,
				Values:      values.CommandValues,
			})
		}
	case engine.KindStateChanged:
		if change, ok := evt.Data.(protocol.StateChange); ok {
			res.Selector = d.sel.Dispatch(selector.StateChanged{
				CommandName: change.Command,
				State:       change.Value,
			})
		}
	default:
		res.Err = fmt.Errorf("unexpected engine event %s", evt.Kind)
	}
	if res.Err == nil {
		res.Err = res.Selector.Err
	}
	return res
}
