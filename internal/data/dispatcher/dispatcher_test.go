package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/protocol"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/style"
)

func newFixtureSelector(t *testing.T, spec engine.FixtureSpec) (*engine.Fixture, *selector.Selector, *Dispatcher) {
	t.Helper()
	f := engine.NewFixture(spec)
	t.Cleanup(func() { _ = f.Close() })
	sel := selector.New(f, selector.Options{})
	return f, sel, New(sel)
}

// aheadEngine reports a document type the consumer has not seen yet, as a
// transport does once it has read past the events still queued.
type aheadEngine struct {
	docType style.DocType
	applied []string
}

func (e *aheadEngine) SendCommand(string) error { return nil }

func (e *aheadEngine) ApplyStyle(name, family string) error {
	e.applied = append(e.applied, name+"/"+family)
	return nil
}

func (e *aheadEngine) DocumentType() style.DocType { return e.docType }

func drainInto(t *testing.T, f *engine.Fixture, d *Dispatcher, n int) []Result {
	t.Helper()
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		evt, ok := <-f.Events()
		if !ok {
			t.Fatalf("fixture closed after %d events", i)
		}
		results = append(results, d.Handle(evt))
	}
	return results
}

func TestHandleFixtureSession(t *testing.T) {
	f, sel, d := newFixtureSelector(t, engine.FixtureSpec{
		DocType:    "text",
		Permission: "edit",
		Catalog:    style.Catalog{ParagraphStyles: []string{"Standard", "Heading 1"}},
		States:     []string{"Heading 1"},
	})

	results := drainInto(t, f, d, 4)

	if !results[0].StatusUpdated || results[0].DocType != style.DocText {
		t.Fatalf("expected status result, got %+v", results[0])
	}
	if !results[1].Selector.EnabledChanged || !sel.Enabled() {
		t.Fatalf("expected permission to enable selector, got %+v", results[1])
	}
	if !results[2].Selector.RowsChanged {
		t.Fatalf("expected catalog rebuild, got %+v", results[2])
	}
	if len(sel.Rows()) != 4 {
		t.Fatalf("expected placeholder, separator and two styles, got %d rows", len(sel.Rows()))
	}
	if !results[3].Selector.SelectionChanged || sel.Active() != "Heading 1" {
		t.Fatalf("expected state change to select Heading 1, got %+v active=%q", results[3], sel.Active())
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("result %d: unexpected error %v", i, res.Err)
		}
		if !res.Changed() {
			t.Fatalf("result %d: expected a change", i)
		}
	}
}

func TestHandleUserChangeRoundTrip(t *testing.T) {
	f, sel, d := newFixtureSelector(t, engine.FixtureSpec{
		DocType: "presentation",
		Catalog: style.Catalog{Default: []string{"title", "outline1"}},
	})
	drainInto(t, f, d, 3)

	res := sel.Dispatch(selector.UserChanged{ID: "outline1"})
	if !res.Dispatched {
		t.Fatalf("expected apply to be dispatched")
	}
	applied := f.Applied()
	if len(applied) != 1 || applied[0] != (engine.Applied{Name: "outline1", Family: "Default"}) {
		t.Fatalf("unexpected applied calls %+v", applied)
	}

	echo := drainInto(t, f, d, 1)[0]
	if echo.Selector.SelectionChanged {
		t.Fatalf("echoed state should confirm the optimistic selection, got %+v", echo)
	}
	if sel.Active() != "outline1" {
		t.Fatalf("expected outline1 to stay active, got %q", sel.Active())
	}
}

func TestHandleErrors(t *testing.T) {
	_, _, d := newFixtureSelector(t, engine.FixtureSpec{DocType: "text"})

	boom := errors.New("boom")
	res := d.Handle(engine.Event{Kind: engine.KindError, Err: boom})
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected error to pass through, got %v", res.Err)
	}
	if res.Changed() {
		t.Fatalf("error events must not report changes")
	}

	res = d.Handle(engine.Event{Kind: engine.Kind(99)})
	if res.Err == nil {
		t.Fatalf("expected unknown kind to be reported")
	}
}

func TestHandleIgnoresMistypedData(t *testing.T) {
	_, sel, d := newFixtureSelector(t, engine.FixtureSpec{DocType: "text"})
	before := sel.Rows()

	for _, evt := range []engine.Event{
		{Kind: engine.KindStatus, Data: "text"},
		{Kind: engine.KindPermission, Data: 1},
		{Kind: engine.KindCommandValues, Data: protocol.StateChange{}},
		{Kind: engine.KindStateChanged, Data: protocol.Status{}},
	} {
		if res := d.Handle(evt); res.Changed() || res.Err != nil {
			t.Fatalf("expected %s with mistyped data to be ignored, got %+v", evt.Kind, res)
		}
	}
	if len(sel.Rows()) != len(before) {
		t.Fatalf("rows changed unexpectedly")
	}
}

func TestHandleUsesDocumentTypeInDeliveryOrder(t *testing.T) {
	eng := &aheadEngine{docType: style.DocPresentation}
	sel := selector.New(Track(eng), selector.Options{Enabled: true})
	d := New(sel)

	values := style.Catalog{
		ParagraphStyles: []string{"Standard", "Heading 1"},
		Default:         []string{"title"},
	}
	events := []engine.Event{
		{Kind: engine.KindStatus, Data: protocol.Status{Type: style.DocText}},
		{Kind: engine.KindCommandValues, Data: protocol.CommandValues{CommandName: style.ApplyCommand, CommandValues: values}},
	}
	for _, evt := range events {
		if res := d.Handle(evt); res.Err != nil {
			t.Fatalf("handle %s: %v", evt.Kind, res.Err)
		}
	}

	if sel.Engine().DocumentType() != style.DocText {
		t.Fatalf("expected tracked text document, got %q", sel.Engine().DocumentType())
	}
	found := false
	for _, row := range sel.Rows() {
		if row.ID == "title" {
			t.Fatalf("rows were built for the transport's newer document type: %+v", sel.Rows())
		}
		if row.ID == "Heading 1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected paragraph styles, got %+v", sel.Rows())
	}

	sel.Dispatch(selector.UserChanged{ID: "Heading 1"})
	if len(eng.applied) != 1 || eng.applied[0] != "Heading 1/ParagraphStyles" {
		t.Fatalf("expected paragraph apply, got %v", eng.applied)
	}
}

func TestTrackFallsBackBeforeFirstStatus(t *testing.T) {
	doc := Track(&aheadEngine{docType: style.DocSpreadsheet})
	if doc.DocumentType() != style.DocSpreadsheet {
		t.Fatalf("expected engine fallback, got %q", doc.DocumentType())
	}
}
