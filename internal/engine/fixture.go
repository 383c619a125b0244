package engine

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/styleselect/internal/logging"
	"github.com/atomicstack/styleselect/internal/protocol"
	"github.com/atomicstack/styleselect/internal/style"
)

// FixtureSpec describes an offline document session.
type FixtureSpec struct {
	DocType    string        `yaml:"doctype"`
	Permission string        `yaml:"permission"`
	Catalog    style.Catalog `yaml:"catalog"`
	// States are replayed as ".uno:StyleApply" state changes after the catalog.
	States []string `yaml:"states"`
}

// Applied records one ApplyStyle call.
type Applied struct {
	Name   string
	Family string
}

// Fixture is an in-process engine driven by a FixtureSpec. It records every
// outbound call and echoes applied styles back as state changes.
type Fixture struct {
	spec    FixtureSpec
	docType style.DocType

	mu       sync.Mutex
	events   chan Event
	closed   bool
	commands []string
	applied  []Applied
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	spec, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return NewFixture(spec), nil
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (FixtureSpec, error) {
	var spec FixtureSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return FixtureSpec{}, fmt.Errorf("decode fixture: %w", err)
	}
	if style.ParseDocType(spec.DocType) == "" {
		return FixtureSpec{}, fmt.Errorf("fixture has no doctype")
	}
	return spec, nil
}

// NewFixture builds a fixture engine and queues its opening events: status,
// permission, catalog and any scripted states.
func NewFixture(spec FixtureSpec) *Fixture {
	f := &Fixture{
		spec:    spec,
		docType: style.ParseDocType(spec.DocType),
		events:  make(chan Event, len(spec.States)+64),
	}
	perm := spec.Permission
	if perm == "" {
		perm = PermEdit
	}
	f.emit(Event{Kind: KindStatus, Data: protocol.Status{Type: f.docType, Parts: 1}})
	f.emit(Event{Kind: KindPermission, Data: perm})
	f.emit(Event{Kind: KindCommandValues, Data: protocol.CommandValues{
		CommandName:   style.ApplyCommand,
		CommandValues: spec.Catalog,
	}})
	for _, state := range spec.States {
		f.emitState(state)
	}
	return f
}

// Events returns the fixture's event stream.
func (f *Fixture) Events() <-chan Event {
	return f.events
}

// DocumentType returns the fixture's document type.
func (f *Fixture) DocumentType() style.DocType {
	return f.docType
}

// SendCommand records command.
func (f *Fixture) SendCommand(command string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.commands = append(f.commands, command)
	return nil
}

// ApplyStyle records the call and reports the style back as the new state,
// the way a live engine confirms a style change.
func (f *Fixture) ApplyStyle(name, family string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.applied = append(f.applied, Applied{Name: name, Family: family})
	f.mu.Unlock()

	state := name
	if f.docType == style.DocPresentation {
		if p := style.ParsePresentationID(name); p.Matched() {
			state = family + style.TemplateMarker + p.Label()
		}
	}
	f.emitState(state)
	return nil
}

// Commands returns the recorded SendCommand calls.
func (f *Fixture) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// Applied returns the recorded ApplyStyle calls.
func (f *Fixture) Applied() []Applied {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Applied(nil), f.applied...)
}

// Close stops the fixture and closes its event stream.
func (f *Fixture) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

func (f *Fixture) emitState(state string) {
	f.emit(Event{Kind: KindStateChanged, Data: protocol.StateChange{Command: style.ApplyCommand, Value: state}})
}

func (f *Fixture) emit(evt Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.events <- evt:
	default:
		logging.Error(fmt.Errorf("fixture event queue full, dropping %s", evt.Kind))
	}
}
