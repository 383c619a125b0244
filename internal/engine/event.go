package engine

import (
	"errors"

	"github.com/atomicstack/styleselect/internal/style"
)

// Kind represents the type of data emitted by an engine.
type Kind int

const (
	KindStatus Kind = iota
	KindPermission
	KindCommandValues
	KindStateChanged
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindPermission:
		return "permission"
	case KindCommandValues:
		return "commandvalues"
	case KindStateChanged:
		return "statechanged"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event conveys a decoded engine notification or a transport error.
//
// Data holds protocol.Status, a permission mode string,
// protocol.CommandValues or protocol.StateChange depending on Kind.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// ErrClosed is returned by operations on a closed engine.
var ErrClosed = errors.New("engine closed")

// Permission modes reported by engines.
const (
	PermEdit     = "edit"
	PermView     = "view"
	PermReadOnly = "readonly"
)

func permissionFor(readOnly bool) string {
	if readOnly {
		return PermReadOnly
	}
	return PermEdit
}

// Engine is the document engine as seen by the application: a
// style-applying command sink plus a stream of notifications.
type Engine interface {
	SendCommand(command string) error
	ApplyStyle(name, family string) error
	DocumentType() style.DocType
	Events() <-chan Event
	Close() error
}
