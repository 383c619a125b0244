// Package protocol encodes and decodes the text frames exchanged with a
// LibreOffice Online document engine.
//
// Server frames start with a "prefix: " header on their first line; the rest
// of the frame is a prefix-specific payload. Client frames are plain command
// lines such as "load url=..." or "uno .uno:Bold".
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/styleselect/internal/style"
)

// Server frame prefixes.
const (
	PrefixStatus        = "status"
	PrefixCommandValues = "commandvalues"
	PrefixStateChanged  = "statechanged"
	PrefixError         = "error"
	PrefixPerm          = "perm"
)

// ErrNoPrefix is returned for frames whose first line has no "prefix:" header.
var ErrNoPrefix = errors.New("frame has no message prefix")

// Message is a server frame split into prefix and payload.
type Message struct {
	Prefix  string
	Payload string
}

// FirstLine returns the frame up to the first newline.
func FirstLine(frame []byte) string {
	line, _, _ := strings.Cut(string(frame), "\n")
	return strings.TrimRight(line, "\r")
}

// Abbreviate shortens a frame for logging.
func Abbreviate(frame []byte, max int) string {
	line := FirstLine(frame)
	if max > 0 && len(line) > max {
		return line[:max] + "..."
	}
	if len(line) < len(frame) {
		return line + "..."
	}
	return line
}

// Parse splits a frame into its prefix and payload.
func Parse(frame []byte) (Message, error) {
	line := FirstLine(frame)
	idx := strings.Index(line, ":")
	if idx <= 0 || strings.ContainsAny(line[:idx], " \t=") {
		return Message{}, fmt.Errorf("%w: %q", ErrNoPrefix, Abbreviate(frame, 40))
	}
	return Message{
		Prefix:  line[:idx],
		Payload: strings.TrimSpace(string(frame)[idx+1:]),
	}, nil
}

// Status is the document description sent in reply to "status".
type Status struct {
	Type    style.DocType
	Parts   int
	Current int
	Width   int
	Height  int
}

// ParseStatus decodes "type=text parts=2 current=0 width=12808 height=1142".
func ParseStatus(payload string) (Status, error) {
	var st Status
	for _, token := range strings.Fields(FirstLine([]byte(payload))) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		var err error
		switch key {
		case "type":
			st.Type = style.ParseDocType(value)
		case "parts":
			st.Parts, err = strconv.Atoi(value)
		case "current":
			st.Current, err = strconv.Atoi(value)
		case "width":
			st.Width, err = strconv.Atoi(value)
		case "height":
			st.Height, err = strconv.Atoi(value)
		}
		if err != nil {
			return Status{}, fmt.Errorf("status %s: %w", key, err)
		}
	}
	if st.Type == "" {
		return Status{}, fmt.Errorf("status without type: %q", payload)
	}
	return st, nil
}

// StateChange is a "statechanged: <command>=<value>" notification.
type StateChange struct {
	Command string
	Value   string
}

// ParseStateChange decodes the payload of a statechanged frame. Only the first
// '=' separates command from value; style names may contain '='.
func ParseStateChange(payload string) (StateChange, error) {
	command, value, ok := strings.Cut(FirstLine([]byte(payload)), "=")
	if !ok || command == "" {
		return StateChange{}, fmt.Errorf("malformed state change: %q", payload)
	}
	return StateChange{Command: command, Value: value}, nil
}

// EngineError is an "error: cmd=<command> kind=<kind>" frame.
type EngineError struct {
	Command string
	Kind    string
}

func (e EngineError) Error() string {
	return fmt.Sprintf("engine error: cmd=%s kind=%s", e.Command, e.Kind)
}

// ParseError decodes the payload of an error frame.
func ParseError(payload string) EngineError {
	var out EngineError
	for _, token := range strings.Fields(FirstLine([]byte(payload))) {
		key, value, _ := strings.Cut(token, "=")
		switch key {
		case "cmd":
			out.Command = value
		case "kind":
			out.Kind = value
		}
	}
	return out
}
