package style

// Kind classifies a dropdown row.
type Kind int

const (
	KindPlaceholder Kind = iota
	KindSeparator
	KindCommand
	KindTopStyle
	KindStyle
)

func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindSeparator:
		return "separator"
	case KindCommand:
		return "command"
	case KindTopStyle:
		return "top-style"
	case KindStyle:
		return "style"
	default:
		return "unknown"
	}
}

// Entry is one row of the style dropdown.
type Entry struct {
	ID    string
	Label string
	Kind  Kind
}

// Selectable reports whether the row may become the active selection.
func (e Entry) Selectable() bool {
	return e.Kind != KindSeparator
}

// DefaultPlaceholder is the identifier of the leading info row.
const DefaultPlaceholder = "- Styles -"

// CommandPrefix marks identifiers that are backend commands rather than styles.
const CommandPrefix = ".uno:"

// ApplyCommand is the command whose catalog and state drive the dropdown.
const ApplyCommand = ".uno:StyleApply"

// Separator glyphs drawn for separator rows.
const separatorLabel = "────────────"

// CloneEntries returns a copy of entries backed by a new array.
func CloneEntries(entries []Entry) []Entry {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
