package state

import "github.com/atomicstack/styleselect/internal/style"

// List holds the expanded dropdown state: visible rows, cursor, type-ahead
// filter and viewport.
type List struct {
	Items          []style.Entry
	Full           []style.Entry
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List over entries with the cursor on the first
// selectable row.
func NewList(entries []style.Entry) *List {
	l := &List{Cursor: -1, LastCursor: -1}
	l.UpdateEntries(entries)
	return l
}

// IndexOf returns the visible index of the row with the given id.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, entry := range l.Items {
		if entry.Selectable() && entry.ID == id {
			return i
		}
	}
	return -1
}

// UpdateEntries replaces the rows, keeping the cursor on the same id when it
// is still present.
func (l *List) UpdateEntries(entries []style.Entry) {
	var previous string
	if entry, ok := l.Current(); ok {
		previous = entry.ID
	}
	prevOffset := l.ViewportOffset
	l.Full = style.CloneEntries(entries)
	l.applyFilter()
	if idx := l.IndexOf(previous); idx >= 0 {
		l.Cursor = idx
	}
	l.snapCursor(1)
	if len(l.Items) == 0 || prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Current returns the row under the cursor.
func (l *List) Current() (style.Entry, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return style.Entry{}, false
	}
	entry := l.Items[l.Cursor]
	if !entry.Selectable() {
		return style.Entry{}, false
	}
	return entry, true
}

// Focus moves the cursor onto id, reporting whether it is visible.
func (l *List) Focus(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}
