package state

import (
	"strings"
	"unicode"
)

// SetFilter updates the type-ahead query and its cursor position. Clearing
// the query restores the row the cursor was on before filtering began.
func (l *List) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	restore := -1
	l.Filter = query
	runes := []rune(l.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.FilterCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
	} else if prevTrimmed != "" {
		restore = l.LastCursor
	}
	l.applyFilter()
	if trimmed != "" && len(l.Items) > 0 {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		}
		l.LastCursor = -1
	}
	l.snapCursor(1)
}

// ClearFilter drops the query, reporting whether there was one.
func (l *List) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

func (l *List) applyFilter() {
	l.Items = FilterEntries(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *List) FilterCursorPos() int {
	runes := []rune(l.Filter)
	if l.FilterCursor < 0 {
		return 0
	}
	if l.FilterCursor > len(runes) {
		return len(runes)
	}
	return l.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *List) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (l *List) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (l *List) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}
