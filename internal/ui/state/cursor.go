package state

// MoveCursorUp moves to the previous selectable row.
func (l *List) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown moves to the next selectable row.
func (l *List) MoveCursorDown() bool {
	return l.step(1)
}

// MoveCursorHome moves the cursor to the first selectable row.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	l.snapCursor(1)
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last selectable row.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	l.snapCursor(-1)
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *List) step(dir int) bool {
	for i := l.Cursor + dir; i >= 0 && i < len(l.Items); i += dir {
		if l.Items[i].Selectable() {
			l.Cursor = i
			return true
		}
	}
	return false
}

func (l *List) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	l.snapCursor(dir)
	return l.Cursor != old
}

// snapCursor moves a cursor resting on a separator to the nearest selectable
// row, preferring dir.
func (l *List) snapCursor(dir int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.Items[l.Cursor].Selectable() {
		return
	}
	for _, d := range []int{dir, -dir} {
		for i := l.Cursor + d; i >= 0 && i < len(l.Items); i += d {
			if l.Items[i].Selectable() {
				l.Cursor = i
				return
			}
		}
	}
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
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
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
