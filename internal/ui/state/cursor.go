package state

import "github.com/atomicstack/personalisation-picker/internal/menu"

// Step moves the cursor by delta rows, wrapping past either end.
func (l *Level) Step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	before := l.Cursor
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return l.Cursor != before
}

// Page moves the cursor by whole pages of maxVisible rows, stopping at the
// ends. A non-positive maxVisible treats the whole list as one page.
func (l *Level) Page(pages, maxVisible int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	size := maxVisible
	if size <= 0 || size > n {
		size = n
	}
	before := l.Cursor
	l.Cursor = clampIndex(l.Cursor+pages*size, n)
	return l.Cursor != before
}

// Jump moves the cursor to the first item, or the last one when last is set.
func (l *Level) Jump(last bool) bool {
	before := l.Cursor
	if last {
		l.Cursor = clampIndex(len(l.Items)-1, len(l.Items))
	} else {
		l.Cursor = 0
	}
	return l.Cursor != before
}

// EnsureCursorVisible scrolls the viewport so the cursor row is one of the
// maxVisible rows shown.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	l.Cursor = clampIndex(l.Cursor, n)
	if n == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	lastOffset := n - maxVisible
	if lastOffset < 0 {
		lastOffset = 0
	}
	switch {
	case l.Cursor < l.ViewportOffset:
		l.ViewportOffset = l.Cursor
	case l.Cursor >= l.ViewportOffset+maxVisible:
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
	if l.ViewportOffset > lastOffset {
		l.ViewportOffset = lastOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}

// Window returns the visible slice of Items and the index of its first row.
func (l *Level) Window(maxVisible int) ([]menu.Item, int) {
	l.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items, 0
	}
	start := l.ViewportOffset
	return l.Items[start : start+maxVisible], start
}
