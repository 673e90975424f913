package state

import "github.com/atomicstack/personalisation-picker/internal/menu"

// Level holds the list view state for one item list: cursor, filter, and
// viewport.
type Level struct {
	ID    string
	Title string
	// Items is the visible list, Full the unfiltered one.
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	Cursor         int
	ViewportOffset int
	// Revision identifies the item list the level was built from.
	Revision uint64

	// unfilteredCursor is where the cursor sat before a filter was typed;
	// -1 when no filter is active.
	unfilteredCursor int
}

// NewLevel constructs a Level with the cursor on the first item.
func NewLevel(id, title string, items []menu.Item) *Level {
	l := &Level{ID: id, Title: title, unfilteredCursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index of the visible item with the given list key.
func (l *Level) IndexOf(key string) int {
	if key == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ListKey() == key {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the item list, keeping the filter applied.
func (l *Level) UpdateItems(items []menu.Item) {
	l.Full = menu.CloneItems(items)
	l.Items = Match(l.Full, l.Filter)
	l.clamp()
}

func (l *Level) clamp() {
	l.Cursor = clampIndex(l.Cursor, len(l.Items))
	l.ViewportOffset = clampIndex(l.ViewportOffset, len(l.Items))
}

// clampIndex bounds i to [0, n-1], or 0 for an empty list.
func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
