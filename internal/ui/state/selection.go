package state

import "github.com/atomicstack/personalisation-picker/internal/menu"

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l == nil || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// SelectKey moves the cursor to the item with the given list key.
func (l *Level) SelectKey(key string) bool {
	idx := l.IndexOf(key)
	if idx < 0 || idx == l.Cursor {
		return false
	}
	l.Cursor = idx
	return true
}

// Leaves returns the copyable entries of the visible list.
func (l *Level) Leaves() []menu.Item {
	leaves := make([]menu.Item, 0, len(l.Items))
	for _, item := range l.Items {
		if !item.IsCategory() {
			leaves = append(leaves, item)
		}
	}
	return leaves
}
