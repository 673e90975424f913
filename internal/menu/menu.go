package menu

import (
	"context"
	"strings"
)

// CategoryPrefix marks list keys that refer to a category rather than a leaf.
const CategoryPrefix = "category"

// KeyDelimiter separates the category prefix from the category identifier.
const KeyDelimiter = ":"

// Item represents a selectable list entry. Entries with a Title are
// category references; entries with only a Name are copyable leaves.
type Item struct {
	Key   string
	Title string
	Name  string
}

// IsCategory reports whether the item references a category.
func (i Item) IsCategory() bool {
	return i.Title != ""
}

// ListKey returns the key forwarded to selection handlers.
func (i Item) ListKey() string {
	if i.IsCategory() {
		return CategoryKey(i.Key)
	}
	return i.Name
}

// Label returns the text shown for the item.
func (i Item) Label() string {
	if i.IsCategory() {
		return i.Title
	}
	return i.Name
}

// Behavior loads the entries of a category for the given environment.
type Behavior interface {
	Load(ctx context.Context, env string) ([]Item, error)
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc func(ctx context.Context, env string) ([]Item, error)

// Load calls f.
func (f BehaviorFunc) Load(ctx context.Context, env string) ([]Item, error) {
	return f(ctx, env)
}

// Category describes a top-level entry that can be drilled into.
type Category struct {
	Key      string
	Title    string
	Behavior Behavior
}

// Item returns the list entry that references the category.
func (c Category) Item() Item {
	return Item{Key: c.Key, Title: c.Title}
}

// RootItems returns the top-level list for the provided categories.
func RootItems(categories []Category) []Item {
	items := make([]Item, 0, len(categories))
	for _, category := range categories {
		items = append(items, category.Item())
	}
	return items
}

// Find locates a category by key.
func Find(categories []Category, key string) (Category, bool) {
	for _, category := range categories {
		if category.Key == key {
			return category, true
		}
	}
	return Category{}, false
}

// CategoryKey builds the list key for a category identifier.
func CategoryKey(id string) string {
	return CategoryPrefix + KeyDelimiter + id
}

// ParseCategoryKey extracts the category identifier from a list key. Keys
// without the category prefix are leaves and report false.
func ParseCategoryKey(key string) (string, bool) {
	if !strings.HasPrefix(key, CategoryPrefix+KeyDelimiter) {
		return "", false
	}
	parts := strings.SplitN(key, KeyDelimiter, 3)
	return parts[1], true
}

// LeafItems converts identifiers into leaf entries.
func LeafItems(names []string) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{Name: name})
	}
	return items
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
