package menu

import (
	"context"
	"testing"
)

func TestParseCategoryKey(t *testing.T) {
	cases := []struct {
		key   string
		id    string
		isCat bool
	}{
		{key: "category:loyalty", id: "loyalty", isCat: true},
		{key: "category:a:b", id: "a", isCat: true},
		{key: "category:", id: "", isCat: true},
		{key: "gold", isCat: false},
		{key: "category", isCat: false},
		{key: "categoryloyalty", isCat: false},
		{key: "", isCat: false},
	}
	for _, tc := range cases {
		id, ok := ParseCategoryKey(tc.key)
		if ok != tc.isCat {
			t.Fatalf("%q: expected category=%v, got %v", tc.key, tc.isCat, ok)
		}
		if id != tc.id {
			t.Fatalf("%q: expected id %q, got %q", tc.key, tc.id, id)
		}
	}
}

func TestItemListKeyAndLabel(t *testing.T) {
	cat := Item{Key: "loyalty", Title: "Loyalty"}
	if !cat.IsCategory() {
		t.Fatalf("expected category item")
	}
	if cat.ListKey() != "category:loyalty" {
		t.Fatalf("unexpected list key %q", cat.ListKey())
	}
	if cat.Label() != "Loyalty" {
		t.Fatalf("unexpected label %q", cat.Label())
	}
	leaf := Item{Name: "gold"}
	if leaf.IsCategory() {
		t.Fatalf("expected leaf item")
	}
	if leaf.ListKey() != "gold" || leaf.Label() != "gold" {
		t.Fatalf("unexpected leaf key/label %q/%q", leaf.ListKey(), leaf.Label())
	}
}

func TestRootItemsAndFind(t *testing.T) {
	categories := []Category{
		{Key: "segments", Title: "Customer Segments"},
		{Key: "loyalty", Title: "Loyalty", Behavior: BehaviorFunc(func(context.Context, string) ([]Item, error) {
			return LeafItems([]string{"gold"}), nil
		})},
	}
	items := RootItems(categories)
	if len(items) != 2 || items[1].ListKey() != "category:loyalty" {
		t.Fatalf("unexpected root items %#v", items)
	}
	found, ok := Find(categories, "loyalty")
	if !ok || found.Behavior == nil {
		t.Fatalf("expected loyalty category with behavior")
	}
	loaded, err := found.Behavior.Load(context.Background(), "prod")
	if err != nil || len(loaded) != 1 || loaded[0].Name != "gold" {
		t.Fatalf("unexpected load result %#v, %v", loaded, err)
	}
	if _, ok := Find(categories, "missing"); ok {
		t.Fatalf("expected missing category lookup to fail")
	}
}
