package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/personalisation-picker/internal/menu"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
)

func TestEnterOnCategoryShowsItems(t *testing.T) {
	env := newReadyEnv(t)
	env.harness.Send(keyPress(tea.KeyEnter))

	state := env.harness.Model().State()
	if state.SelectedCategory != "loyalty" || state.Loading != navigation.Idle {
		t.Fatalf("unexpected state %+v", state)
	}
	view := env.harness.View()
	if !strings.Contains(view, "Personalisation→Loyalty") {
		t.Fatalf("expected breadcrumb, got:\n%s", view)
	}
	if !strings.Contains(view, "gold") || !strings.Contains(view, "silver") {
		t.Fatalf("expected leaf items, got:\n%s", view)
	}
}

func TestEnterOnLeafCopiesName(t *testing.T) {
	env := newReadyEnv(t)
	env.harness.Send(keyPress(tea.KeyEnter))
	env.harness.Send(keyPress(tea.KeyDown))
	before := env.harness.Model().State()
	env.harness.Send(keyPress(tea.KeyEnter))

	if got := env.clipboard.Writes(); len(got) != 1 || got[0] != "silver" {
		t.Fatalf("expected one clipboard write of silver, got %v", got)
	}
	after := env.harness.Model().State()
	if after.Revision != before.Revision || after.SelectedCategory != before.SelectedCategory {
		t.Fatalf("expected no state change on copy")
	}
	if !strings.Contains(env.harness.View(), "Copied silver to clipboard") {
		t.Fatalf("expected copy confirmation in view")
	}
}

func TestCopyKeyIgnoresCategories(t *testing.T) {
	env := newReadyEnv(t)
	env.harness.Send(keyPress(tea.KeyCtrlY))
	if len(env.clipboard.Writes()) != 0 {
		t.Fatalf("expected no clipboard write for a category row")
	}
	env.harness.Send(keyPress(tea.KeyEnter))
	env.harness.Send(keyPress(tea.KeyCtrlY))
	if last, _ := env.clipboard.Last(); last != "gold" {
		t.Fatalf("expected gold copied, got %q", last)
	}
}

func TestEscapeReturnsToRootAndRestoresCursor(t *testing.T) {
	env := newReadyEnv(t)
	env.harness.Send(keyPress(tea.KeyDown))
	env.harness.Send(keyPress(tea.KeyEnter))
	if got := env.harness.Model().State().SelectedCategory; got != "segments" {
		t.Fatalf("expected segments selected, got %q", got)
	}

	env.harness.Send(keyPress(tea.KeyEsc))
	if env.harness.Quitting() {
		t.Fatalf("expected esc inside a category to go back, not quit")
	}
	m := env.harness.Model()
	if !m.State().AtRoot() {
		t.Fatalf("expected root view after esc")
	}
	item, ok := m.currentLevel().Current()
	if !ok || item.ListKey() != menu.CategoryKey("segments") {
		t.Fatalf("expected cursor restored to segments, got %#v", item)
	}

	env.harness.Send(keyPress(tea.KeyEsc))
	if !env.harness.Quitting() {
		t.Fatalf("expected esc at root to quit")
	}
}

func TestEmptyCategoryShowsNoItemsFound(t *testing.T) {
	env := newReadyEnv(t)
	env.harness.Send(keyPress(tea.KeyEnd))
	env.harness.Send(keyPress(tea.KeyEnter))
	view := env.harness.View()
	if !strings.Contains(view, "Personalisation→Empty") {
		t.Fatalf("expected breadcrumb for empty category, got:\n%s", view)
	}
	if !strings.Contains(view, "No items found") {
		t.Fatalf("expected empty state, got:\n%s", view)
	}
}

func TestRefreshClearsCacheAndResets(t *testing.T) {
	env := newReadyEnv(t)
	env.cache.Put("prod", "loyalty", menu.LeafItems([]string{"gold"}))
	env.harness.Send(keyPress(tea.KeyEnter))
	env.harness.Send(keyPress(tea.KeyCtrlR))

	state := env.harness.Model().State()
	if !state.AtRoot() || state.SelectedConfig != "prod" {
		t.Fatalf("expected root view under prod, got %+v", state)
	}
	if env.cache.Len("loyalty") != 0 {
		t.Fatalf("expected cache cleared")
	}
}

func TestCursorWrapsAround(t *testing.T) {
	env := newReadyEnv(t)
	m := env.harness.Model()
	env.harness.Send(keyPress(tea.KeyUp))
	if m.currentLevel().Cursor != 2 {
		t.Fatalf("expected wrap to last item, got %d", m.currentLevel().Cursor)
	}
	env.harness.Send(keyPress(tea.KeyDown))
	if m.currentLevel().Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", m.currentLevel().Cursor)
	}
	env.harness.Send(keyPress(tea.KeyPgDown))
	if m.currentLevel().Cursor != 2 {
		t.Fatalf("expected page down to reach the end, got %d", m.currentLevel().Cursor)
	}
	env.harness.Send(keyPress(tea.KeyHome))
	if m.currentLevel().Cursor != 0 {
		t.Fatalf("expected home to reach the start, got %d", m.currentLevel().Cursor)
	}
}
