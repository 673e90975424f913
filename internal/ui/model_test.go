package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/personalisation-picker/internal/menu"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestInitLoadsConfigsAndShowsRoot(t *testing.T) {
	env := newReadyEnv(t)
	state := env.harness.Model().State()
	if state.SelectedConfig != "prod" {
		t.Fatalf("expected prod selected, got %q", state.SelectedConfig)
	}
	view := env.harness.View()
	for _, want := range []string{"Personalisation", "Loyalty", "Customer Segments", "env prod"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestFailedInitShowsErrorScreen(t *testing.T) {
	env := failingEnv(t)
	view := env.harness.View()
	if !strings.Contains(view, "Something went wrong") {
		t.Fatalf("expected error heading, got:\n%s", view)
	}
	if !strings.Contains(view, "Could not load prod config file") {
		t.Fatalf("expected error message, got:\n%s", view)
	}
	if strings.Contains(view, "Loyalty") {
		t.Fatalf("expected list hidden on error screen")
	}

	env.harness.Send(keyPress(tea.KeyEnter))
	if env.harness.Model().State().Phase != navigation.PhaseFailed {
		t.Fatalf("expected failed phase to be terminal")
	}
	env.harness.Send(keyPress(tea.KeyEsc))
	if !env.harness.Quitting() {
		t.Fatalf("expected esc to quit from error screen")
	}
}

func TestSyncLevelFollowsRevision(t *testing.T) {
	env := newReadyEnv(t)
	m := env.harness.Model()
	root := m.currentLevel()
	m.syncLevel()
	if m.currentLevel() != root {
		t.Fatalf("expected level reused while revision is unchanged")
	}
	env.harness.Send(keyPress(tea.KeyEnter))
	if m.currentLevel() == root {
		t.Fatalf("expected level rebuilt after items changed")
	}
	if m.currentLevel().ID != "loyalty" || m.currentLevel().Title != "Loyalty" {
		t.Fatalf("unexpected level %s/%s", m.currentLevel().ID, m.currentLevel().Title)
	}
	want := menu.LeafItems([]string{"gold", "silver"})
	if len(m.currentLevel().Items) != len(want) || m.currentLevel().Items[1] != want[1] {
		t.Fatalf("unexpected items %#v", m.currentLevel().Items)
	}
}

func TestWindowSizeUpdatesDimensions(t *testing.T) {
	env := newReadyEnv(t)
	env.harness.Send(tea.WindowSizeMsg{Width: 50, Height: 12})
	m := env.harness.Model()
	if m.width != 50 || m.height != 12 {
		t.Fatalf("expected 50x12, got %dx%d", m.width, m.height)
	}
	for _, line := range strings.Split(env.harness.View(), "\n") {
		if w := ansi.StringWidth(line); w > 50 {
			t.Fatalf("line exceeds width (%d): %q", w, line)
		}
	}
}
