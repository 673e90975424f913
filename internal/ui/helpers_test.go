package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/cache"
	"github.com/atomicstack/personalisation-picker/internal/clipboard"
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/menu"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
)

type staticLoader struct {
	set configs.Set
	err error
}

func (l staticLoader) LoadAll(context.Context) (configs.Set, error) {
	return l.set, l.err
}

func testConfigs() configs.Set {
	return configs.NewSet([]string{"prod", "stage"}, map[string]configs.Values{
		"prod":  {"commerce-core-endpoint": "https://prod.example/graphql"},
		"stage": {"commerce-core-endpoint": "https://stage.example/graphql", "commerce-store-view-code": "uk"},
	})
}

func leafBehavior(names ...string) menu.Behavior {
	return menu.BehaviorFunc(func(context.Context, string) ([]menu.Item, error) {
		return menu.LeafItems(names), nil
	})
}

func testCategories() []menu.Category {
	return []menu.Category{
		{Key: "loyalty", Title: "Loyalty", Behavior: leafBehavior("gold", "silver")},
		{Key: "segments", Title: "Customer Segments", Behavior: leafBehavior("vip", "new")},
		{Key: "empty", Title: "Empty", Behavior: leafBehavior()},
	}
}

type testEnv struct {
	harness   *Harness
	clipboard *clipboard.Memory
	cache     *cache.Cache
}

func newTestEnv(t *testing.T, loadErr error) *testEnv {
	t.Helper()
	return newTestEnvWith(t, loadErr, Options{})
}

// newTestEnvWith builds a harness around opts; the controller and runner
// fields are filled in.
func newTestEnvWith(t *testing.T, loadErr error, opts Options) *testEnv {
	t.Helper()
	set := testConfigs()
	if loadErr != nil {
		set = configs.Set{}
	}
	c := cache.New("loyalty", "segments")
	mem := &clipboard.Memory{}
	ctrl := navigation.NewController(navigation.NewReducer(navigation.Options{
		Categories:   testCategories(),
		Environments: []string{"prod", "stage"},
	}))
	runner := &navigation.Runner{
		Loader:    staticLoader{set: set, err: loadErr},
		Cache:     c,
		Clipboard: mem,
		Timeout:   time.Second,
	}
	opts.Controller, opts.Runner = ctrl, runner
	model := NewModel(context.Background(), opts)
	h := NewHarness(model)
	h.Init()
	return &testEnv{harness: h, clipboard: mem, cache: c}
}

func newReadyEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, nil)
	if state := env.harness.Model().State(); state.Phase != navigation.PhaseReady {
		t.Fatalf("expected ready phase, got %s", state.Phase)
	}
	return env
}

func failingEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnv(t, errors.New("connection refused"))
}

func keyPress(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
