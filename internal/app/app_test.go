package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/clipboard"
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/menu"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commerceServer struct {
	*httptest.Server
	mu      sync.Mutex
	queries []string
	stores  []string
}

func newCommerceServer(t *testing.T) *commerceServer {
	t.Helper()
	s := &commerceServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		s.mu.Lock()
		s.queries = append(s.queries, query)
		s.stores = append(s.stores, r.Header.Get("Store"))
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(query, "allCustomerSegments"):
			fmt.Fprint(w, `{"data":{"allCustomerSegments":[{"name":"VIP"},{"name":"Returning"}]}}`)
		case strings.Contains(query, "customerGroups"):
			fmt.Fprint(w, `{"data":{"customerGroups":{"items":[{"code":"General"}]}}}`)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *commerceServer) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func (s *commerceServer) recorded() (queries, stores []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...), append([]string(nil), s.stores...)
}

func writeConfig(t *testing.T, dir, name string, values map[string]string) string {
	t.Helper()
	var entries []string
	for k, v := range values {
		entries = append(entries, fmt.Sprintf(`{"key": %q, "value": %q}`, k, v))
	}
	path := filepath.Join(dir, name+".json")
	body := "// generated for " + name + "\n{\"data\": [" + strings.Join(entries, ",") + "]}"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestWireLoadsCategoriesEndToEnd(t *testing.T) {
	srv := newCommerceServer(t)
	dir := t.TempDir()
	prod := writeConfig(t, dir, "prod", map[string]string{"commerce-core-endpoint": srv.URL + "/graphql"})
	stage := writeConfig(t, dir, "stage", map[string]string{
		"commerce-core-endpoint":   srv.URL + "/graphql",
		"commerce-store-view-code": "uk",
	})
	mem := &clipboard.Memory{}
	components, err := Wire(Config{
		Environments: []configs.Source{{Env: "prod", Location: prod}, {Env: "stage", Location: stage}},
		DefaultEnv:   "stage",
		Timeout:      5 * time.Second,
	}, mem, srv.Client())
	require.NoError(t, err)

	ctx := context.Background()
	ctrl := components.Controller
	require.NoError(t, ctrl.Initialize(ctx, components.Runner))
	require.Equal(t, navigation.PhaseReady, ctrl.State().Phase)
	assert.Equal(t, "stage", ctrl.State().SelectedConfig)

	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.SelectItem{Key: menu.CategoryKey("segments")}))
	state := ctrl.State()
	assert.Equal(t, "segments", state.SelectedCategory)
	assert.Equal(t, navigation.Idle, state.Loading)
	assert.Equal(t, menu.LeafItems([]string{"VIP", "Returning"}), state.Items)
	queries, stores := srv.recorded()
	assert.Equal(t, []string{"uk"}, stores)
	assert.Equal(t, "query { allCustomerSegments { name } }", queries[0])

	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.ResetSelection{}))
	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.SelectItem{Key: menu.CategoryKey("segments")}))
	assert.Equal(t, 1, srv.calls(), "second visit should be served from cache")

	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.SelectItem{Key: "VIP"}))
	last, ok := mem.Last()
	require.True(t, ok)
	assert.Equal(t, "VIP", last)

	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.ChangeSelectedConfig{Env: "prod"}))
	assert.Equal(t, 0, components.Cache.Len("segments"))
	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.SelectItem{Key: menu.CategoryKey("segments")}))
	_, stores = srv.recorded()
	require.Len(t, stores, 2)
	assert.Equal(t, "", stores[1])
}

func TestWireRemoteFailureRendersEmptyList(t *testing.T) {
	srv := newCommerceServer(t)
	dir := t.TempDir()
	prod := writeConfig(t, dir, "prod", map[string]string{"commerce-core-endpoint": srv.URL})
	components, err := Wire(Config{
		Environments: []configs.Source{{Env: "prod", Location: prod}},
	}, &clipboard.Memory{}, srv.Client())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, components.Controller.Initialize(ctx, components.Runner))
	require.NoError(t, components.Controller.Apply(ctx, components.Runner, navigation.SelectItem{Key: menu.CategoryKey("cartrules")}))
	state := components.Controller.State()
	assert.Equal(t, "cartrules", state.SelectedCategory)
	assert.Empty(t, state.Items)
	assert.Empty(t, state.Notice)
}

func TestWireUsesDefinitionFile(t *testing.T) {
	srv := newCommerceServer(t)
	dir := t.TempDir()
	prod := writeConfig(t, dir, "prod", map[string]string{"commerce-core-endpoint": srv.URL})
	definition := filepath.Join(dir, "picker.yaml")
	require.NoError(t, os.WriteFile(definition, []byte(fmt.Sprintf(`defaultEnvironment: prod
environments:
  - name: prod
    config: %s
categories:
  - key: groups
    title: Customer Groups
    query: "{ customerGroups { items { code } } }"
    path: [customerGroups, items]
    field: code
`, prod)), 0o644))

	components, err := Wire(Config{Definition: definition}, &clipboard.Memory{}, srv.Client())
	require.NoError(t, err)

	ctx := context.Background()
	ctrl := components.Controller
	require.NoError(t, ctrl.Initialize(ctx, components.Runner))
	assert.Equal(t, []menu.Item{{Key: "groups", Title: "Customer Groups"}}, ctrl.State().Items)

	require.NoError(t, ctrl.Apply(ctx, components.Runner, navigation.SelectItem{Key: menu.CategoryKey("groups")}))
	assert.Equal(t, menu.LeafItems([]string{"General"}), ctrl.State().Items)
}

func TestWireFlagEnvironmentsOverrideDefinition(t *testing.T) {
	dir := t.TempDir()
	definition := filepath.Join(dir, "picker.toml")
	require.NoError(t, os.WriteFile(definition, []byte(`
defaultEnvironment = "file"

[[environments]]
name = "file"
config = "file.json"
`), 0o644))

	components, err := Wire(Config{
		Definition:   definition,
		Environments: []configs.Source{{Env: "flag", Location: "flag.json"}},
	}, &clipboard.Memory{}, nil)
	require.NoError(t, err)

	require.NoError(t, components.Controller.Initialize(context.Background(), components.Runner))
	state := components.Controller.State()
	assert.Equal(t, navigation.PhaseFailed, state.Phase)
	assert.Equal(t, "Could not load flag config file", state.Error)
	assert.Len(t, components.Controller.State().Items, 3, "built-in categories stay when the file declares none")
}

func TestWireRequiresEnvironments(t *testing.T) {
	_, err := Wire(Config{}, &clipboard.Memory{}, nil)
	require.ErrorIs(t, err, ErrNoEnvironments)

	_, err = Wire(Config{Definition: filepath.Join(t.TempDir(), "missing.yaml")}, &clipboard.Memory{}, nil)
	require.Error(t, err)
}

func segmentServer(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"allCustomerSegments":[{"name":%q}]}}`, name)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWireLateLoadAfterEnvironmentSwitchDoesNotPolluteCache(t *testing.T) {
	prodSrv := segmentServer(t, "prod-only")
	stageSrv := segmentServer(t, "stage-only")
	dir := t.TempDir()
	prod := writeConfig(t, dir, "prod", map[string]string{"commerce-core-endpoint": prodSrv.URL})
	stage := writeConfig(t, dir, "stage", map[string]string{"commerce-core-endpoint": stageSrv.URL})
	components, err := Wire(Config{
		Environments: []configs.Source{{Env: "prod", Location: prod}, {Env: "stage", Location: stage}},
		Timeout:      5 * time.Second,
	}, &clipboard.Memory{}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	ctrl, runner := components.Controller, components.Runner
	require.NoError(t, ctrl.Initialize(ctx, runner))
	require.Equal(t, "prod", ctrl.State().SelectedConfig)

	// The prod load is issued but only runs once stage is active.
	pending, err := ctrl.SelectItem(menu.CategoryKey("segments"))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, ctrl.Apply(ctx, runner, navigation.ChangeSelectedConfig{Env: "stage"}))
	for _, effect := range pending {
		if late := runner.Run(ctx, effect); late != nil {
			require.NoError(t, ctrl.Apply(ctx, runner, late))
		}
	}
	require.True(t, ctrl.State().AtRoot(), "late result must not reopen the category")

	require.NoError(t, ctrl.Apply(ctx, runner, navigation.SelectItem{Key: menu.CategoryKey("segments")}))
	state := ctrl.State()
	assert.Equal(t, "stage", state.SelectedConfig)
	assert.Equal(t, menu.LeafItems([]string{"stage-only"}), state.Items)
}
