package navigation

import (
	"fmt"

	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// Options configures a Reducer.
type Options struct {
	Categories []menu.Category
	// Environments lists the configured environments in declaration order.
	Environments []string
	// DefaultConfig is selected after initialisation when it was loaded.
	DefaultConfig string
}

// Reducer computes state transitions for a fixed category list.
type Reducer struct {
	categories    []menu.Category
	root          []menu.Item
	environments  []string
	defaultConfig string
}

// NewReducer builds a reducer for the provided options.
func NewReducer(opts Options) *Reducer {
	categories := append([]menu.Category(nil), opts.Categories...)
	return &Reducer{
		categories:    categories,
		root:          menu.RootItems(categories),
		environments:  append([]string(nil), opts.Environments...),
		defaultConfig: opts.DefaultConfig,
	}
}

// Initial returns the state before configs are loaded.
func (r *Reducer) Initial() State {
	return State{
		Phase:   PhaseInitializing,
		Items:   menu.CloneItems(r.root),
		Loading: Loading,
	}
}

// Root returns the top-level item list.
func (r *Reducer) Root() []menu.Item {
	return menu.CloneItems(r.root)
}

// Category looks up a category by key.
func (r *Reducer) Category(key string) (menu.Category, bool) {
	return menu.Find(r.categories, key)
}

// Reduce applies a to s. The returned error is only set for rejected input;
// the state is unchanged in that case.
func (r *Reducer) Reduce(s State, a Action) (State, []Effect, error) {
	switch act := a.(type) {
	case ConfigsLoaded:
		return r.configsLoaded(s, act)
	case ConfigsFailed:
		return r.configsFailed(s, act)
	}
	if !s.Ready() {
		events.Nav.Ignored(Name(a), s.Phase.String())
		return s, nil, nil
	}
	switch act := a.(type) {
	case SelectItem:
		return r.selectItem(s, act)
	case CategoryLoaded:
		return r.categoryLoaded(s, act), nil, nil
	case ResetSelection:
		return r.toRoot(s), nil, nil
	case ChangeSelectedConfig:
		if !s.Configs.Has(act.Env) {
			return s, nil, fmt.Errorf("%w %q", configs.ErrUnknownEnvironment, act.Env)
		}
		next := r.toRoot(s)
		next.SelectedConfig = act.Env
		return next, []Effect{FlushCache{}}, nil
	case ClearCache:
		return r.toRoot(s), []Effect{FlushCache{}}, nil
	case ToggleSettings:
		s.ShowSettings = !s.ShowSettings
		return s, nil, nil
	case CopyToClipboard:
		return s, []Effect{WriteClipboard{Value: act.Value}}, nil
	default:
		events.Nav.Ignored(Name(a), "unknown action")
		return s, nil, nil
	}
}

func (r *Reducer) configsLoaded(s State, act ConfigsLoaded) (State, []Effect, error) {
	if s.Phase != PhaseInitializing {
		events.Nav.Ignored(Name(act), s.Phase.String())
		return s, nil, nil
	}
	if act.Set.Len() == 0 {
		return r.fail(s), nil, nil
	}
	selected := r.defaultConfig
	if !act.Set.Has(selected) {
		selected = act.Set.Environments()[0]
	}
	s.Phase = PhaseReady
	s.Configs = act.Set
	s.SelectedConfig = selected
	s.Loading = Idle
	return s, nil, nil
}

func (r *Reducer) configsFailed(s State, act ConfigsFailed) (State, []Effect, error) {
	if s.Phase != PhaseInitializing {
		events.Nav.Ignored(Name(act), s.Phase.String())
		return s, nil, nil
	}
	return r.fail(s), nil, nil
}

func (r *Reducer) fail(s State) State {
	s.Phase = PhaseFailed
	s.Configs = configs.Set{}
	s.Loading = Idle
	s.Error = fmt.Sprintf("Could not load %s config file", r.preferredEnvironment())
	events.Nav.Failed(s.Error)
	return s
}

// preferredEnvironment names the environment the user expects to be active:
// the default when given, otherwise the first declared one.
func (r *Reducer) preferredEnvironment() string {
	if r.defaultConfig != "" {
		return r.defaultConfig
	}
	if len(r.environments) > 0 {
		return r.environments[0]
	}
	return "default"
}

func (r *Reducer) selectItem(s State, act SelectItem) (State, []Effect, error) {
	id, ok := menu.ParseCategoryKey(act.Key)
	if !ok {
		return s, []Effect{WriteClipboard{Value: act.Key}}, nil
	}
	category, found := r.Category(id)
	if !found || category.Behavior == nil {
		events.Nav.Ignored(Name(act), "no loadable category "+id)
		return s, nil, nil
	}
	s.SelectedCategory = id
	s.Loading = Loading
	s.Notice = ""
	s.Generation++
	return s, []Effect{LoadCategory{
		Generation: s.Generation,
		Category:   category,
		Env:        s.SelectedConfig,
	}}, nil
}

func (r *Reducer) categoryLoaded(s State, act CategoryLoaded) State {
	if act.Generation != s.Generation || act.Key != s.SelectedCategory {
		events.Nav.Stale(act.Key, act.Generation, s.Generation)
		return s
	}
	items := menu.CloneItems(act.Items)
	if items == nil {
		items = []menu.Item{}
	}
	s.Items = items
	s.Revision++
	s.Loading = Idle
	if act.Err != nil {
		title := act.Key
		if category, ok := r.Category(act.Key); ok && category.Title != "" {
			title = category.Title
		}
		s.Notice = fmt.Sprintf("Could not load %s: %v", title, act.Err)
	}
	events.Nav.Loaded(act.Key, s.SelectedConfig, len(items))
	return s
}

// toRoot shows the top-level list. A load still in flight becomes stale.
func (r *Reducer) toRoot(s State) State {
	if s.AtRoot() && s.Loading == Idle {
		s.Notice = ""
		return s
	}
	if s.Loading == Loading {
		s.Generation++
	}
	s.SelectedCategory = ""
	s.Items = menu.CloneItems(r.root)
	s.Revision++
	s.Loading = Idle
	s.Notice = ""
	return s
}
