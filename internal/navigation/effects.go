package navigation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/clipboard"
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/logging"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// DefaultLoadTimeout bounds a single category load.
const DefaultLoadTimeout = 15 * time.Second

// ErrLoadTimeout is reported when a category load exceeds the runner timeout.
var ErrLoadTimeout = errors.New("category load timed out")

// Effect is a side effect requested by Reduce.
type Effect interface {
	effectName() string
}

// LoadConfigs fetches every environment config.
type LoadConfigs struct{}

// LoadCategory runs a category behavior for Env.
type LoadCategory struct {
	Generation uint64
	Category   menu.Category
	Env        string
}

// FlushCache empties the response cache.
type FlushCache struct{}

// WriteClipboard places Value on the clipboard.
type WriteClipboard struct {
	Value string
}

func (LoadConfigs) effectName() string    { return "load-configs" }
func (LoadCategory) effectName() string   { return "load-category" }
func (FlushCache) effectName() string     { return "flush-cache" }
func (WriteClipboard) effectName() string { return "write-clipboard" }

// EffectName returns the trace name of an effect.
func EffectName(e Effect) string {
	if e == nil {
		return ""
	}
	return e.effectName()
}

// ConfigLoader fetches the config of every environment at once.
type ConfigLoader interface {
	LoadAll(ctx context.Context) (configs.Set, error)
}

// Cache is the part of the response cache the runner needs.
type Cache interface {
	Clear()
}

// Runner executes effects. Each Run call returns the action to feed back
// into Reduce, or nil when the effect has no follow-up.
type Runner struct {
	Loader    ConfigLoader
	Cache     Cache
	Clipboard clipboard.Writer
	Timeout   time.Duration
}

// Run executes a single effect.
func (r *Runner) Run(ctx context.Context, effect Effect) Action {
	switch e := effect.(type) {
	case LoadConfigs:
		return r.loadConfigs(ctx)
	case LoadCategory:
		return r.loadCategory(ctx, e)
	case FlushCache:
		if r.Cache != nil {
			r.Cache.Clear()
		}
		return nil
	case WriteClipboard:
		r.writeClipboard(e.Value)
		return nil
	default:
		logging.Error(fmt.Errorf("navigation: unknown effect %T", effect))
		return nil
	}
}

func (r *Runner) loadConfigs(ctx context.Context) Action {
	if r.Loader == nil {
		return ConfigsFailed{Err: errors.New("no config loader configured")}
	}
	set, err := r.Loader.LoadAll(ctx)
	if err != nil {
		return ConfigsFailed{Err: err}
	}
	return ConfigsLoaded{Set: set}
}

type loadResult struct {
	items []menu.Item
	err   error
}

func (r *Runner) loadCategory(ctx context.Context, e LoadCategory) Action {
	done := CategoryLoaded{Generation: e.Generation, Key: e.Category.Key}
	if e.Category.Behavior == nil {
		done.Items = []menu.Item{}
		return done
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Behaviors that ignore ctx must not pin the list in Loading.
	results := make(chan loadResult, 1)
	go func() {
		items, err := e.Category.Behavior.Load(ctx, e.Env)
		results <- loadResult{items: items, err: err}
	}()

	select {
	case res := <-results:
		done.Items, done.Err = res.items, res.err
		if errors.Is(done.Err, context.DeadlineExceeded) {
			done.Err = fmt.Errorf("%w after %s", ErrLoadTimeout, timeout)
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			done.Err = fmt.Errorf("%w after %s", ErrLoadTimeout, timeout)
		} else {
			done.Err = ctx.Err()
		}
	}
	if done.Err != nil {
		logging.Error(fmt.Errorf("load category %s for %s: %w", e.Category.Key, e.Env, done.Err))
		done.Items = nil
	}
	return done
}

func (r *Runner) writeClipboard(value string) {
	events.Nav.Copy(value)
	if r.Clipboard == nil {
		return
	}
	if err := r.Clipboard.WriteAll(value); err != nil {
		logging.Error(err)
	}
}
