package navigation

import (
	"context"
	"sync"

	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
)

// Controller owns the current State and serialises actions through Reduce.
type Controller struct {
	mu      sync.Mutex
	reducer *Reducer
	state   State
}

// NewController creates a controller in the initializing phase.
func NewController(reducer *Reducer) *Controller {
	return &Controller{reducer: reducer, state: reducer.Initial()}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Configs returns the loaded environment configs. The set is empty until
// initialisation succeeds.
func (c *Controller) Configs() configs.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Configs
}

// Reducer exposes the reducer backing the controller.
func (c *Controller) Reducer() *Reducer {
	return c.reducer
}

// Start returns the effects that initialise the controller.
func (c *Controller) Start() []Effect {
	return []Effect{LoadConfigs{}}
}

// Dispatch applies an action and returns the effects to run.
func (c *Controller) Dispatch(a Action) ([]Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, effects, err := c.reducer.Reduce(c.state, a)
	if err != nil {
		return nil, err
	}
	c.state = next
	events.Nav.Action(Name(a), next.Generation)
	return effects, nil
}

// Initialize loads every environment config and waits for the outcome.
func (c *Controller) Initialize(ctx context.Context, runner *Runner) error {
	return c.settle(ctx, runner, c.Start())
}

// Apply dispatches a and runs the resulting effects to completion.
func (c *Controller) Apply(ctx context.Context, runner *Runner, a Action) error {
	effects, err := c.Dispatch(a)
	if err != nil {
		return err
	}
	return c.settle(ctx, runner, effects)
}

func (c *Controller) settle(ctx context.Context, runner *Runner, effects []Effect) error {
	for len(effects) > 0 {
		effect := effects[0]
		effects = effects[1:]
		follow := runner.Run(ctx, effect)
		if follow == nil {
			continue
		}
		more, err := c.Dispatch(follow)
		if err != nil {
			return err
		}
		effects = append(effects, more...)
	}
	return nil
}

func (c *Controller) SelectItem(key string) ([]Effect, error) {
	return c.Dispatch(SelectItem{Key: key})
}

func (c *Controller) ResetSelection() ([]Effect, error) {
	return c.Dispatch(ResetSelection{})
}

func (c *Controller) ChangeSelectedConfig(env string) ([]Effect, error) {
	return c.Dispatch(ChangeSelectedConfig{Env: env})
}

func (c *Controller) ClearCache() ([]Effect, error) {
	return c.Dispatch(ClearCache{})
}

func (c *Controller) ToggleSettings() ([]Effect, error) {
	return c.Dispatch(ToggleSettings{})
}

func (c *Controller) CopyToClipboard(value string) ([]Effect, error) {
	return c.Dispatch(CopyToClipboard{Value: value})
}
