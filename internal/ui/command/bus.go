package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an effect invocation.
type Request struct {
	ID     string
	Label  string
	Effect navigation.Effect
}

// ActionMsg feeds the action an effect resolved to back into the model.
type ActionMsg struct {
	Action navigation.Action
}

// Bus coordinates the execution of navigation effects.
type Bus struct {
	ctx    context.Context
	runner *navigation.Runner
}

// New initialises a command bus instance.
func New(ctx context.Context, runner *navigation.Runner) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, runner: runner}
}

// Execute wraps an effect into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Effect.Queued(req.ID, req.Label)
	return func() tea.Msg {
		return b.Run(req)
	}
}

// Run executes the effect on the calling goroutine.
func (b *Bus) Run(req Request) tea.Msg {
	if req.Effect == nil || b.runner == nil {
		events.Effect.Dropped(req.ID, req.Label)
		return nil
	}
	action := b.runner.Run(b.ctx, req.Effect)
	if action == nil {
		events.Effect.Silent(req.ID, req.Label)
		return nil
	}
	events.Effect.Done(req.ID, req.Label, fmt.Sprintf("%T", action))
	return ActionMsg{Action: action}
}

// RequestFor describes an effect for tracing.
func RequestFor(effect navigation.Effect) Request {
	req := Request{ID: navigation.EffectName(effect), Effect: effect}
	switch e := effect.(type) {
	case navigation.LoadCategory:
		req.Label = fmt.Sprintf("%s@%s", e.Category.Key, e.Env)
	case navigation.WriteClipboard:
		req.Label = e.Value
	}
	return req
}
