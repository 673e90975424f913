// Package navigation holds the picker's state machine. Reduce is pure: it
// maps a State and an Action to the next State plus the effects the caller
// must run. Runner executes those effects and reports back with actions.
package navigation

import (
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// Phase is the top-level lifecycle of the controller.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadingState reports whether a list is being fetched.
type LoadingState int

const (
	Idle LoadingState = iota
	Loading
)

func (l LoadingState) String() string {
	if l == Loading {
		return "loading"
	}
	return "idle"
}

// State is a snapshot of everything the presentation layer renders.
type State struct {
	Phase            Phase
	Configs          configs.Set
	SelectedConfig   string
	SelectedCategory string
	Items            []menu.Item
	Loading          LoadingState
	ShowSettings     bool
	// Error is terminal once set.
	Error string
	// Notice is a transient message, e.g. a category load that timed out.
	Notice string
	// Generation increases whenever an in-flight category load becomes stale.
	Generation uint64
	// Revision increases whenever Items is replaced.
	Revision uint64
}

// AtRoot reports whether the top-level category list is shown.
func (s State) AtRoot() bool {
	return s.SelectedCategory == ""
}

// Ready reports whether the controller accepts user actions.
func (s State) Ready() bool {
	return s.Phase == PhaseReady
}

func (s State) clone() State {
	dup := s
	dup.Items = menu.CloneItems(s.Items)
	return dup
}
