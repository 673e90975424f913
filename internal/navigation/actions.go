package navigation

import (
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// Action is an input to Reduce. The set is closed: only the types in this
// file implement it.
type Action interface {
	actionName() string
}

// ConfigsLoaded commits the result of a successful LoadConfigs effect.
type ConfigsLoaded struct {
	Set configs.Set
}

// ConfigsFailed reports that at least one environment config could not load.
type ConfigsFailed struct {
	Err error
}

// SelectItem activates the list entry with the given key.
type SelectItem struct {
	Key string
}

// CategoryLoaded carries the result of a LoadCategory effect.
type CategoryLoaded struct {
	Generation uint64
	Key        string
	Items      []menu.Item
	Err        error
}

// ResetSelection returns to the top-level list.
type ResetSelection struct{}

// ChangeSelectedConfig switches the active environment.
type ChangeSelectedConfig struct {
	Env string
}

// ClearCache drops every cached response and returns to the top-level list.
type ClearCache struct{}

// ToggleSettings shows or hides the settings panel.
type ToggleSettings struct{}

// CopyToClipboard writes Value to the clipboard.
type CopyToClipboard struct {
	Value string
}

func (ConfigsLoaded) actionName() string        { return "configs-loaded" }
func (ConfigsFailed) actionName() string        { return "configs-failed" }
func (SelectItem) actionName() string           { return "select-item" }
func (CategoryLoaded) actionName() string       { return "category-loaded" }
func (ResetSelection) actionName() string       { return "reset-selection" }
func (ChangeSelectedConfig) actionName() string { return "change-selected-config" }
func (ClearCache) actionName() string           { return "clear-cache" }
func (ToggleSettings) actionName() string       { return "toggle-settings" }
func (CopyToClipboard) actionName() string      { return "copy-to-clipboard" }

// Name returns the trace name of an action.
func Name(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}
