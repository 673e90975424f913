package ui

import (
	"fmt"

	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/menu"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	"github.com/atomicstack/personalisation-picker/internal/ui/command"
	uistate "github.com/atomicstack/personalisation-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dispatch applies an action to the controller and schedules its effects.
// Rejected actions surface as an error line; the state is left untouched.
func (m *Model) dispatch(action navigation.Action) tea.Cmd {
	effects, err := m.ctrl.Dispatch(action)
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Rejected(fmt.Sprintf("%T", action), err)
		return nil
	}
	m.syncLevel()
	cmds := []tea.Cmd{m.runEffects(effects)}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) runEffects(effects []navigation.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		req := command.RequestFor(effect)
		if _, ok := effect.(navigation.FlushCache); ok {
			// Flushes run inline so a load issued right after never reads
			// entries of the previous environment.
			if msg := m.bus.Run(req); msg != nil {
				cmds = append(cmds, func() tea.Msg { return msg })
			}
			continue
		}
		cmds = append(cmds, m.bus.Execute(req))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleActionMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(command.ActionMsg)
	if !ok || update.Action == nil {
		return nil
	}
	cmd := m.dispatch(update.Action)
	switch action := update.Action.(type) {
	case navigation.ConfigsLoaded:
		state := m.ctrl.State()
		m.settingsCursor = indexOf(state.Configs.Environments(), state.SelectedConfig)
	case navigation.ConfigsFailed:
		events.Action.Failed("configs", action.Err)
	case navigation.CategoryLoaded:
		if action.Err != nil {
			events.Action.Failed(action.Key, action.Err)
		} else if m.verbose && action.Generation == m.ctrl.State().Generation {
			info := fmt.Sprintf("Loaded %d items", len(action.Items))
			events.Action.Info(info)
			m.setInfo(info)
		}
	}
	return cmd
}

// syncLevel rebuilds the list view whenever the controller replaced its
// items. Cursor and filter survive only while the list is unchanged.
func (m *Model) syncLevel() {
	state := m.ctrl.State()
	if m.level != nil && state.Revision == m.revision {
		return
	}
	id, title := rootLevelID, defaultRootTitle
	if !state.AtRoot() {
		id = state.SelectedCategory
		title = m.categoryTitle(state.SelectedCategory)
	}
	next := uistate.NewLevel(id, title, state.Items)
	next.Revision = state.Revision
	if state.AtRoot() && m.lastCategory != "" {
		next.SelectKey(menu.CategoryKey(m.lastCategory))
	}
	if !state.AtRoot() {
		m.lastCategory = state.SelectedCategory
	}
	m.level = next
	m.revision = state.Revision
	m.filter.Reset()
	m.syncViewport(next)
}

func (m *Model) categoryTitle(key string) string {
	if category, ok := m.ctrl.Reducer().Category(key); ok && category.Title != "" {
		return category.Title
	}
	return key
}

func (m *Model) handleEscapeKey() tea.Cmd {
	state := m.ctrl.State()
	if state.ShowSettings {
		return m.dispatch(navigation.ToggleSettings{})
	}
	if state.AtRoot() {
		return tea.Quit
	}
	m.errMsg = ""
	m.forceClearInfo()
	return m.dispatch(navigation.ResetSelection{})
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	item, ok := current.Current()
	if !ok {
		return nil
	}
	events.UI.Enter(current.ID, item.ListKey(), current.Filter)
	m.errMsg = ""
	m.forceClearInfo()
	if !item.IsCategory() {
		m.setInfo(fmt.Sprintf("Copied %s to clipboard", item.Name))
	}
	return m.dispatch(navigation.SelectItem{Key: item.ListKey()})
}

func (m *Model) handleCopyKey() tea.Cmd {
	item, ok := m.currentLevel().Current()
	if !ok || item.IsCategory() {
		return nil
	}
	m.setInfo(fmt.Sprintf("Copied %s to clipboard", item.Name))
	return m.dispatch(navigation.CopyToClipboard{Value: item.Name})
}

func (m *Model) handleRefreshKey() tea.Cmd {
	m.errMsg = ""
	m.setInfo("Cache cleared")
	return m.dispatch(navigation.ClearCache{})
}

// moveCursor applies a cursor movement to the visible list and keeps the
// cursor row on screen.
func (m *Model) moveCursor(move func(*level) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current) {
		events.UI.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	state := m.ctrl.State()
	if !state.Ready() {
		if key.Matches(keyMsg, m.keys.Back) {
			return tea.Quit
		}
		return nil
	}
	if state.ShowSettings {
		return m.handleSettingsKey(keyMsg)
	}
	if handled, cmd := m.handleFilterKey(keyMsg); handled {
		return cmd
	}
	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Select):
		return m.handleEnterKey()
	case key.Matches(keyMsg, m.keys.Copy):
		return m.handleCopyKey()
	case key.Matches(keyMsg, m.keys.Refresh):
		return m.handleRefreshKey()
	case key.Matches(keyMsg, m.keys.Settings):
		return m.openSettings()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(func(l *level) bool { return l.Step(-1) })
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(func(l *level) bool { return l.Step(1) })
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func(l *level) bool { return l.Page(-1, m.maxVisibleItems()) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func(l *level) bool { return l.Page(1, m.maxVisibleItems()) })
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(func(l *level) bool { return l.Jump(false) })
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(func(l *level) bool { return l.Jump(true) })
	}
	return nil
}

func (m *Model) currentLevel() *level {
	return m.level
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return 0
}
