package ui

import (
	"github.com/atomicstack/personalisation-picker/internal/format/table"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openSettings() tea.Cmd {
	state := m.ctrl.State()
	m.settingsCursor = indexOf(state.Configs.Environments(), state.SelectedConfig)
	return m.dispatch(navigation.ToggleSettings{})
}

// handleSettingsKey drives the environment picker shown while the settings
// panel is open. Filtering is suspended until the panel closes.
func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	envs := m.ctrl.State().Configs.Environments()
	switch {
	case key.Matches(msg, m.keys.Settings), key.Matches(msg, m.keys.Back):
		return m.dispatch(navigation.ToggleSettings{})
	case key.Matches(msg, m.keys.Up):
		if len(envs) > 0 {
			m.settingsCursor = (m.settingsCursor - 1 + len(envs)) % len(envs)
			events.UI.SettingsCursor(envs[m.settingsCursor], m.settingsCursor)
		}
	case key.Matches(msg, m.keys.Down):
		if len(envs) > 0 {
			m.settingsCursor = (m.settingsCursor + 1) % len(envs)
			events.UI.SettingsCursor(envs[m.settingsCursor], m.settingsCursor)
		}
	case key.Matches(msg, m.keys.Select):
		if m.settingsCursor < 0 || m.settingsCursor >= len(envs) {
			return nil
		}
		m.errMsg = ""
		return m.dispatch(navigation.ChangeSelectedConfig{Env: envs[m.settingsCursor]})
	case key.Matches(msg, m.keys.Refresh):
		return m.handleRefreshKey()
	}
	return nil
}

// settingsLines renders the environment list followed by the active
// environment's config as a key/value table.
func (m *Model) settingsLines() []string {
	state := m.ctrl.State()
	envs := state.Configs.Environments()
	lines := []string{m.styled(styles.SettingsTitle, "Configuration")}
	for i, env := range envs {
		label := env
		if env == state.SelectedConfig {
			label += " (active)"
		}
		lines = append(lines, m.row(label, i == m.settingsCursor, nil))
	}
	values, _ := state.Configs.Values(state.SelectedConfig)
	rows := table.Format(table.KeyValues(values), []table.Alignment{table.AlignLeft, table.AlignLeft})
	if len(rows) > 0 {
		lines = append(lines, "")
		for _, row := range rows {
			lines = append(lines, m.styled(styles.SettingsRow, "  "+row))
		}
	}
	return append(lines, "")
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || m.ctrl.State().Loading != navigation.Loading {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// handleSpinnerTickMsg keeps the spinner animating only while something is
// loading.
func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if m.ctrl.State().Loading != navigation.Loading {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}
