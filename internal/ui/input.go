package ui

import (
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	filterPrompt      = "» "
	filterPlaceholder = "type to search"
	minFilterWidth    = 20
)

func newFilterInput() textinput.Model {
	in := textinput.New()
	in.Prompt = filterPrompt
	in.Placeholder = filterPlaceholder
	if styles.FilterPrompt != nil {
		in.PromptStyle = styles.FilterPrompt.Copy()
	}
	if styles.Filter != nil {
		in.TextStyle = styles.Filter.Copy()
	}
	if styles.FilterPlaceholder != nil {
		in.PlaceholderStyle = styles.FilterPlaceholder.Copy()
	}
	if styles.Cursor != nil {
		in.Cursor.Style = styles.Cursor.Copy()
	}
	in.Focus()
	return in
}

// filterInputWidth is the text width left for the filter once the prompt is
// drawn. The input never shrinks below the placeholder.
func filterInputWidth(total int) int {
	w := total - len([]rune(filterPrompt)) - 1
	if w < minFilterWidth {
		return minFilterWidth
	}
	return w
}

// isFilterKey reports whether msg edits the filter rather than driving the
// list. Printable runes always go to the filter.
func (m *Model) isFilterKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		return !msg.Alt || key.Matches(msg, m.keys.FilterEdit)
	case tea.KeySpace:
		return true
	}
	return key.Matches(msg, m.keys.FilterEdit)
}

// handleFilterKey feeds filter editing keys to the text input.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.isFilterKey(msg) {
		return false, nil
	}
	return true, m.updateFilterInput(msg)
}

func (m *Model) updateFilterInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilterValue()
	return cmd
}

// applyFilterValue narrows the visible list to the text input's value.
func (m *Model) applyFilterValue() {
	current := m.currentLevel()
	if current == nil || !current.SetFilter(m.filter.Value()) {
		return
	}
	m.errMsg = ""
	m.forceClearInfo()
	if current.Filter == "" {
		events.Filter.Cleared(current.ID)
	} else {
		events.Filter.Changed(current.ID, current.Filter, len(current.Items))
	}
	m.syncViewport(current)
}
