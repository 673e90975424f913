package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	categoryGlyph = "▸ "
	leafGlyph     = "  "
	infoLifetime  = 5 * time.Second
)

// View implements tea.Model.
func (m *Model) View() string {
	state := m.ctrl.State()
	switch state.Phase {
	case navigation.PhaseFailed:
		return joinRows(
			m.styled(styles.ErrorTitle, "Something went wrong"),
			m.styled(styles.Error, state.Error),
		)
	case navigation.PhaseInitializing:
		return m.fit(m.spinner.View() + " Loading configuration…")
	}
	return m.viewReady(state)
}

func (m *Model) viewReady(state navigation.State) string {
	body := []string{
		m.styled(styles.Header, m.menuHeader(state)),
		m.fit(m.toolbar(state)),
	}
	if state.ShowSettings {
		body = append(body, m.settingsLines()...)
	}
	body = append(body, m.listLines(state)...)
	if state.Notice != "" {
		body = append(body, "", m.styled(styles.Notice, state.Notice))
	}
	if info := m.currentInfo(); info != "" {
		body = append(body, "", m.styled(styles.Info, info))
	}
	if m.showFooter {
		body = append(body, "")
		for _, row := range strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n") {
			body = append(body, m.fit(row))
		}
	}
	// The last two rows belong to the status line and the filter prompt.
	body = m.clipRows(body, m.height-2)

	status := ""
	if m.errMsg != "" {
		status = m.styled(styles.Error, "Error: "+m.errMsg)
	}
	return joinRows(append(body, status, m.fit(m.filter.View()))...)
}

func (m *Model) listLines(state navigation.State) []string {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if state.Loading == navigation.Loading {
		title := defaultRootTitle
		if !state.AtRoot() {
			title = m.categoryTitle(state.SelectedCategory)
		}
		return []string{m.fit(fmt.Sprintf("%s Loading %s…", m.spinner.View(), title))}
	}
	if len(current.Items) == 0 {
		msg := "No items found"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		return []string{m.styled(styles.Info, msg)}
	}
	visible, start := current.Window(m.maxVisibleItems())
	rows := make([]string, 0, len(visible))
	for i, item := range visible {
		selected := start+i == current.Cursor
		if !item.IsCategory() {
			rows = append(rows, m.row(leafGlyph+item.Label(), selected, nil))
			continue
		}
		rows = append(rows, m.row(categoryGlyph+item.Label(), selected, styles.CategoryItem))
	}
	return rows
}

// row renders a selectable list row: a bar marker followed by the label,
// padded to the full width so the selection highlight spans the line.
// unselected overrides the style of rows that are not under the cursor.
func (m *Model) row(label string, selected bool, unselected *lipgloss.Style) string {
	marker, text := styles.ItemIndicator, styles.Item
	if unselected != nil {
		text = unselected
	}
	if selected {
		marker, text = styles.SelectedItemIndicator, styles.SelectedItem
	}
	label = " " + label
	if m.width > 0 {
		label = truncateText(label, m.width-1)
		if pad := m.width - 1 - ansi.StringWidth(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
	}
	return render(marker, "▌") + render(text, label)
}

// styled truncates plain text to the view width before styling it.
func (m *Model) styled(style *lipgloss.Style, text string) string {
	return render(style, truncateText(text, m.width))
}

// fit truncates text that may already carry ANSI sequences.
func (m *Model) fit(text string) string {
	return truncateText(text, m.width)
}

// clipRows keeps at most height rows, marking the cut with an ellipsis.
func (m *Model) clipRows(rows []string, height int) []string {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	return append(rows[:height-1:height-1], m.fit("…"))
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func joinRows(rows ...string) string {
	return strings.Join(rows, "\n")
}

// menuHeader is the breadcrumb. The category appears as soon as it is
// selected, before its items arrive.
func (m *Model) menuHeader(state navigation.State) string {
	if state.AtRoot() {
		return defaultRootTitle
	}
	return defaultRootTitle + menuHeaderSeparator + m.categoryTitle(state.SelectedCategory)
}

func (m *Model) toolbar(state navigation.State) string {
	env := state.SelectedConfig
	if styles.ActiveEnv != nil {
		env = styles.ActiveEnv.Render(env)
	}
	label := "env "
	if styles.Toolbar != nil {
		label = styles.Toolbar.Render(label)
	}
	return label + env + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.filter.Width = filterInputWidth(m.width)
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	state := m.ctrl.State()
	used := 2 // bottom bar: error/status + filter prompt
	used += 2 // header + toolbar
	if state.ShowSettings {
		used += len(m.settingsLines())
	}
	if state.Notice != "" {
		used += 2
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 1 + len(m.keys.FullHelp()[0])
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// truncateText shortens text to width cells, keeping ANSI sequences intact.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ansi.Truncate(text, 1, "")
	}
	return ansi.Truncate(text, width, "…")
}
