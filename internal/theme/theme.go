package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI. A nil
// style renders text unchanged.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	CategoryItem          *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Error                 *lipgloss.Style
	ErrorTitle            *lipgloss.Style
	Info                  *lipgloss.Style
	Notice                *lipgloss.Style
	Header                *lipgloss.Style
	Toolbar               *lipgloss.Style
	ActiveEnv             *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	SettingsTitle         *lipgloss.Style
	SettingsRow           *lipgloss.Style
}

// ANSI 256 palette.
const (
	accent    = lipgloss.Color("33")
	highlight = lipgloss.Color("238")
	text      = lipgloss.Color("249")
	bright    = lipgloss.Color("255")
	muted     = lipgloss.Color("241")
	heading   = lipgloss.Color("245")
	category  = lipgloss.Color("75")
	active    = lipgloss.Color("34")
	warning   = lipgloss.Color("214")
	failure   = lipgloss.Color("196")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var defaultStyles = Styles{
	Loading:               ptr(fg(accent).Italic(true)),
	Item:                  ptr(fg(text)),
	CategoryItem:          ptr(fg(category)),
	ItemIndicator:         ptr(fg(highlight)),
	SelectedItemIndicator: ptr(fg(accent).Background(highlight)),
	SelectedItem:          ptr(fg(bright).Background(highlight).Bold(true)),
	Error:                 ptr(fg(failure).Bold(true)),
	ErrorTitle:            ptr(fg(failure).Bold(true).Underline(true)),
	Info:                  ptr(fg(text)),
	Notice:                ptr(fg(warning)),
	Header:                ptr(fg(heading).Bold(true)),
	Toolbar:               ptr(fg(muted)),
	ActiveEnv:             ptr(fg(active).Bold(true)),
	Footer:                ptr(fg(text)),
	Filter:                ptr(fg(text)),
	FilterPrompt:          ptr(fg(active).Bold(true)),
	FilterPlaceholder:     ptr(fg(muted)),
	Cursor:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent)),
	SettingsTitle:         ptr(fg(heading).Bold(true)),
	SettingsRow:           ptr(fg(lipgloss.Color("250"))),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
