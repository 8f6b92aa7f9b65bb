// Package styles provides colour themes and styling for the TUI.
// Colours follow the Catppuccin Mocha palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	Accent  lipgloss.Color // titles, selection, source text
	Info    lipgloss.Color // mode badge, unit keys
	Surface lipgloss.Color // status bar background, badge text
	Text    lipgloss.Color
	Subtle  lipgloss.Color
	Warn    lipgloss.Color // truncation notice, language tags
	Danger  lipgloss.Color
	Border  lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#CBA6F7"), // Mauve
		Info:    lipgloss.Color("#89DCEB"), // Sky
		Surface: lipgloss.Color("#181825"), // Mantle
		Text:    lipgloss.Color("#CDD6F4"),
		Subtle:  lipgloss.Color("#6C7086"), // Overlay0
		Warn:    lipgloss.Color("#F9E2AF"), // Yellow
		Danger:  lipgloss.Color("#F38BA8"), // Red
		Border:  lipgloss.Color("#45475A"), // Surface1
	}
}

// Styles holds the lipgloss styles used across views and components.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	// Source renders the source-language variant in the detail pane.
	Source lipgloss.Style

	// InputField frames the query input.
	InputField lipgloss.Style

	// StatusBar is the bottom line.
	StatusBar lipgloss.Style

	// Border frames the detail pane.
	Border lipgloss.Style

	// Mode is the search mode badge beside the input.
	Mode lipgloss.Style

	// Key renders unit identifiers in the result list.
	Key lipgloss.Style

	// Language is a fixed-width column of variant language tags.
	Language lipgloss.Style
}

// languageColumn fits tags such as "pt-BR" plus padding.
const languageColumn = 7

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Info).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Subtle),
		Selected: fg(theme.Surface).Background(theme.Accent).Bold(true),
		Error:    fg(theme.Danger),
		Warning:  fg(theme.Warn),
		Source:   fg(theme.Accent),

		InputField: framed.Padding(0, 1),
		StatusBar:  fg(theme.Subtle).Background(theme.Surface).Padding(0, 1),
		Border:     framed,

		Mode:     fg(theme.Surface).Background(theme.Info).Bold(true).Padding(0, 1),
		Key:      fg(theme.Info),
		Language: fg(theme.Warn).Width(languageColumn),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
