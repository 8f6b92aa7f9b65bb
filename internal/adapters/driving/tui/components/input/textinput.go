// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// charLimit allows a pasted batch of a few hundred ids.
const charLimit = 16384

// SearchInput wraps a bubbles textinput with a search mode badge.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      domain.SearchMode
	width     int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = charLimit
	ti.Width = 50

	in := &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
	in.SetMode(domain.SearchModeFullText)
	return in
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the mode badge and the input.
func (s *SearchInput) View() string {
	badge := s.styles.Mode.Render(s.mode.String())
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", input)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Mode returns the displayed search mode.
func (s *SearchInput) Mode() domain.SearchMode {
	return s.mode
}

// SetMode updates the badge and placeholder for mode.
func (s *SearchInput) SetMode(mode domain.SearchMode) {
	s.mode = mode
	s.textinput.Placeholder = placeholder(mode)
}

func placeholder(mode domain.SearchMode) string {
	switch mode {
	case domain.SearchModeIDPrefix:
		return "Segment id starts with..."
	case domain.SearchModeIDPartial:
		return "Segment id contains..."
	case domain.SearchModeBatchID:
		return "Paste segment ids, comma separated..."
	default:
		return "Search text, ids and keys..."
	}
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for badge, border and padding
	inputWidth := width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
