// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateLoading   State = "loading"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays search status and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	mode      domain.SearchMode
	total     int
	filtered  bool
	truncated bool
	page      int
	pageCount int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		mode:   domain.SearchModeFullText,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders state, mode and paging information.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading document...")
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady, StateResults:
	}

	parts := []string{s.styles.Muted.Render(s.mode.Description())}
	switch {
	case s.state == StateReady && s.total == 0:
		parts = append(parts, s.styles.Muted.Render("Ready"))
	case !s.filtered:
		parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("all %d units", s.total)))
	default:
		parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("%d matches", s.total)))
	}
	if s.pageCount > 1 {
		parts = append(parts, s.styles.Muted.Render(fmt.Sprintf("page %d/%d", s.page, s.pageCount)))
	}
	if s.truncated {
		parts = append(parts, s.styles.Warning.Render("results capped, refine query"))
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.total > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetPage records the paging facts of the latest result page.
func (s *Bar) SetPage(page *domain.SearchPage) {
	if page == nil {
		s.total, s.filtered, s.truncated, s.page, s.pageCount = 0, false, false, 0, 0
		return
	}
	s.total = page.Total
	s.filtered = page.Filtered
	s.truncated = page.Truncated
	s.page = page.Page
	s.pageCount = page.PageCount
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetMode sets the displayed search mode.
func (s *Bar) SetMode(mode domain.SearchMode) {
	s.mode = mode
}

// Total returns the result count of the latest page.
func (s *Bar) Total() int {
	return s.total
}

// Truncated reports whether the latest result was capped.
func (s *Bar) Truncated() bool {
	return s.truncated
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.SetPage(nil)
}
