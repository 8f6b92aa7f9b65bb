// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// linesPerHit is the rendered height of one hit: id line plus source line.
const linesPerHit = 2

// ResultList displays one page of units in a navigable list.
type ResultList struct {
	hits        []domain.UnitHit
	selected    int
	keyProperty string
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles:      s,
		keyProperty: domain.KeyPropertyDefault,
		width:       80,
		height:      10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible part of the page.
func (r *ResultList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No matching units")
	}

	visible := r.height / linesPerHit
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.hits))

	lines := make([]string, 0, (end-start)*linesPerHit)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderHit(i, &r.hits[i]))
	}
	return strings.Join(lines, "\n")
}

// renderHit formats one unit: position, id and first target on the first
// line, source text below.
func (r *ResultList) renderHit(index int, hit *domain.UnitHit) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	unit := &hit.Unit
	head := fmt.Sprintf("%s#%-6d %s", indicator, hit.Position, unit.ID)
	if key := unit.Properties[r.keyProperty]; key != "" && key != unit.ID {
		head += "  " + key
	}
	head = Truncate(head, r.width)

	source := ""
	if v, ok := unit.SourceVariant(); ok {
		source = v.Text
	}
	target := ""
	if targets := unit.TargetVariants(); len(targets) > 0 {
		target = targets[0].Text
	}
	body := "    " + source
	if target != "" {
		body += "  →  " + target
	}
	body = Truncate(body, r.width)

	if index == r.selected {
		return r.styles.Selected.Render(head) + "\n" + r.styles.Normal.Render(body)
	}
	return r.styles.Key.Render(head) + "\n" + r.styles.Muted.Render(body)
}

// Truncate shortens s to width display cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width < 4 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// SetKeyProperty sets the property shown beside the unit id.
func (r *ResultList) SetKeyProperty(name string) {
	if name != "" {
		r.keyProperty = name
	}
}

// SetHits replaces the list contents and resets the selection.
func (r *ResultList) SetHits(hits []domain.UnitHit) {
	r.hits = hits
	r.selected = 0
}

// Hits returns the current hits.
func (r *ResultList) Hits() []domain.UnitHit {
	return r.hits
}

// Selected returns the index of the selected hit.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.hits) {
		r.selected = index
	}
}

// SelectedHit returns the currently selected hit, or nil if none.
func (r *ResultList) SelectedHit() *domain.UnitHit {
	if len(r.hits) == 0 || r.selected < 0 || r.selected >= len(r.hits) {
		return nil
	}
	return &r.hits[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.hits)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of hits.
func (r *ResultList) Count() int {
	return len(r.hits)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.hits) == 0
}
