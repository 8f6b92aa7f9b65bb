// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driving"
)

// View is the search screen: query input, one page of units, an optional
// detail pane and the status bar.
//
// Every search the view issues carries a sequence number. Edits bump the
// number and arm a debounce tick; ticks and results for an older number are
// dropped, so only the latest query is ever rendered.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar
	pager     paginator.Model

	searchService driving.SearchService
	ctx           context.Context

	mode     domain.SearchMode
	seq      uint64
	debounce time.Duration
	page     int
	pageSize int
	result   *domain.SearchPage

	width      int
	height     int
	ready      bool
	err        error
	showDetail bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.ArabicFormat = "page %d of %d"

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		pager:         pager,
		searchService: searchService,
		ctx:           context.Background(),
		mode:          domain.SearchModeFullText,
		debounce:      time.Duration(domain.DefaultDebounceMillis) * time.Millisecond,
		page:          1,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithSettings applies the presentation settings.
func (v *View) WithSettings(settings domain.Settings) *View {
	v.SetDebounce(time.Duration(settings.DebounceMillis) * time.Millisecond)
	v.pageSize = settings.PageSize
	v.list.SetKeyProperty(settings.KeyProperty)
	return v
}

// SetDebounce sets how long input must be idle before a search runs.
// Zero searches on every edit.
func (v *View) SetDebounce(d time.Duration) {
	if d < 0 {
		d = 0
	}
	v.debounce = d
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchTick:
		if msg.Seq != v.seq {
			return v, nil
		}
		return v, v.performSearch()

	case messages.SearchCompleted:
		if msg.Seq != v.seq {
			return v, nil
		}
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input. Printable keys edit the query;
// bindings use non-printing keys only.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Clear):
		if v.showDetail {
			v.showDetail = false
			return v, nil
		}
		if v.input.Value() == "" {
			return v, nil
		}
		v.input.Reset()
		v.page = 1
		return v, v.searchNow()

	case key.Matches(msg, v.keymap.NextMode):
		return v, v.cycleMode(1)

	case key.Matches(msg, v.keymap.PrevMode):
		return v, v.cycleMode(-1)

	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.NextPage):
		if v.result == nil || v.page >= v.result.PageCount {
			return v, nil
		}
		v.page++
		return v, v.searchNow()

	case key.Matches(msg, v.keymap.PrevPage):
		if v.page <= 1 {
			return v, nil
		}
		v.page--
		return v, v.searchNow()

	case key.Matches(msg, v.keymap.Detail):
		if v.list.SelectedHit() != nil {
			v.showDetail = !v.showDetail
		}
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}
	v.page = 1
	return v, tea.Batch(cmd, v.scheduleSearch())
}

// cycleMode moves to the next or previous mode and searches immediately.
func (v *View) cycleMode(step int) tea.Cmd {
	modes := domain.AllSearchModes()
	i := slices.Index(modes, v.mode)
	next := modes[(i+step+len(modes))%len(modes)]
	v.SetMode(next)
	v.page = 1
	return tea.Batch(
		v.searchNow(),
		func() tea.Msg { return messages.ModeChanged{Mode: next} },
	)
}

// scheduleSearch arms a debounce tick for the current query.
func (v *View) scheduleSearch() tea.Cmd {
	if v.debounce == 0 {
		return v.searchNow()
	}
	v.seq++
	seq := v.seq
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.SearchTick{Seq: seq}
	})
}

// searchNow supersedes any pending search and runs the current one.
func (v *View) searchNow() tea.Cmd {
	v.seq++
	return v.performSearch()
}

// performSearch runs the current request off the update loop. The request
// is captured here so later edits cannot alter it.
func (v *View) performSearch() tea.Cmd {
	if v.searchService == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
	}

	v.statusbar.SetState(status.StateSearching)
	svc, ctx, seq := v.searchService, v.ctx, v.seq
	req := domain.SearchRequest{
		Mode:     v.mode,
		Query:    v.input.Value(),
		Page:     v.page,
		PageSize: v.pageSize,
	}
	return func() tea.Msg {
		page, err := svc.Search(ctx, req)
		return messages.SearchCompleted{Seq: seq, Page: page, Err: err}
	}
}

// handleSearchCompleted renders a current result page.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.result = msg.Page
	v.showDetail = false
	v.list.SetHits(msg.Page.Hits)
	v.statusbar.SetMessage("")
	v.statusbar.SetPage(msg.Page)
	v.statusbar.SetState(status.StateResults)

	v.pager.TotalPages = max(msg.Page.PageCount, 1)
	v.pager.Page = max(msg.Page.Page-1, 0)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// Refresh re-runs the current query from the first page, used after the
// document is reloaded.
func (v *View) Refresh() tea.Cmd {
	v.page = 1
	return v.searchNow()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.showDetail {
		if hit := v.list.SelectedHit(); hit != nil {
			sections = append(sections, v.renderDetail(hit))
		}
	} else {
		sections = append(sections, v.list.View())
	}

	if v.result != nil && v.result.PageCount > 1 {
		sections = append(sections, "", v.styles.Muted.Render(v.pager.View()))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail shows every variant, property, metadata field and note of
// a unit.
func (v *View) renderDetail(hit *domain.UnitHit) string {
	unit := &hit.Unit
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("#%d  %s", hit.Position, unit.ID)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("source language " + unit.SourceLanguage))
	b.WriteString("\n\n")

	src := unit.SourceIndex()
	for i, variant := range unit.Variants {
		text := v.styles.Normal.Render(variant.Text)
		if i == src {
			text = v.styles.Source.Render(variant.Text)
		}
		b.WriteString(v.styles.Language.Render(variant.Language) + " " + text + "\n")
	}

	if len(unit.Properties) > 0 {
		b.WriteString("\n" + v.styles.Subtitle.Render("Properties") + "\n")
		for _, name := range slices.Sorted(maps.Keys(unit.Properties)) {
			b.WriteString(fmt.Sprintf("  %s = %s\n", name, unit.Properties[name]))
		}
	}

	meta := metadataLines(unit.Metadata)
	if len(meta) > 0 {
		b.WriteString("\n" + v.styles.Subtitle.Render("Metadata") + "\n")
		for _, line := range meta {
			b.WriteString("  " + line + "\n")
		}
	}

	if len(unit.Notes) > 0 {
		b.WriteString("\n" + v.styles.Subtitle.Render("Notes") + "\n")
		for _, note := range unit.Notes {
			b.WriteString("  " + note + "\n")
		}
	}

	return v.styles.Border.Padding(0, 1).Width(max(v.width-4, 20)).Render(strings.TrimRight(b.String(), "\n"))
}

func metadataLines(m domain.UnitMetadata) []string {
	fields := []struct{ name, value string }{
		{"created", m.CreationDate},
		{"created by", m.CreatedBy},
		{"changed", m.ChangeDate},
		{"changed by", m.ChangedBy},
		{"last used", m.LastUsageDate},
		{"usage count", m.UsageCount},
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != "" {
			lines = append(lines, fmt.Sprintf("%-11s %s", f.name, f.value))
		}
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	// Input (3), spacing, pager and status bar.
	v.list.SetDimensions(width, max(height-9, 2))
}

// SetMode sets the search mode without running a search.
func (v *View) SetMode(mode domain.SearchMode) {
	v.mode = mode
	v.input.SetMode(mode)
	v.statusbar.SetMode(mode)
}

// Mode returns the current search mode.
func (v *View) Mode() domain.SearchMode {
	return v.mode
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// Seq returns the sequence number of the latest search.
func (v *View) Seq() uint64 {
	return v.seq
}

// Page returns the requested page number.
func (v *View) Page() int {
	return v.page
}

// Result returns the latest rendered page, or nil.
func (v *View) Result() *domain.SearchPage {
	return v.result
}

// Hits returns the units on the rendered page.
func (v *View) Hits() []domain.UnitHit {
	return v.list.Hits()
}

// SelectedIndex returns the selected row on the page.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// ShowingDetail reports whether the detail pane is open.
func (v *View) ShowingDetail() bool {
	return v.showDetail
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset clears the query and results.
func (v *View) Reset() {
	v.input.Reset()
	v.list.SetHits(nil)
	v.statusbar.Clear()
	v.result = nil
	v.err = nil
	v.page = 1
	v.showDetail = false
}
