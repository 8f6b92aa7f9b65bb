package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// searchView is the only screen.
	searchView *search.View

	// path is the file being browsed.
	path string

	// summary describes the loaded document.
	summary *domain.DocumentSummary

	// err holds the last load error.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option configures an App.
type Option func(*App)

// WithSettings applies presentation settings to the search view.
func WithSettings(settings domain.Settings) Option {
	return func(a *App) {
		a.searchView.WithSettings(settings)
	}
}

// WithDocument sets the path and summary of an already loaded document.
func WithDocument(path string, summary *domain.DocumentSummary) Option {
	return func(a *App) {
		a.path = path
		a.summary = summary
	}
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts ...Option) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSearchService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		searchView: search.NewView(s, km, ports.Search),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model. It shows the whole document straight away.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sercha-tmx " + filepath.Base(a.path)),
		a.searchView.Init(),
		a.searchView.Refresh(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.DocumentChanged:
		return a, a.reload(msg.Path)

	case messages.DocumentLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.summary = nil
			a.searchView, cmd = a.searchView.Update(messages.ErrorOccurred{Err: msg.Err})
			return a, cmd
		}
		a.err = nil
		a.summary = msg.Summary
		return a, a.searchView.Refresh()

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// reload loads path again off the update loop.
func (a *App) reload(path string) tea.Cmd {
	if path == "" {
		path = a.path
	}
	a.path = path
	svc, ctx := a.ports.Document, a.ctx
	return func() tea.Msg {
		summary, err := svc.Load(ctx, path)
		return messages.DocumentLoaded{Summary: summary, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.header(), "", a.searchView.View())
}

// header shows the file name and document facts.
func (a *App) header() string {
	title := a.styles.Title.Render("sercha-tmx")
	if a.path != "" {
		title += " " + a.styles.Subtitle.Render(filepath.Base(a.path))
	}
	if a.summary == nil {
		if a.err != nil {
			return title + "  " + a.styles.Error.Render("no document loaded")
		}
		return title
	}

	facts := []string{
		fmt.Sprintf("%d units", a.summary.UnitCount),
		"source " + a.summary.SourceLanguage,
	}
	if a.summary.SkippedCount > 0 {
		facts = append(facts, fmt.Sprintf("%d skipped", a.summary.SkippedCount))
	}
	if a.summary.CreationTool != "" {
		facts = append(facts, strings.TrimSpace(a.summary.CreationTool+" "+a.summary.CreationToolVersion))
	}
	return title + "  " + a.styles.Muted.Render(strings.Join(facts, " · "))
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// Program builds the Bubbletea program so callers can inject messages
// such as DocumentChanged from a file watcher.
func (a *App) Program() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Summary returns the loaded document's summary, or nil.
func (a *App) Summary() *domain.DocumentSummary {
	return a.summary
}

// Path returns the file being browsed.
func (a *App) Path() string {
	return a.path
}

// Err returns the last load error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Header takes two lines.
	a.searchView.SetDimensions(width, max(height-2, 1))
}
