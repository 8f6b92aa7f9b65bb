package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/watcher"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui requires an interactive terminal")

var tuiWatch bool

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui <file>",
	Short: "Browse a translation memory interactively",
	Long: `Launch the interactive terminal user interface.

Results update as you type. With --watch the file is reloaded whenever it
changes on disk and the current query is re-run.

Controls:
  tab / shift+tab   Cycle search mode
  ↑/↓               Move selection
  pgup/pgdn         Previous / next page
  enter             Show unit details
  esc               Close details / clear query
  ctrl+c            Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload the file when it changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	if !isTerminal() {
		return ErrNotTerminal
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}

	return withDocument(cmd, path, func(ctx context.Context, rt *runtime, summary *domain.DocumentSummary) error {
		app, err := tui.NewApp(
			tui.NewPorts(rt.search, rt.document),
			tui.WithSettings(rt.settings),
			tui.WithDocument(path, summary),
		)
		if err != nil {
			return fmt.Errorf("failed to create TUI: %w", err)
		}
		app.WithContext(ctx)
		p := app.Program()

		if tuiWatch {
			w, err := watcher.New(path, 0, func(changed string) {
				p.Send(messages.DocumentChanged{Path: changed})
			})
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()
		}

		// Log lines would tear the alternate screen.
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(cmd.ErrOrStderr())

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}
