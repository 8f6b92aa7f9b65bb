// Package cli provides the command-line interface for sercha-tmx.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	verbose   bool
	configDir string
)

// newConfigStore opens the configuration read by every command. Without an
// explicit directory, an unusable home directory falls back to defaults.
var newConfigStore = func(dir string) (driven.ConfigStore, error) {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		if dir != "" {
			return nil, err
		}
		logger.Warn("No usable config directory (%v), using defaults", err)
		return memory.NewConfigStore(nil), nil
	}
	return store, nil
}

var rootCmd = &cobra.Command{
	Use:   "sercha-tmx",
	Short: "Search TMX translation memories",
	Long: `sercha-tmx loads a TMX translation memory and searches its units by
text or by segment identifier.

Search modes:
  full_text    substring of ids, keys and every variant's text
  id_prefix    segment key starts with the query
  id_partial   segment key contains the query
  batch_id     segment key is one of a comma or newline separated list

Matching ignores case. An empty query matches every unit.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/"+file.DirName+")")
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
// Command output goes to stdout; logs and errors go to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}
