package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/watcher"
	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

var mcpWatch bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve a translation memory over MCP",
	Long: `Start a Model Context Protocol server over stdio for AI assistant
integration. The file is loaded once; with --watch it is reloaded when it
changes on disk.

Tools: search, document_summary, get_unit.
Resources: tmx://summary, tmx://units/{position}.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "tmx": {
        "command": "/path/to/sercha-tmx",
        "args": ["mcp", "serve", "/path/to/memory.tmx"]
      }
    }
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().BoolVarP(&mcpWatch, "watch", "w", false, "reload the file when it changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	path := args[0]
	return withDocument(cmd, path, func(ctx context.Context, rt *runtime, _ *domain.DocumentSummary) error {
		server, err := mcp.NewServer(&mcp.Ports{
			Search:   rt.search,
			Document: rt.document,
		})
		if err != nil {
			return err
		}

		if mcpWatch {
			w, err := watcher.New(path, 0, func(changed string) {
				if _, err := rt.document.Load(ctx, changed); err != nil {
					logger.Error("reload %s: %v", changed, err)
				}
			})
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			defer func() { _ = w.Stop() }()
		}

		return server.Run(ctx)
	})
}
