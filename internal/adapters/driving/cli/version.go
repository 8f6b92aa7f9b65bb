package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sercha-tmx version and MCP server version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sercha-tmx version %s (mcp server %s)\n", version, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
