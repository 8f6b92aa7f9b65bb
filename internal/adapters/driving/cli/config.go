package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tmx/internal/core/services"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show and change the settings stored in the TOML config file.

Keys:
  document.fallback_source_language   source language when the header has none
  search.key_property                 unit property holding the segment key
  search.result_cap                   maximum matches per query (>= 1)
  search.page_size                    units per result page (>= 1)
  tui.debounce_ms                     TUI typing delay, 0 to 5000`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, err := services.LookupSetting(args[0])
		if err != nil {
			return err
		}
		store, err := newConfigStore(configDir)
		if err != nil {
			return err
		}
		cmd.Println(setting.Value(services.LoadSettings(store)))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Validate and save one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newConfigStore(configDir)
		if err != nil {
			return err
		}
		value, err := services.SaveSetting(store, args[0], args[1])
		if err != nil {
			return err
		}
		cmd.Printf("%s = %v\n", args[0], value)
		logger.Info("Saved to %s", store.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := newConfigStore(configDir)
	if err != nil {
		return err
	}
	settings := services.LoadSettings(store)

	cmd.Printf("Config file: %s\n\n", store.Path())
	for _, s := range services.SettingKeys() {
		cmd.Printf("%-36s %-14v %s\n", s.Key, s.Value(settings), s.Description)
	}
	return nil
}
