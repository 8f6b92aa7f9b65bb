package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show a translation memory's header and unit counts",
	Long: `Loads the file and prints its header facts, the number of units loaded,
the number of malformed units skipped and the languages present.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(infoCmd)
}

// documentInfo is the JSON shape of the info command.
type documentInfo struct {
	domain.DocumentSummary
	Path      string         `json:"path"`
	Languages map[string]int `json:"languages"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	return withDocument(cmd, path, func(ctx context.Context, rt *runtime, summary *domain.DocumentSummary) error {
		doc, err := rt.document.Current(ctx)
		if err != nil {
			return err
		}
		info := documentInfo{
			DocumentSummary: *summary,
			Path:            path,
			Languages:       countLanguages(doc.Units),
		}

		if infoJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal summary: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}

		printInfo(cmd, &info)
		return nil
	})
}

// countLanguages counts variants per language tag.
func countLanguages(units []domain.TranslationUnit) map[string]int {
	counts := make(map[string]int)
	for i := range units {
		for _, v := range units[i].Variants {
			counts[v.Language]++
		}
	}
	return counts
}

func printInfo(cmd *cobra.Command, info *documentInfo) {
	rows := []struct{ label, value string }{
		{"File", info.Path},
		{"Tool", strings.TrimSpace(info.CreationTool + " " + info.CreationToolVersion)},
		{"TMX version", info.Version},
		{"Source language", info.SourceLanguage},
		{"Admin language", info.AdminLanguage},
		{"Segment type", info.SegmentType},
		{"Data type", info.DataType},
		{"Original format", info.OriginalFormat},
		{"Created", info.CreationDate},
	}
	for _, r := range rows {
		if r.value != "" {
			cmd.Printf("%-16s %s\n", r.label+":", r.value)
		}
	}

	cmd.Printf("%-16s %d\n", "Units:", info.UnitCount)
	if info.SkippedCount > 0 {
		cmd.Printf("%-16s %d\n", "Skipped:", info.SkippedCount)
	}

	if len(info.Languages) > 0 {
		langs := make([]string, 0, len(info.Languages))
		for _, lang := range slices.Sorted(maps.Keys(info.Languages)) {
			langs = append(langs, fmt.Sprintf("%s (%d)", lang, info.Languages[lang]))
		}
		cmd.Printf("%-16s %s\n", "Languages:", strings.Join(langs, ", "))
	}
}
