package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

var (
	searchMode  string
	searchBatch string
	searchPage  int
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <file> [query]",
	Short: "Search a translation memory",
	Long: `Loads the file and prints one page of matching units in document order.

Without a query every unit matches. For batch_id, pass the identifiers as
the query or with --batch; use --batch - to read them from stdin.`,
	Example: `  sercha-tmx search memory.tmx "hello world"
  sercha-tmx search memory.tmx SEG-00 --mode id_prefix
  sercha-tmx search memory.tmx -m batch_id -b "SEG-001,SEG-007"
  cut -f1 ids.tsv | sercha-tmx search memory.tmx -m batch_id -b -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", string(domain.SearchModeFullText),
		"search mode: full_text, id_prefix, id_partial or batch_id")
	searchCmd.Flags().StringVarP(&searchBatch, "batch", "b", "",
		"identifiers for batch_id, comma or newline separated (- reads stdin)")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page number")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "units per page (0 uses the configured page size)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseSearchMode(searchMode)
	if err != nil {
		return err
	}

	req := domain.SearchRequest{
		Mode:     mode,
		Page:     searchPage,
		PageSize: searchLimit,
	}
	if len(args) > 1 {
		req.Query = args[1]
	}
	req.Batch = searchBatch
	if searchBatch == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read batch from stdin: %w", err)
		}
		req.Batch = string(data)
	}

	return withDocument(cmd, args[0], func(ctx context.Context, rt *runtime, _ *domain.DocumentSummary) error {
		page, err := rt.search.Search(ctx, req)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if searchJSON {
			return outputSearchJSON(cmd, page)
		}
		outputSearchTable(cmd, page, mode, rt.settings.KeyProperty)
		return nil
	})
}

func outputSearchJSON(cmd *cobra.Command, page *domain.SearchPage) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, page *domain.SearchPage, mode domain.SearchMode, keyProperty string) {
	if page.Total == 0 {
		cmd.Println("No results found.")
		return
	}

	if page.Filtered {
		cmd.Printf("%d matches (%s), page %d of %d\n", page.Total, mode, page.Page, page.PageCount)
	} else {
		cmd.Printf("All %d units, page %d of %d\n", page.Total, page.Page, page.PageCount)
	}
	if page.Truncated {
		cmd.PrintErrln("Results capped; refine the query to see every match.")
	}
	cmd.Println()

	if len(page.Hits) == 0 {
		cmd.Println("Page out of range.")
		return
	}

	for i := range page.Hits {
		hit := &page.Hits[i]
		label := hit.Unit.ID
		if key := hit.Unit.Properties[keyProperty]; key != "" && key != label {
			label += "  [" + key + "]"
		}
		cmd.Printf("  #%-5d %s\n", hit.Position, label)
		for _, v := range hit.Unit.Variants {
			cmd.Printf("         %-7s %s\n", v.Language, strings.ReplaceAll(v.Text, "\n", " "))
		}
	}
}
