package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

func decodePage(t *testing.T, out string) domain.SearchPage {
	t.Helper()
	var page domain.SearchPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	return page
}

func positions(page domain.SearchPage) []int {
	out := make([]int, 0, len(page.Hits))
	for _, h := range page.Hits {
		out = append(out, h.Position)
	}
	return out
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search <file> [query]", searchCmd.Use)
	assert.Equal(t, "Search a translation memory", searchCmd.Short)
}

func TestSearchCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"mode", "m", "full_text"},
		{"batch", "b", ""},
		{"page", "p", "1"},
		{"limit", "n", "0"},
		{"json", "", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := searchCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestSearchCmd_RequiresFile(t *testing.T) {
	res := execute(t, "", "search")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts between 1 and 2 arg(s)")
}

func TestSearchCmd_FullText(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", sampleFile, "HALLO")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1 matches (full_text), page 1 of 1")
	assert.Contains(t, res.stdout, "greeting  [SEG-001]")
	assert.Contains(t, res.stdout, "Hallo Welt")
}

func TestSearchCmd_GeneratedID(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", sampleFile, "bonjour")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "generated-1")
}

func TestSearchCmd_NoQueryListsEverything(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", sampleFile)

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "All 3 units, page 1 of 1")
}

func TestSearchCmd_NoResults(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", sampleFile, "zzz")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No results found.")
}

func TestSearchCmd_Modes(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		want  []int
		total int
	}{
		{"full text", []string{"good"}, []int{1, 2}, 2},
		{"id prefix", []string{"seg", "--mode", "id_prefix"}, []int{0, 1}, 2},
		{"id prefix hyphenated mode", []string{"abc", "-m", "id-prefix"}, []int{2}, 1},
		{"id partial", []string{"-m", "id_partial", "--", "-1"}, []int{2}, 1},
		{"batch as query", []string{"abc-100, seg-002", "-m", "batch_id"}, []int{1, 2}, 2},
		{"batch flag", []string{"-m", "batch_id", "-b", "SEG-001\nSEG-001"}, []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, nil)
			args := append([]string{"search", "--json", sampleFile}, tt.args...)

			res := execute(t, "", args...)

			require.NoError(t, res.err)
			page := decodePage(t, res.stdout)
			assert.True(t, page.Filtered)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.want, positions(page))
		})
	}
}

func TestSearchCmd_BatchFromStdin(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "ABC-100\nSEG-001\n", "search", "--json", "-m", "batch_id", "-b", "-", sampleFile)

	require.NoError(t, res.err)
	assert.Equal(t, []int{0, 2}, positions(decodePage(t, res.stdout)))
}

func TestSearchCmd_Paging(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", "--json", "--limit", "1", "--page", "2", sampleFile)

	require.NoError(t, res.err)
	page := decodePage(t, res.stdout)
	assert.False(t, page.Filtered)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, []int{1}, positions(page))
}

func TestSearchCmd_PageOutOfRange(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", "--page", "9", sampleFile)

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Page out of range.")
}

func TestSearchCmd_TruncationWarning(t *testing.T) {
	useConfig(t, map[string]any{"search.result_cap": 1})

	res := execute(t, "", "search", sampleFile, "good")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1 matches")
	assert.Contains(t, res.stderr, "Results capped")
}

func TestSearchCmd_KeyPropertyFromConfig(t *testing.T) {
	useConfig(t, map[string]any{"search.key_property": "x-other"})

	res := execute(t, "", "search", "--json", "-m", "id_prefix", sampleFile, "seg")

	// No unit carries x-other, so no keys match.
	require.NoError(t, res.err)
	assert.Equal(t, 0, decodePage(t, res.stdout).Total)
}

func TestSearchCmd_InvalidMode(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "search", "-m", "fuzzy", sampleFile, "x")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, domain.ErrInvalidInput)
}
