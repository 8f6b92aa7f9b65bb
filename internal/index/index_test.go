package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// scenarioUnits mirrors a two-unit document with header srclang en-US.
func scenarioUnits() []domain.TranslationUnit {
	return []domain.TranslationUnit{
		{
			ID:             "u1",
			SourceLanguage: "en-US",
			Properties:     map[string]string{"x-segment-id": "ABC123"},
			Variants: []domain.Variant{
				{Language: "en-US", Text: "Hello"},
				{Language: "fr-FR", Text: "Bonjour"},
			},
		},
		{
			ID:             "generated-1",
			SourceLanguage: "en-US",
			Variants: []domain.Variant{
				{Language: "en-US", Text: "Bye"},
				{Language: "fr-FR", Text: "Au revoir"},
			},
		},
	}
}

// keyedUnits returns one unit per key, in order, with the key as segment id.
func keyedUnits(keys ...string) []domain.TranslationUnit {
	units := make([]domain.TranslationUnit, len(keys))
	for i, k := range keys {
		units[i] = domain.TranslationUnit{
			ID:             fmt.Sprintf("tu-%d", i),
			SourceLanguage: "en",
			Variants:       []domain.Variant{{Language: "en", Text: fmt.Sprintf("text %d", i)}},
		}
		if k != "" {
			units[i].Properties = map[string]string{domain.KeyPropertyDefault: k}
		}
	}
	return units
}

func TestBuild_Entries(t *testing.T) {
	ix := Build(scenarioUnits())

	require.Equal(t, 2, ix.Len())
	assert.Equal(t, domain.KeyPropertyDefault, ix.KeyProperty())
	assert.Equal(t, entry{
		position:       0,
		searchableText: "u1 hello bonjour abc123",
		normalizedKey:  "abc123",
	}, ix.entries[0])
	assert.Equal(t, entry{
		position:       1,
		searchableText: "generated-1 bye au revoir",
		normalizedKey:  "",
	}, ix.entries[1])
}

func TestBuild_SourceVariantFirst(t *testing.T) {
	units := []domain.TranslationUnit{{
		ID:             "x",
		SourceLanguage: "fr-FR",
		Variants: []domain.Variant{
			{Language: "en-US", Text: "Hello"},
			{Language: "FR-fr", Text: "Bonjour"},
		},
	}}

	ix := Build(units)

	assert.Equal(t, "x bonjour hello", ix.entries[0].searchableText)
}

func TestBuild_KeyIsTrimmedAndFolded(t *testing.T) {
	ix := Build(keyedUnits("  MiXeD-Key \t"))

	assert.Equal(t, "mixed-key", ix.entries[0].normalizedKey)
}

func TestBuild_WithKeyProperty(t *testing.T) {
	units := []domain.TranslationUnit{{
		ID:         "a",
		Variants:   []domain.Variant{{Language: "en", Text: "t"}},
		Properties: map[string]string{"x-segment-id": "SEG", "x-ref": "REF-9"},
	}}

	ix := Build(units, WithKeyProperty("x-ref"))

	assert.Equal(t, "x-ref", ix.KeyProperty())
	assert.Equal(t, "ref-9", ix.entries[0].normalizedKey)
}

func TestBuild_WithEmptyKeyPropertyKeepsDefault(t *testing.T) {
	ix := Build(nil, WithKeyProperty(""))
	assert.Equal(t, domain.KeyPropertyDefault, ix.KeyProperty())
}

func TestBuild_Empty(t *testing.T) {
	ix := Build(nil)

	assert.Equal(t, 0, ix.Len())
	resp := ix.Query(domain.SearchQuery{Mode: domain.SearchModeFullText, Text: "x"}, 0)
	assert.False(t, resp.Unfiltered)
	assert.Empty(t, resp.Positions)
	assert.False(t, resp.Truncated)
}

func TestBuild_Idempotent(t *testing.T) {
	units := scenarioUnits()

	a := Build(units)
	b := Build(units)

	assert.Equal(t, a.entries, b.entries)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	units := scenarioUnits()
	before := scenarioUnits()

	Build(units)

	assert.Equal(t, before, units)
}
