package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

func TestInfoCmd_RequiresFile(t *testing.T) {
	res := execute(t, "", "info")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts 1 arg(s)")
}

func TestInfoCmd_Text(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "info", sampleFile)

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "TestTool 2.1")
	assert.Regexp(t, `Source language:\s+en-US`, res.stdout)
	assert.Regexp(t, `Segment type:\s+sentence`, res.stdout)
	assert.Regexp(t, `Units:\s+3`, res.stdout)
	assert.Regexp(t, `Skipped:\s+1`, res.stdout)
	assert.Contains(t, res.stdout, "de-DE (2), en-US (3), fr-FR (1)")
}

func TestInfoCmd_JSON(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "info", "--json", sampleFile)
	require.NoError(t, res.err)

	var info documentInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, sampleFile, info.Path)
	assert.Equal(t, 3, info.UnitCount)
	assert.Equal(t, 1, info.SkippedCount)
	assert.Equal(t, "en-US", info.SourceLanguage)
	assert.Equal(t, "1.4", info.Version)
	assert.Equal(t, map[string]int{"en-US": 3, "de-DE": 2, "fr-FR": 1}, info.Languages)
}

func TestInfoCmd_FallbackSourceLanguageFromConfig(t *testing.T) {
	useConfig(t, map[string]any{"document.fallback_source_language": "fr-FR"})

	res := execute(t, "", "info", sampleFile)

	// The header declares srclang, so the fallback is unused.
	require.NoError(t, res.err)
	assert.Regexp(t, `Source language:\s+en-US`, res.stdout)
}

func TestInfoCmd_MissingFile(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "info", "testdata/does-not-exist.tmx")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "does-not-exist.tmx")
}

func TestInfoCmd_DecodeFailure(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "info", brokenFile)

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, domain.ErrDecodeFailure)
}

func TestCountLanguages(t *testing.T) {
	units := []domain.TranslationUnit{
		{Variants: []domain.Variant{{Language: "en"}, {Language: "de"}}},
		{Variants: []domain.Variant{{Language: "en"}}},
	}

	assert.Equal(t, map[string]int{"en": 2, "de": 1}, countLanguages(units))
	assert.Empty(t, countLanguages(nil))
}
