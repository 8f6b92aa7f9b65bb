package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/services"
)

func TestConfigShow_Defaults(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "config")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Config file: :memory:")
	for _, s := range services.SettingKeys() {
		assert.Contains(t, res.stdout, s.Key)
	}
	assert.Regexp(t, `search\.page_size\s+25\s`, res.stdout)
	assert.Regexp(t, `tui\.debounce_ms\s+300\s`, res.stdout)
}

func TestConfigGet(t *testing.T) {
	useConfig(t, map[string]any{services.KeyPageSize: 40})

	res := execute(t, "", "config", "get", services.KeyPageSize)
	require.NoError(t, res.err)
	assert.Equal(t, "40\n", res.stdout)

	res = execute(t, "", "config", "get", services.KeyKeyProperty)
	require.NoError(t, res.err)
	assert.Equal(t, domain.KeyPropertyDefault+"\n", res.stdout)
}

func TestConfigGet_UnknownKey(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "config", "get", "search.colour")

	assert.ErrorIs(t, res.err, domain.ErrInvalidInput)
}

func TestConfigSet_WritesTOMLTables(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, "", "--config-dir", dir, "config", "set", services.KeyPageSize, "50")
	require.NoError(t, res.err)
	assert.Equal(t, "search.page_size = 50\n", res.stdout)

	res = execute(t, "", "--config-dir", dir, "config", "set", services.KeyFallbackSourceLanguage, "de-DE")
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(dir, file.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "page_size = 50")
	assert.Contains(t, string(data), "[document]")
	assert.Regexp(t, `fallback_source_language = ['"]de-DE['"]`, string(data))

	res = execute(t, "", "--config-dir", dir, "config", "get", services.KeyPageSize)
	require.NoError(t, res.err)
	assert.Equal(t, "50\n", res.stdout)
}

func TestConfigSet_SettingsReachSearch(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, "", "--config-dir", dir, "config", "set", services.KeyPageSize, "1")
	require.NoError(t, res.err)

	res = execute(t, "", "--config-dir", dir, "search", sampleFile)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "page 1 of 3")
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, "", "--config-dir", dir, "config", "set", services.KeyDebounceMillis, "9000")

	assert.ErrorIs(t, res.err, domain.ErrInvalidInput)
	_, err := os.Stat(filepath.Join(dir, file.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigSet_RequiresKeyAndValue(t *testing.T) {
	useConfig(t, nil)

	res := execute(t, "", "config", "set", services.KeyPageSize)

	assert.Error(t, res.err)
}
