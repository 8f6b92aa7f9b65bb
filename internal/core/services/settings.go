package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// Config keys for settings storage.
const (
	KeyFallbackSourceLanguage = "document.fallback_source_language"
	KeyKeyProperty            = "search.key_property"
	KeyResultCap              = "search.result_cap"
	KeyPageSize               = "search.page_size"
	KeyDebounceMillis         = "tui.debounce_ms"
)

// maxDebounceMillis bounds the debounce so a typo cannot freeze the UI.
const maxDebounceMillis = 5000

// Setting describes one configurable key.
type Setting struct {
	Key         string
	Description string

	// Integer settings accept values in [Min, Max]; Max <= 0 is unbounded.
	Integer  bool
	Min, Max int

	value func(domain.Settings) any
}

var settingTable = []Setting{
	{
		Key:         KeyFallbackSourceLanguage,
		Description: "source language when the header has no srclang",
		value:       func(s domain.Settings) any { return s.FallbackSourceLanguage },
	},
	{
		Key:         KeyKeyProperty,
		Description: "unit property holding the segment key",
		value:       func(s domain.Settings) any { return s.KeyProperty },
	},
	{
		Key:         KeyResultCap,
		Description: "maximum matches per query",
		Integer:     true, Min: 1,
		value: func(s domain.Settings) any { return s.ResultCap },
	},
	{
		Key:         KeyPageSize,
		Description: "units per result page",
		Integer:     true, Min: 1,
		value: func(s domain.Settings) any { return s.PageSize },
	},
	{
		Key:         KeyDebounceMillis,
		Description: "TUI typing delay before searching, in milliseconds",
		Integer:     true, Min: 0, Max: maxDebounceMillis,
		value: func(s domain.Settings) any { return s.DebounceMillis },
	},
}

// SettingKeys returns every configurable key in display order.
func SettingKeys() []Setting {
	return append([]Setting(nil), settingTable...)
}

// LookupSetting returns the setting named key.
func LookupSetting(key string) (Setting, error) {
	for _, s := range settingTable {
		if s.Key == key {
			return s, nil
		}
	}
	return Setting{}, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Value returns this setting's effective value in settings.
func (s Setting) Value(settings domain.Settings) any {
	return s.value(settings)
}

// Parse converts command-line text into the value stored for this setting.
func (s Setting) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if !s.Integer {
		if raw == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, s.Key)
		}
		return raw, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, s.Key, raw)
	}
	if !s.inRange(n) {
		return nil, fmt.Errorf("%w: %s must be %s, got %d", domain.ErrInvalidInput, s.Key, s.rangeText(), n)
	}
	return n, nil
}

func (s Setting) inRange(n int) bool {
	return n >= s.Min && (s.Max <= 0 || n <= s.Max)
}

func (s Setting) rangeText() string {
	if s.Max <= 0 {
		return fmt.Sprintf("at least %d", s.Min)
	}
	return fmt.Sprintf("between %d and %d", s.Min, s.Max)
}

// SaveSetting validates raw for key and persists it in store.
func SaveSetting(store driven.ConfigStore, key, raw string) (any, error) {
	setting, err := LookupSetting(key)
	if err != nil {
		return nil, err
	}
	value, err := setting.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := store.Set(key, value); err != nil {
		return nil, fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("Set %s = %v in %s", key, value, store.Path())
	return value, nil
}

// LoadSettings reads settings from store. Missing or invalid values keep
// their defaults. A nil store yields the defaults.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	settings := domain.DefaultSettings()
	if store == nil {
		return settings
	}

	settings.FallbackSourceLanguage = getString(store, KeyFallbackSourceLanguage, settings.FallbackSourceLanguage)
	settings.KeyProperty = getString(store, KeyKeyProperty, settings.KeyProperty)
	settings.ResultCap = getInt(store, KeyResultCap, settings.ResultCap)
	settings.PageSize = getInt(store, KeyPageSize, settings.PageSize)
	settings.DebounceMillis = getInt(store, KeyDebounceMillis, settings.DebounceMillis)

	logger.Debug("Settings from %s: %+v", store.Path(), settings)
	return settings
}

func getString(store driven.ConfigStore, key, def string) string {
	if v := strings.TrimSpace(store.GetString(key)); v != "" {
		return v
	}
	return def
}

// getInt returns the value at key if it is in the setting's range.
func getInt(store driven.ConfigStore, key string, def int) int {
	if _, ok := store.Get(key); !ok {
		return def
	}
	setting, _ := LookupSetting(key)
	v := store.GetInt(key)
	if !setting.inRange(v) {
		logger.Warn("Ignoring %s = %d (must be %s), using %d", key, v, setting.rangeText(), def)
		return def
	}
	return v
}
