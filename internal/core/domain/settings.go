package domain

// KeyPropertyDefault is the property holding the external segment identifier.
const KeyPropertyDefault = "x-segment-id"

// Default presentation settings.
const (
	DefaultPageSize       = 25
	DefaultDebounceMillis = 300
)

// Settings holds user-tunable behaviour.
type Settings struct {
	// FallbackSourceLanguage is used when the header has no srclang.
	FallbackSourceLanguage string

	// KeyProperty names the property used for id-based search modes.
	KeyProperty string

	// ResultCap bounds the number of positions per query.
	ResultCap int

	// PageSize is the default number of units per result page.
	PageSize int

	// DebounceMillis is the input-settling delay before an interactive search.
	DebounceMillis int
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		FallbackSourceLanguage: DefaultSourceLanguage,
		KeyProperty:            KeyPropertyDefault,
		ResultCap:              DefaultResultCap,
		PageSize:               DefaultPageSize,
		DebounceMillis:         DefaultDebounceMillis,
	}
}
