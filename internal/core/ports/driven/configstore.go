package driven

// ConfigStore holds user settings as dotted keys ("search.page_size").
// Services read it once at startup through services.LoadSettings.
type ConfigStore interface {
	// Get returns the raw value at key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns the value at key, or "" when unset or not a string.
	GetString(key string) string

	// GetInt returns the value at key, or 0 when unset or not an integer.
	GetInt(key string) int

	// Set stores value at key and persists it.
	Set(key string, value any) error

	// Load re-reads the settings from their backing storage.
	Load() error

	// Path names the backing storage, for log messages.
	Path() string
}
