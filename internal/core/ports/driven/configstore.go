package driven

// ConfigStore is a flat key-value view of the configuration file.
// Keys use dot notation ("match.tabular_threshold"); the typed getters
// return the zero value for a missing key or a value of the wrong type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any numeric value; floats are truncated.
	GetInt(key string) int

	// GetFloat accepts any numeric value; integers are widened.
	GetFloat(key string) float64

	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes every value back to storage.
	Save() error

	// Load re-reads storage, replacing the values held.
	Load() error

	// Path returns the backing file path.
	Path() string
}
