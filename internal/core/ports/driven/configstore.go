package driven

// ConfigStore reads and writes the application configuration file.
// Implementations persist to disk (TOML) and take care of type
// conversion for the dotted keys they are asked for.
type ConfigStore interface {
	// Get returns the raw value for key and whether the key exists.
	Get(key string) (any, bool)

	// Typed accessors return the zero value when the key is absent or
	// holds a value of a different type.
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores a value under key and persists it immediately.
	Set(key string, value any) error

	// Save writes the current configuration to storage.
	Save() error

	// Load reads the configuration from storage.
	Load() error

	// Path returns the location of the backing file.
	Path() string
}
