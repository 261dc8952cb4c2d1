// Package config defines service configuration structures and loading hooks.
package config

// Default configuration values.
const (
	defaultAddr          = ":9090"
	defaultDBPath        = "songrank.db"
	defaultMaxListLimit  = 1000
	defaultBusyTimeoutMS = 5000
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file backing the rating ledger.
	DBPath string `koanf:"db_path"`

	// MaxListLimit caps every list endpoint. Rosters past the cap are a
	// known limitation, not an error.
	MaxListLimit int `koanf:"max_list_limit"`

	// BusyTimeoutMS is the SQLite busy timeout for contended writes.
	BusyTimeoutMS int `koanf:"busy_timeout_ms"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          defaultAddr,
		DBPath:        defaultDBPath,
		MaxListLimit:  defaultMaxListLimit,
		BusyTimeoutMS: defaultBusyTimeoutMS,
	}
}
