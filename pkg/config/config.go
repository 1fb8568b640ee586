// Package config provides configuration management for pndb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use PNDB_ prefix with underscores for nesting:
//
//	PNDB_DATABASE_HOST=localhost
//	PNDB_DATABASE_PORT=5432
//	PNDB_IMPORT_CHUNK_SIZE=500
//	PNDB_LOG_LEVEL=info
package config

// Config represents the complete pndb configuration.
type Config struct {
	// Database contains destination store connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains destination store connection parameters.
type DatabaseConfig struct {
	// Driver selects the store backend: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// File is the SQLite database path used when Driver is "sqlite".
	// Empty means a default location under the cache directory.
	File string `mapstructure:"file" yaml:"file"`
}

// ImportConfig contains settings for the gazetteer import pipeline.
type ImportConfig struct {
	// URL of the remote gazetteer archive.
	URL string `mapstructure:"url" yaml:"url"`

	// Archive is the file name of the cached archive.
	Archive string `mapstructure:"archive" yaml:"archive"`

	// Entry is the name of the data file inside the zip archive.
	Entry string `mapstructure:"entry" yaml:"entry"`

	// ChunkSize is the number of rows parsed and exported per batch.
	// Keeps memory bounded regardless of the dump size.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Collection names the top-level collection holding imported data.
	Collection string `mapstructure:"collection" yaml:"collection"`

	// Folder names the folder under Collection that receives items.
	Folder string `mapstructure:"folder" yaml:"folder"`

	// Owner is the login of the user that owns created items.
	Owner string `mapstructure:"owner" yaml:"owner"`

	// TotalEstimate is the approximate number of rows in the dump,
	// used only for progress percentages. The true total is unknown
	// until the stream is exhausted.
	TotalEstimate int `mapstructure:"total_estimate" yaml:"total_estimate"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "placenames",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			URL:        "https://download.geonames.org/export/dump/allCountries.zip",
			Archive:    "allCountries.zip",
			Entry:      "allCountries.txt",
			ChunkSize:  100,
			Collection: "gazetteer",
			Folder:     "geonames",
			Owner:      "admin",
			// there are about 10.1 million rows in the dump now
			TotalEstimate: 10_200_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
