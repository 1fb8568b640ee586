package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "pndb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/pndb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cached downloads and
// local databases. Returns ~/.cache/pndb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/pndb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/pndb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ArchivePath returns the full path to the cached gazetteer archive.
func (c *Config) ArchivePath() string {
	return filepath.Join(CacheDir(c.HomeDir), c.Import.Archive)
}

// SQLitePath returns the path of the SQLite store file, falling back
// to a default location under the cache directory.
func (c *Config) SQLitePath() string {
	if c.Database.File != "" {
		return c.Database.File
	}
	return filepath.Join(CacheDir(c.HomeDir), AppName+".sqlite")
}
