package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when neither config file, environment, nor flags set a
// value.
const (
	DefaultServerURL    = "http://localhost:8080"
	DefaultBaseInterval = 30 * time.Second
	DefaultMaxInterval  = 10 * time.Minute
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultLogLevel     = "info"
)

// Config holds runtime settings for the notesync CLI.
//
// Fields:
//   - ServerURL: base URL of the sync server.
//   - DataDir: directory for the local database and note files
//     (default ~/.notesync).
//   - BaseInterval / MaxInterval: periodic sync schedule and backoff cap.
//   - HTTPTimeout: per-request timeout for server calls.
//   - LogFile: log destination; empty means stderr.
//   - LogLevel: debug, info, warn, or error.
type Config struct {
	ServerURL    string
	DataDir      string
	BaseInterval time.Duration
	MaxInterval  time.Duration
	HTTPTimeout  time.Duration
	LogFile      string
	LogLevel     string
}

// SetDefaults registers the default values on v. Call before Load so unset
// keys resolve to something usable.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("data_dir", "")
	v.SetDefault("base_interval", DefaultBaseInterval)
	v.SetDefault("max_interval", DefaultMaxInterval)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
}

// Load reads the final merged settings out of v and validates them. An
// empty data_dir resolves to ~/.notesync.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerURL:    v.GetString("server_url"),
		DataDir:      v.GetString("data_dir"),
		BaseInterval: v.GetDuration("base_interval"),
		MaxInterval:  v.GetDuration("max_interval"),
		HTTPTimeout:  v.GetDuration("http_timeout"),
		LogFile:      v.GetString("log_file"),
		LogLevel:     v.GetString("log_level"),
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".notesync")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server url must not be empty")
	}
	if c.BaseInterval <= 0 {
		return errors.New("base interval must be positive")
	}
	if c.MaxInterval < c.BaseInterval {
		return errors.New("max interval must be at least the base interval")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("http timeout must be positive")
	}
	return nil
}

// DatabasePath is the location of the local SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "notesync.db")
}

// NotesDir is where note body files live.
func (c *Config) NotesDir() string {
	return filepath.Join(c.DataDir, "notes")
}
