// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/nightsky/seqview/internal/astro"
	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	UI       UIConfig       `toml:"ui"`
	Labels   LabelsConfig   `toml:"labels"`
	Sequence SequenceConfig `toml:"sequence"`
	Location LocationConfig `toml:"location"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// UIConfig holds view settings.
type UIConfig struct {
	Theme          string `toml:"theme"`           // "mocha", "macchiato", "frappe", "latte", "light"
	RefreshSeconds int    `toml:"refresh_seconds"` // live view reload interval
}

// LabelsConfig holds the translated strings shown by the views.
type LabelsConfig struct {
	NoSelection string `toml:"no_selection"`
	Created     string `toml:"created"`
	Running     string `toml:"running"`
	Finished    string `toml:"finished"`
	Failed      string `toml:"failed"`
	Skipped     string `toml:"skipped"`
	Disabled    string `toml:"disabled"`
}

// SequenceConfig holds runtime estimation settings.
type SequenceConfig struct {
	// DownloadTime overrides the per-frame download estimate stored in
	// sequence files when greater than zero.
	DownloadTime float64 `toml:"download_time"`
}

// LocationConfig is the observing site. Altitude and moon figures are
// shown only when both coordinates are set.
type LocationConfig struct {
	Latitude  *float64 `toml:"latitude,omitempty"`  // degrees, north positive
	Longitude *float64 `toml:"longitude,omitempty"` // degrees, east positive
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath    string `toml:"db_path"`
	MaxRecent int    `toml:"max_recent"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // empty logs to stderr
}

// Default returns the default configuration.
func Default() *Config {
	l := format.DefaultLabels()
	return &Config{
		UI: UIConfig{
			Theme:          theme.DefaultName,
			RefreshSeconds: 5,
		},
		Labels: LabelsConfig{
			NoSelection: l.NoSelection,
			Created:     l.Created,
			Running:     l.Running,
			Finished:    l.Finished,
			Failed:      l.Failed,
			Skipped:     l.Skipped,
			Disabled:    l.Disabled,
		},
		Sequence: SequenceConfig{
			DownloadTime: 0, // Use the value stored in the sequence file
		},
		Storage: StorageConfig{
			DBPath:    defaultDBPath(),
			MaxRecent: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "seqview.db"
	}
	return filepath.Join(home, ".local", "share", "seqview", "seqview.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "seqview", "config.toml")
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
// A .env file in the working directory, if present, feeds the env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	_ = godotenv.Load() // .env is optional
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SEQVIEW_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("SEQVIEW_REFRESH_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SEQVIEW_REFRESH_SECONDS: %w", err)
		}
		cfg.UI.RefreshSeconds = n
	}
	if v := os.Getenv("SEQVIEW_NO_SELECTION_LABEL"); v != "" {
		cfg.Labels.NoSelection = v
	}
	if v := os.Getenv("SEQVIEW_DOWNLOAD_TIME"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SEQVIEW_DOWNLOAD_TIME: %w", err)
		}
		cfg.Sequence.DownloadTime = f
	}
	for _, o := range []struct {
		env string
		dst **float64
	}{
		{"SEQVIEW_LATITUDE", &cfg.Location.Latitude},
		{"SEQVIEW_LONGITUDE", &cfg.Location.Longitude},
	} {
		if v := os.Getenv(o.env); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", o.env, err)
			}
			*o.dst = &f
		}
	}
	if v := os.Getenv("SEQVIEW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SEQVIEW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SEQVIEW_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if c.UI.RefreshSeconds < 1 {
		return errors.New("refresh_seconds must be at least 1")
	}
	if err := c.FormatLabels().Validate(); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	if c.Sequence.DownloadTime < 0 {
		return errors.New("download_time cannot be negative")
	}
	if err := c.Location.validate(); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Storage.MaxRecent < 1 {
		return errors.New("max_recent must be at least 1")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

func (l LocationConfig) validate() error {
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return errors.New("latitude and longitude must be set together")
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return fmt.Errorf("latitude %g out of range [-90, 90]", *l.Latitude)
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return fmt.Errorf("longitude %g out of range [-180, 180]", *l.Longitude)
	}
	return nil
}

// Observer returns the configured site, or false when no location is set.
func (c *Config) Observer() (astro.Observer, bool) {
	if c.Location.Latitude == nil || c.Location.Longitude == nil {
		return astro.Observer{}, false
	}
	return astro.Observer{Latitude: *c.Location.Latitude, Longitude: *c.Location.Longitude}, true
}

// FormatLabels returns the labels in the form the formatter expects.
func (c *Config) FormatLabels() format.Labels {
	return format.Labels{
		NoSelection: c.Labels.NoSelection,
		Created:     c.Labels.Created,
		Running:     c.Labels.Running,
		Finished:    c.Labels.Finished,
		Failed:      c.Labels.Failed,
		Skipped:     c.Labels.Skipped,
		Disabled:    c.Labels.Disabled,
	}
}

// Formatter builds a formatter from the configured labels.
func (c *Config) Formatter() (*format.Formatter, error) {
	return format.New(c.FormatLabels())
}

// ApplyDownloadTime overrides the sequence's download estimate when one is configured.
func (c *Config) ApplyDownloadTime(s *sequence.Sequence) {
	if c.Sequence.DownloadTime > 0 {
		s.EstimatedDownloadTime = c.Sequence.DownloadTime
	}
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
