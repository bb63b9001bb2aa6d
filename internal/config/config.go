package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir   string       `mapstructure:"data_dir"`
	LogLevel  string       `mapstructure:"log_level"`  // debug, info, warn, error
	LogFormat string       `mapstructure:"log_format"` // console, json
	Search    SearchConfig `mapstructure:"search"`
	Export    ExportConfig `mapstructure:"export"`
}

// SearchConfig tunes the directory listings
type SearchConfig struct {
	DebounceMS  int    `mapstructure:"debounce_ms"`
	RecentDays  int    `mapstructure:"recent_days"`
	StudentMode string `mapstructure:"student_mode"` // fuzzy, substring
	MentorMode  string `mapstructure:"mentor_mode"`
}

// ExportConfig tunes the CSV export
type ExportConfig struct {
	Filename     string `mapstructure:"filename"`
	EscapeQuotes bool   `mapstructure:"escape_quotes"`
}

// DebounceWindow returns the configured quiet period for search input
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// RecentWindow returns the "active recently" window
func (c *Config) RecentWindow() time.Duration {
	return time.Duration(c.Search.RecentDays) * 24 * time.Hour
}

// DatabasePath returns the SQLite file location
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "campuslink.db")
}

// ValidKeys lists the keys `config set` accepts
var ValidKeys = []string{
	"data_dir",
	"log_level",
	"log_format",
	"search.debounce_ms",
	"search.recent_days",
	"search.student_mode",
	"search.mentor_mode",
	"export.filename",
	"export.escape_quotes",
}

// IsValidKey reports whether key may be changed with Set
func IsValidKey(key string) bool {
	for _, k := range ValidKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Load reads the configuration from dir/config.yaml, creating it with defaults
// when it does not exist. Environment variables prefixed CAMPUSLINK_ override
// file values (search.debounce_ms -> CAMPUSLINK_SEARCH_DEBOUNCE_MS).
func Load(dir string) (*Config, *viper.Viper, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return nil, nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("campuslink")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("data_dir", dir)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("search.debounce_ms", 300)
	v.SetDefault("search.recent_days", 7)
	v.SetDefault("search.student_mode", "fuzzy")
	v.SetDefault("search.mentor_mode", "substring")
	v.SetDefault("export.filename", "students_export.csv")
	v.SetDefault("export.escape_quotes", false)

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	if cfg.Search.DebounceMS <= 0 {
		return nil, nil, fmt.Errorf("search.debounce_ms must be positive, got %d", cfg.Search.DebounceMS)
	}
	if cfg.Search.RecentDays <= 0 {
		return nil, nil, fmt.Errorf("search.recent_days must be positive, got %d", cfg.Search.RecentDays)
	}

	return cfg, v, nil
}

// DefaultDir returns ~/.campuslink
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".campuslink"), nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# campuslink configuration
log_level: warn
log_format: console

search:
  # quiet period before typed search text is applied
  debounce_ms: 300
  # window for the "active recently" filter
  recent_days: 7
  # fuzzy (letters in order) or substring
  student_mode: fuzzy
  mentor_mode: substring

export:
  filename: students_export.csv
  # double embedded quotes (RFC 4180); off keeps the legacy wrap-only output
  escape_quotes: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value and writes it back to the file
func Set(v *viper.Viper, key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("invalid key %q, must be one of: %v", key, ValidKeys)
	}
	v.Set(key, value)
	return v.WriteConfig()
}
