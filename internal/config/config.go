package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OMDbConfig holds movie catalog configuration
type OMDbConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds watched-list storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // Empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	StatusTimeout time.Duration `mapstructure:"status_timeout"` // How long footer messages stay
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL: "https://www.omdbapi.com/",
			Timeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "screenly.db"),
		},
		UI: UIConfig{
			StatusTimeout: 3 * time.Second,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "screenly.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "screenly")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "screenly")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "screenly")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "screenly")
	}
}

// envKeyReplacer maps omdb.api_key to SCREENLY_OMDB_API_KEY
var envKeyReplacer = strings.NewReplacer(".", "_")

// Loader reads and writes config.yaml under a set of search paths
type Loader struct {
	v        *viper.Viper
	dir      string   // Directory SaveConfig writes to
	searchIn []string // Directories searched by Load, in order
}

// NewLoader creates a loader that saves to dir and searches dir then ".".
func NewLoader(dir string) *Loader {
	return &Loader{
		v:        viper.New(),
		dir:      dir,
		searchIn: []string{dir, "."},
	}
}

// LoadConfig loads configuration from the default location and environment
func LoadConfig() (*Config, error) {
	return NewLoader(DefaultConfigPath()).Load()
}

// SaveConfig saves cfg to the default location
func SaveConfig(cfg *Config) error {
	return NewLoader(DefaultConfigPath()).Save(cfg)
}

// Load reads config.yaml (if present) and SCREENLY_* environment overrides
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range l.searchIn {
		v.AddConfigPath(dir)
	}

	setDefaults(v, cfg)

	// Environment variable overrides (SCREENLY_OMDB_API_KEY, ...)
	v.SetEnvPrefix("SCREENLY")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes cfg as config.yaml in the loader's directory
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := l.v
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.base_url", cfg.OMDb.BaseURL)
	v.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.status_timeout", cfg.UI.StatusTimeout.String())
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(l.dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	v.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	v.SetDefault("omdb.timeout", cfg.OMDb.Timeout)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.status_timeout", cfg.UI.StatusTimeout)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.OMDb.APIKey != ""
}
