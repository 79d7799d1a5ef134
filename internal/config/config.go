package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/mmcdole/watchlist/internal/domain"
)

// Config holds all application configuration
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultFilter string `mapstructure:"default_filter" validate:"oneof=all favorites watched"`
	Emoji         bool   `mapstructure:"emoji"`          // Use emoji glyphs for item icons
	ShowAddedAt   bool   `mapstructure:"show_added_at"`  // Show relative "added" time per row
	ConfirmDelete bool   `mapstructure:"confirm_delete"` // Ask before deleting an item
	SimilarHints  bool   `mapstructure:"similar_hints"`  // Warn when a new title resembles an existing one
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file" validate:"required"`
	Level string `mapstructure:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			DefaultFilter: "all",
			Emoji:         false,
			ShowAddedAt:   true,
			ConfirmDelete: true,
			SimilarHints:  true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Filter returns the configured starting filter mode
func (c *Config) Filter() domain.FilterMode {
	mode, err := domain.ParseFilterMode(c.UI.DefaultFilter)
	if err != nil {
		return domain.FilterAll
	}
	return mode
}

var validate = validator.New()

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "watchlist", "watchlist.log")
	default:
		return filepath.Join("~", ".local", "share", "watchlist", "watchlist.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "watchlist")
	default:
		home, _ := homedir.Dir()
		return filepath.Join(home, ".config", "watchlist")
	}
}

// Loader reads configuration from file and environment
type Loader struct {
	v      *viper.Viper
	path   string
	loaded bool // A config file was actually read
}

// NewLoader creates a loader. An empty path searches the default locations.
func NewLoader(path string) *Loader {
	return &Loader{v: viper.New(), path: path}
}

// Load reads the config file (if any) and environment overrides
func (l *Loader) Load() (*Config, error) {
	defaults := DefaultConfig()
	l.v.SetDefault("ui.default_filter", defaults.UI.DefaultFilter)
	l.v.SetDefault("ui.emoji", defaults.UI.Emoji)
	l.v.SetDefault("ui.show_added_at", defaults.UI.ShowAddedAt)
	l.v.SetDefault("ui.confirm_delete", defaults.UI.ConfirmDelete)
	l.v.SetDefault("ui.similar_hints", defaults.UI.SimilarHints)
	l.v.SetDefault("logging.file", defaults.Logging.File)
	l.v.SetDefault("logging.level", defaults.Logging.Level)

	if l.path != "" {
		path, err := homedir.Expand(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(DefaultConfigDir())
		l.v.AddConfigPath(".")
	}

	// Environment variable overrides (WATCHLIST_UI_EMOJI=true)
	l.v.SetEnvPrefix("WATCHLIST")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	} else {
		l.loaded = true
	}

	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFileUsed returns the file the config was read from, or "".
func (l *Loader) ConfigFileUsed() string {
	if !l.loaded {
		return ""
	}
	return l.v.ConfigFileUsed()
}

// Watch reloads the config whenever the file changes and hands valid
// results to onChange. Invalid edits are reported to onError and the
// previous config stays in effect. Returns false when no file was loaded.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) bool {
	if !l.loaded {
		return false
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
	return true
}

// SaveConfig writes cfg as YAML to path (the default location when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("ui.default_filter", cfg.UI.DefaultFilter)
	v.Set("ui.emoji", cfg.UI.Emoji)
	v.Set("ui.show_added_at", cfg.UI.ShowAddedAt)
	v.Set("ui.confirm_delete", cfg.UI.ConfirmDelete)
	v.Set("ui.similar_hints", cfg.UI.SimilarHints)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
