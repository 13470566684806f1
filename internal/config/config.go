package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// View names accepted by ui.default_view
const (
	ViewHome      = "home"
	ViewSearch    = "search"
	ViewFavorites = "favorites"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog settings
type CatalogConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
	UserAgent string        `mapstructure:"user_agent"`
}

// StoreConfig holds favorites store settings
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty keeps favorites in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string   `mapstructure:"theme"`
	DefaultView string   `mapstructure:"default_view"`
	Browser     string   `mapstructure:"browser"`      // Empty uses the system default
	BrowserArgs []string `mapstructure:"browser_args"` // Placed before the URL
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "https://api.tvmaze.com/",
		},
		Store: StoreConfig{
			Path: filepath.Join(dataDir(), "favorites.db"),
		},
		UI: UIConfig{
			Theme:       "default",
			DefaultView: ViewHome,
			BrowserArgs: []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(dataDir(), "tvshelf.log"),
			Level: "INFO",
		},
	}
}

// dataDir returns the per-user data directory for the current OS
func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tvshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tvshelf")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tvshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tvshelf")
	}
}

// newViper returns a viper instance seeded with the defaults, so that
// environment overrides apply to every key even without a config file.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("catalog.base_url", def.Catalog.BaseURL)
	v.SetDefault("catalog.timeout", def.Catalog.Timeout)
	v.SetDefault("catalog.user_agent", def.Catalog.UserAgent)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("ui.theme", def.UI.Theme)
	v.SetDefault("ui.default_view", def.UI.DefaultView)
	v.SetDefault("ui.browser", def.UI.Browser)
	v.SetDefault("ui.browser_args", def.UI.BrowserArgs)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides, e.g. TVSHELF_CATALOG_BASE_URL
	v.SetEnvPrefix("TVSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path, or from config.yaml in the default
// config directory or the working directory when path is empty. A missing
// default file is not an error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the directory if needed
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("catalog.user_agent", cfg.Catalog.UserAgent)
	v.Set("store.path", cfg.Store.Path)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.default_view", cfg.UI.DefaultView)
	v.Set("ui.browser", cfg.UI.Browser)
	v.Set("ui.browser_args", cfg.UI.BrowserArgs)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid catalog.base_url %q", c.Catalog.BaseURL)
	}
	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("invalid catalog.timeout %s", c.Catalog.Timeout)
	}
	switch c.UI.DefaultView {
	case ViewHome, ViewSearch, ViewFavorites:
	default:
		return fmt.Errorf("invalid ui.default_view %q", c.UI.DefaultView)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
