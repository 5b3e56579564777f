package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/store"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys to env names (tmdb.api_key -> TMDB_API_KEY)
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"` // v3 key or v4 read access token
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"`
	RateLimit    int           `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
	Timeout      time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty = memory only
}

// PlayerConfig holds the trailer player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DarkMode bool `mapstructure:"dark_mode"` // default until toggled in the app
	CastSize int  `mapstructure:"cast_size"` // cast members shown in the detail view
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/",
			Language:     "en-US",
			RateLimit:    20,
			Timeout:      10 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			DarkMode: false,
			CastSize: 6,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// setDefaults registers defaults with viper so env overrides bind to every key
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.rate_limit", cfg.TMDB.RateLimit)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("ui.dark_mode", cfg.UI.DarkMode)
	v.SetDefault("ui.cast_size", cfg.UI.CastSize)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. MARQUEE_TMDB_API_KEY
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveAPIKey stores the catalog API key. Only the key is written; runtime
// overrides on cfg (such as an in-memory storage path) are not persisted.
func SaveAPIKey(cfg *Config, key string) error {
	return saveAPIKey(viper.GetViper(), defaultConfigPath(), cfg, key)
}

func saveAPIKey(v *viper.Viper, dir string, cfg *Config, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key is empty")
	}
	if err := writeAPIKey(v, dir, key); err != nil {
		return err
	}
	cfg.TMDB.APIKey = key
	return nil
}

// ClearCredentials removes the API key while preserving other settings
func ClearCredentials() error {
	return writeAPIKey(viper.GetViper(), defaultConfigPath(), "")
}

// writeAPIKey sets tmdb.api_key and rewrites config.yaml from what viper loaded
func writeAPIKey(v *viper.Viper, dir, key string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v.Set("tmdb.api_key", key)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearData empties the local database (favorites, theme, session, history)
// and returns the number of entries removed
func ClearData(path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	kv, err := store.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open storage: %w", err)
	}
	defer kv.Close()

	keys, err := kv.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list saved data: %w", err)
	}
	if err := kv.Clear(); err != nil {
		return 0, fmt.Errorf("failed to clear data: %w", err)
	}
	return len(keys), nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}
