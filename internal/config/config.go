package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// RemoteConfig holds the backup server connection
type RemoteConfig struct {
	URL   string `mapstructure:"url"`   // Backup server URL
	Token string `mapstructure:"token"` // Session token
}

// StorageConfig holds local storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // BoltDB file; empty keeps shows in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultOrder string `mapstructure:"default_order"` // "title", "rating_asc", "rating_desc"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // empty logs to stderr
	Level string `mapstructure:"level"`
}

// ServerConfig holds backup server (showlist-syncd) configuration
type ServerConfig struct {
	Addr   string   `mapstructure:"addr"`
	DBPath string   `mapstructure:"db_path"`
	Tokens []string `mapstructure:"tokens"` // accepted tokens; empty accepts any non-empty token
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "showlist.db"),
		},
		UI: UIConfig{
			DefaultOrder: "title",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "showlist.log"),
			Level: "INFO",
		},
		Server: ServerConfig{
			Addr:   ":8420",
			DBPath: filepath.Join(defaultDataPath(), "backups.db"),
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "showlist")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "showlist")
	}
}

// ConfigDir returns the config directory. SHOWLIST_CONFIG_DIR overrides the
// OS default.
func ConfigDir() string {
	if dir := os.Getenv("SHOWLIST_CONFIG_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "showlist")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "showlist")
	}
}

func configFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())

	// Environment variable overrides, e.g. SHOWLIST_REMOTE_TOKEN
	viper.SetEnvPrefix("SHOWLIST")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	bindEnvKeys()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	viper.Set("remote.url", cfg.Remote.URL)
	viper.Set("remote.token", cfg.Remote.Token)
	viper.Set("storage.path", cfg.Storage.Path)
	viper.Set("ui.default_order", cfg.UI.DefaultOrder)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)
	viper.Set("server.addr", cfg.Server.Addr)
	viper.Set("server.db_path", cfg.Server.DBPath)
	viper.Set("server.tokens", cfg.Server.Tokens)

	return writeConfig()
}

// SaveRemote stores the backup server URL and session token
func SaveRemote(url, token string) error {
	viper.Set("remote.url", url)
	viper.Set("remote.token", token)
	return writeConfig()
}

// SaveToken stores the session token, keeping the server URL
func SaveToken(token string) error {
	viper.Set("remote.token", token)
	return writeConfig()
}

// ClearToken removes the session token while keeping the server URL and all
// other settings
func ClearToken() error {
	viper.Set("remote.token", "")
	return writeConfig()
}

func writeConfig() error {
	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// HasRemote returns true if a backup server URL is set
func (c *Config) HasRemote() bool {
	return c.Remote.URL != ""
}

// IsSignedIn returns true if both the server URL and token are set
func (c *Config) IsSignedIn() bool {
	return c.Remote.URL != "" && c.Remote.Token != ""
}

// TokenFile persists token changes to the config file.
// It implements domain.TokenStore.
type TokenFile struct{}

func (TokenFile) SaveToken(token string) error {
	return SaveToken(token)
}

func (TokenFile) ClearToken() error {
	return ClearToken()
}
