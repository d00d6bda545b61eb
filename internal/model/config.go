package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultBaseURL is where the planning service listens in development.
const DefaultBaseURL = "http://127.0.0.1:8000"

// UserConfig identifies the planner account all remote calls are scoped to.
type UserConfig struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Email    string `mapstructure:"email" yaml:"email"`
	FullName string `mapstructure:"full_name" yaml:"full_name"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// APIConfig holds settings for the planning service client.
type APIConfig struct {
	// BaseURL is the root URL of the planning service. The
	// PLANNER_API_BASE_URL environment variable overrides it.
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// SyncConfig controls how fetched data is applied.
type SyncConfig struct {
	// RefreshIntervalSec re-fetches the selected date periodically.
	// Zero disables background refresh.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`

	// DiscardStale drops task fetch responses that were requested before
	// the most recently applied one.
	DiscardStale bool `mapstructure:"discard_stale" yaml:"discard_stale"`
}

// AssistantConfig holds settings for the scripted chat assistant.
type AssistantConfig struct {
	ThinkDelayMS int `mapstructure:"think_delay_ms" yaml:"think_delay_ms"`
}

// StorageConfig locates the local snapshot database.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// MailConfig configures the IMAP mailbox that PDF attachments are
// imported from.
type MailConfig struct {
	Host      string `mapstructure:"host" yaml:"host"`
	Port      int    `mapstructure:"port" yaml:"port"`
	Username  string `mapstructure:"username" yaml:"username"`
	TLS       bool   `mapstructure:"tls" yaml:"tls"`
	SinceDays int    `mapstructure:"since_days" yaml:"since_days"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// DemoData seeds the sample goal and tasks when no snapshot exists.
	DemoData bool `mapstructure:"demo_data" yaml:"demo_data"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	User      UserConfig      `mapstructure:"user" yaml:"user"`
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Sync      SyncConfig      `mapstructure:"sync" yaml:"sync"`
	Assistant AssistantConfig `mapstructure:"assistant" yaml:"assistant"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Mail      MailConfig      `mapstructure:"mail" yaml:"mail"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
}

// ConfigDir returns ~/.config/daily-planner, or the working directory when
// the home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "daily-planner")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/daily-planner/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	dir := ConfigDir()
	v.SetDefault("user.id", "")
	v.SetDefault("user.email", "")
	v.SetDefault("user.full_name", "")
	v.SetDefault("user.timezone", "")
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("sync.refresh_interval_sec", 0)
	v.SetDefault("sync.discard_stale", false)
	v.SetDefault("assistant.think_delay_ms", 700)
	v.SetDefault("storage.db_path", filepath.Join(dir, "planner.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "planner.log"))
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 993)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.tls", true)
	v.SetDefault("mail.since_days", 7)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.demo_data", true)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with PLANNER_ override file values
// (PLANNER_API_BASE_URL, PLANNER_USER_ID, ...). A missing file yields the
// defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		_, missing := err.(*os.PathError)
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			missing = true
		}
		if !missing {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = 30
	}
	if cfg.Assistant.ThinkDelayMS < 0 {
		cfg.Assistant.ThinkDelayMS = 0
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user", cfg.User)
	v.Set("api", cfg.API)
	v.Set("sync", cfg.Sync)
	v.Set("assistant", cfg.Assistant)
	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("mail", cfg.Mail)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
