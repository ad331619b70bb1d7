// Package config provides centralized configuration for the CareBell runtime.
// Values come from an optional YAML file, overridden by CAREBELL_* environment
// variables. ${ENV_VAR} placeholders inside the YAML are expanded before parse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// AppName is used for XDG paths and log identification.
const AppName = "carebell"

// Storage backends.
const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Alerts.Validate(); err != nil {
		return err
	}
	return c.Notify.Validate()
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	LogJSON  bool   `yaml:"log_json"`
}

// Validate validates the application configuration.
func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required,
			validation.In("debug", "info", "warn", "error")),
	)
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthMode  string `yaml:"auth_mode"`
	AuthToken string `yaml:"auth_token"`
}

// Address returns the HTTP listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AuthEnabled returns true when bearer-token authentication is active.
func (c *ServerConfig) AuthEnabled() bool {
	return c.AuthMode == AuthModeToken
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.AuthMode == "" {
		c.AuthMode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.AuthMode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.AuthMode == AuthModeToken && c.AuthToken == "" {
		return fmt.Errorf("server: auth_mode is %q but auth_token is empty", AuthModeToken)
	}
	return nil
}

// StorageConfig holds key-value store configuration.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // badger or redis
	Path    string      `yaml:"path"`    // badger directory; empty uses the XDG data dir
	Redis   RedisConfig `yaml:"redis"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendBadger, BackendRedis)),
	); err != nil {
		return err
	}
	if c.Backend == BackendRedis {
		return c.Redis.Validate()
	}
	return nil
}

// RedisConfig holds redis backend configuration.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Validate validates the redis configuration.
func (c *RedisConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Address, validation.Required),
		validation.Field(&c.DB, validation.Min(0), validation.Max(15)),
	)
}

// AlertsConfig holds reminder defaults.
type AlertsConfig struct {
	// DefaultCount selects the alert preset used when the stored settings
	// carry no explicit choice. Valid range 1-5.
	DefaultCount int `yaml:"default_count"`
}

// Validate validates the alerts configuration.
func (c *AlertsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultCount, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// NotifyConfig holds family notification fan-out configuration.
type NotifyConfig struct {
	Webhooks []WebhookConfig `yaml:"webhooks"`
	Telegram TelegramConfig  `yaml:"telegram"`
}

// Validate validates the notify configuration.
func (c *NotifyConfig) Validate() error {
	for i := range c.Webhooks {
		if err := c.Webhooks[i].Validate(); err != nil {
			return fmt.Errorf("webhook %d: %w", i+1, err)
		}
	}
	return c.Telegram.Validate()
}

// WebhookConfig describes one webhook destination.
type WebhookConfig struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

// Validate validates a webhook destination.
func (c *WebhookConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required),
	)
}

// TelegramConfig holds the family Telegram bot configuration.
// An empty BotToken disables the Telegram notifier.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
	Debug    bool   `yaml:"debug"`
}

// Validate validates the telegram configuration.
func (c *TelegramConfig) Validate() error {
	if c.BotToken != "" && c.ChatID == 0 {
		return fmt.Errorf("telegram: bot_token is set but chat_id is empty")
	}
	return nil
}

// Enabled returns true when the Telegram notifier should run.
func (c *TelegramConfig) Enabled() bool {
	return c.BotToken != ""
}

// Default returns a new Config with sensible default values.
func Default() *Config {
	return &Config{
		App: AppConfig{
			LogLevel: "info",
		},
		Server: ServerConfig{
			Port:     8080,
			AuthMode: AuthModeDisabled,
		},
		Storage: StorageConfig{
			Backend: BackendBadger,
		},
		Alerts: AlertsConfig{
			DefaultCount: 3,
		},
	}
}

// DefaultPath returns the default config file location under the XDG config dir.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load loads the configuration. An empty path means the default location, and
// a missing file at the default location is not an error: defaults plus
// environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Support ${ENV_VAR} placeholders in YAML config.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("CAREBELL_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("CAREBELL_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.App.LogJSON = b
		}
	}

	if v := os.Getenv("CAREBELL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.Port = n
		}
	}
	if v := os.Getenv("CAREBELL_AUTH_TOKEN"); v != "" {
		c.Server.AuthMode = AuthModeToken
		c.Server.AuthToken = v
	}

	if v := os.Getenv("CAREBELL_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("CAREBELL_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("CAREBELL_REDIS_ADDRESS"); v != "" {
		c.Storage.Redis.Address = v
	}
	if v := os.Getenv("CAREBELL_REDIS_PASSWORD"); v != "" {
		c.Storage.Redis.Password = v
	}
	if v := os.Getenv("CAREBELL_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Storage.Redis.DB = n
		}
	}

	if v := os.Getenv("CAREBELL_ALERT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Alerts.DefaultCount = n
		}
	}

	if v := os.Getenv("CAREBELL_TELEGRAM_TOKEN"); v != "" {
		c.Notify.Telegram.BotToken = v
	}
	if v := os.Getenv("CAREBELL_TELEGRAM_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Notify.Telegram.ChatID = n
		}
	}
}
