package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BackendURL  string        `mapstructure:"BACKEND_URL"`
	ChatURL     string        `mapstructure:"CHAT_URL"`
	VideoDomain string        `mapstructure:"VIDEO_DOMAIN"`
	StateDir    string        `mapstructure:"STATE_DIR"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	Env         string        `mapstructure:"ENV"`
	Currency    string        `mapstructure:"CURRENCY"`
	CallAddr    string        `mapstructure:"CALL_ADDR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("CHAT_URL", "http://localhost:5000/api/chat")
	v.SetDefault("VIDEO_DOMAIN", "meet.jit.si")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("ENV", "development")
	v.SetDefault("CURRENCY", "MAD ")
	v.SetDefault("CALL_ADDR", "127.0.0.1:0")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("BACKEND_URL")
	v.BindEnv("CHAT_URL")
	v.BindEnv("VIDEO_DOMAIN")
	v.BindEnv("STATE_DIR")
	v.BindEnv("HTTP_TIMEOUT")
	v.BindEnv("ENV")
	v.BindEnv("CURRENCY")
	v.BindEnv("CALL_ADDR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for STATE_DIR: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".medibook")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the client is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is usable: BACKEND_URL and
// CHAT_URL must be absolute http(s) URLs and HTTP_TIMEOUT must be
// positive. Called once at CLI startup.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"BACKEND_URL": c.BackendURL,
		"CHAT_URL":    c.ChatURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s is not a valid URL: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.VideoDomain == "" {
		return fmt.Errorf("VIDEO_DOMAIN must not be empty")
	}
	return nil
}
