// Package config загружает конфигурацию commentfeed из .env, YAML-файла и
// переменных окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	defaults "github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "COMMENTFEED_"

// Config is the full application configuration.
type Config struct {
	FeedURL         string        `yaml:"feed_url" validate:"required,url"`
	RelayURL        string        `yaml:"relay_url" default:"https://corsproxy.io/?url=" validate:"omitempty,url"`
	Storage         StorageConfig `yaml:"storage"`
	Server          ServerConfig  `yaml:"server"`
	Log             LogConfig     `yaml:"log"`
	PollInterval    time.Duration `yaml:"poll_interval" default:"5s" validate:"gt=0"`
	SubmitPollDelay time.Duration `yaml:"submit_poll_delay" default:"1500ms" validate:"gt=0"`
	RecencyWindow   time.Duration `yaml:"recency_window" default:"5m" validate:"gt=0"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout" default:"30s" validate:"gt=0"`
	FetchRate       float64       `yaml:"fetch_rate" default:"2" validate:"gt=0"`
	FetchBurst      int           `yaml:"fetch_burst" default:"4" validate:"gte=1"`
	NewestFirst     bool          `yaml:"newest_first"`
	DisableRelay    bool          `yaml:"disable_relay"`
}

// StorageConfig selects the receipt log backend.
type StorageConfig struct {
	Driver      string        `yaml:"driver" default:"bolt" validate:"oneof=bolt sqlite"`
	Path        string        `yaml:"path" default:"commentfeed.db" validate:"required"`
	LockTimeout time.Duration `yaml:"lock_timeout" default:"1s" validate:"gte=0"`
}

// ServerConfig configures the HTTP surface of the serve command.
type ServerConfig struct {
	Address     string  `yaml:"address" default:":8080" validate:"required"`
	SubmitRate  float64 `yaml:"submit_rate" default:"1" validate:"gt=0"`
	SubmitBurst int     `yaml:"submit_burst" default:"5" validate:"gte=1"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"text" validate:"oneof=text json"`
}

// RelayPrefix returns the relay URL, or "" when the relay is disabled.
func (c *Config) RelayPrefix() string {
	if c.DisableRelay {
		return ""
	}
	return c.RelayURL
}

// Load reads .env from the working directory (if present), then the YAML
// file at path (skipped when path is empty), then COMMENTFEED_* environment
// variables. Unset fields get their defaults. The result is not validated;
// call Validate after applying command-line overrides.
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	defaults.SetDefaults(cfg)

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return c.validate()
}

// ValidateOffline checks everything except the feed URL. Used by commands
// that only touch the local receipt log.
func (c *Config) ValidateOffline() error {
	return c.validate("FeedURL")
}

func (c *Config) validate(except ...string) error {
	if err := validator.New().StructExcept(c, except...); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type envSetter func(cfg *Config, value string) error

var envVars = map[string]envSetter{
	"FEED_URL":             func(c *Config, v string) error { c.FeedURL = v; return nil },
	"RELAY_URL":            func(c *Config, v string) error { c.RelayURL = v; return nil },
	"DISABLE_RELAY":        boolVar(func(c *Config) *bool { return &c.DisableRelay }),
	"POLL_INTERVAL":        durationVar(func(c *Config) *time.Duration { return &c.PollInterval }),
	"SUBMIT_POLL_DELAY":    durationVar(func(c *Config) *time.Duration { return &c.SubmitPollDelay }),
	"RECENCY_WINDOW":       durationVar(func(c *Config) *time.Duration { return &c.RecencyWindow }),
	"FETCH_TIMEOUT":        durationVar(func(c *Config) *time.Duration { return &c.FetchTimeout }),
	"FETCH_RATE":           floatVar(func(c *Config) *float64 { return &c.FetchRate }),
	"FETCH_BURST":          intVar(func(c *Config) *int { return &c.FetchBurst }),
	"NEWEST_FIRST":         boolVar(func(c *Config) *bool { return &c.NewestFirst }),
	"STORAGE_DRIVER":       func(c *Config, v string) error { c.Storage.Driver = v; return nil },
	"STORAGE_PATH":         func(c *Config, v string) error { c.Storage.Path = v; return nil },
	"STORAGE_LOCK_TIMEOUT": durationVar(func(c *Config) *time.Duration { return &c.Storage.LockTimeout }),
	"SERVER_ADDRESS":       func(c *Config, v string) error { c.Server.Address = v; return nil },
	"SERVER_SUBMIT_RATE":   floatVar(func(c *Config) *float64 { return &c.Server.SubmitRate }),
	"SERVER_SUBMIT_BURST":  intVar(func(c *Config) *int { return &c.Server.SubmitBurst }),
	"LOG_LEVEL":            func(c *Config, v string) error { c.Log.Level = v; return nil },
	"LOG_FORMAT":           func(c *Config, v string) error { c.Log.Format = v; return nil },
}

func applyEnv(cfg *Config) error {
	for name, set := range envVars {
		value, ok := os.LookupEnv(EnvPrefix + name)
		if !ok || value == "" {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
	}
	return nil
}

func durationVar(field func(*Config) *time.Duration) envSetter {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}

func floatVar(field func(*Config) *float64) envSetter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func intVar(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolVar(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}
