package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port           string `mapstructure:"port"`
	AllowOrigins   string `mapstructure:"allow_origins"`
	AuthBearerHash string `mapstructure:"auth_bearer_hash"`
	TZDefault      string `mapstructure:"tz_default"`
	LogLevel       string `mapstructure:"log_level"`
	NodeID         int64  `mapstructure:"node_id"`
	ReqTimeoutSec  int    `mapstructure:"request_timeout_seconds"`
}

var defaults = map[string]any{
	"port":                    "8080",
	"allow_origins":           "*",
	"auth_bearer_hash":        "",
	"tz_default":              "UTC",
	"log_level":               "info",
	"node_id":                 1,
	"request_timeout_seconds": 30,
}

// Load reads configuration from the environment, optionally layered over
// the YAML file named by CONFIG_FILE. Environment variables are the
// upper-case form of each key (PORT, TZ_DEFAULT, ...).
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	_ = v.BindEnv("config_file", "CONFIG_FILE")
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node_id %d out of range 0-1023", c.NodeID)
	}
	if c.ReqTimeoutSec <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	if c.AuthBearerHash != "" {
		if _, err := bcrypt.Cost([]byte(c.AuthBearerHash)); err != nil {
			return fmt.Errorf("auth_bearer_hash is not a bcrypt hash: %w", err)
		}
	}
	return nil
}

// Location resolves TZDefault, falling back to UTC when it is unknown.
// It decides what "today" means for accounts created without a date.
func (c *Config) Location() *time.Location {
	name := strings.TrimSpace(c.TZDefault)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.ReqTimeoutSec) * time.Second
}
