package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	for k := range defaults {
		t.Setenv(strings.ToUpper(k), "")
	}
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "info" || cfg.NodeID != 1 || cfg.ReqTimeoutSec != 30 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("location = %v", cfg.Location())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("TZ_DEFAULT", "America/Winnipeg")
	t.Setenv("NODE_ID", "12")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.NodeID != 12 || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Location().String() != "America/Winnipeg" {
		t.Fatalf("location = %v", cfg.Location())
	}
}

func TestLoadFromFile(t *testing.T) {
	for k := range defaults {
		t.Setenv(strings.ToUpper(k), "")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"7000\"\nrequest_timeout_seconds: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7000" || cfg.RequestTimeout() != 5*time.Second {
		t.Fatalf("file not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	base := Config{Port: "8080", LogLevel: "info", NodeID: 1, ReqTimeoutSec: 30}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"bcrypt hash", func(c *Config) { c.AuthBearerHash = string(hash) }, false},
		{"plain token", func(c *Config) { c.AuthBearerHash = "secret" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"node id", func(c *Config) { c.NodeID = 4096 }, true},
		{"timeout", func(c *Config) { c.ReqTimeoutSec = 0 }, true},
		{"port", func(c *Config) { c.Port = " " }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			if err := c.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLocationFallsBack(t *testing.T) {
	c := Config{TZDefault: "Mars/Olympus"}
	if c.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", c.Location())
	}
}
