package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unsetenv removes a variable for the duration of the test. t.Setenv is used
// first so the original value is restored on cleanup.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func setRequiredVars(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "journal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "tradejournal")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredVars(t)
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_POOL_SIZE",
		"SESSION_TTL", "SESSION_PRUNE_INTERVAL",
		"PORT", "CLIENT_URL", "APP_ENV",
	} {
		unsetenv(t, key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 || cfg.DB.MaxSize != 10 {
		t.Errorf("unexpected DB defaults: %+v", cfg.DB)
	}
	if cfg.Session.TTL != 3*time.Hour {
		t.Errorf("Session.TTL = %s, want 3h", cfg.Session.TTL)
	}
	if cfg.Session.PruneInterval != 5*time.Hour {
		t.Errorf("Session.PruneInterval = %s, want 5h", cfg.Session.PruneInterval)
	}
	if cfg.Server.Port != "8000" {
		t.Errorf("Server.Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Server.ClientURL != "http://localhost:3000" {
		t.Errorf("Server.ClientURL = %q", cfg.Server.ClientURL)
	}
	if cfg.Server.Production {
		t.Error("Production should default to false")
	}
}

func TestLoadConfig_MissingRequiredVarsAreAggregated(t *testing.T) {
	unsetenv(t, "DB_USER")
	unsetenv(t, "DB_PASSWORD")
	unsetenv(t, "DB_NAME")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig() should fail when required variables are missing")
	}
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error should mention %s, got: %v", key, err)
		}
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("SESSION_TTL", "three hours")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig() should fail on malformed values")
	}
	if !strings.Contains(err.Error(), "DB_PORT") || !strings.Contains(err.Error(), "SESSION_TTL") {
		t.Errorf("error should mention both malformed variables, got: %v", err)
	}
}

func TestLoadConfig_PoolSizeClamping(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("DB_POOL_SIZE", "2")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() should report an out-of-bounds pool size")
	}
}

func TestLoadConfig_ProductionToggle(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Server.Production {
		t.Error("APP_ENV=production should set Production")
	}
	if cfg.Session.TTL != 90*time.Minute {
		t.Errorf("Session.TTL = %s, want 90m", cfg.Session.TTL)
	}
}
