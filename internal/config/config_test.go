package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PLANTPULSE_API_URL", "PLANTPULSE_TIMEOUT_SECS", "PLANTPULSE_EMAIL",
		"PLANTPULSE_NAME", "PLANTPULSE_PHOTO", "PLANTPULSE_TOKEN",
		"PLANTPULSE_DB", "PLANTPULSE_LOG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.APIBaseURL != defaultBaseURL {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.UserEmail != "" || cfg.Token != "" {
		t.Fatal("credentials should default to empty")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANTPULSE_API_URL", "http://localhost:5000")
	t.Setenv("PLANTPULSE_TIMEOUT_SECS", "30")
	t.Setenv("PLANTPULSE_EMAIL", "ana@example.com")
	t.Setenv("PLANTPULSE_NAME", "Ana")
	t.Setenv("PLANTPULSE_TOKEN", "tok123")

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.UserEmail != "ana@example.com" || cfg.UserName != "Ana" || cfg.Token != "tok123" {
		t.Fatalf("identity not loaded: %+v", cfg)
	}
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANTPULSE_TIMEOUT_SECS", "not a number")

	if cfg := Load(); cfg.APITimeout != 15*time.Second {
		t.Fatalf("APITimeout = %v, want the default", cfg.APITimeout)
	}

	t.Setenv("PLANTPULSE_TIMEOUT_SECS", "-5")
	if cfg := Load(); cfg.APITimeout != 15*time.Second {
		t.Fatalf("APITimeout = %v, want the default", cfg.APITimeout)
	}
}

func TestDefaultPaths(t *testing.T) {
	db, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if db == "" {
		t.Fatal("empty db path")
	}

	log, err := DefaultLogPath()
	if err != nil {
		t.Fatal(err)
	}
	if log == "" {
		t.Fatal("empty log path")
	}
	if db == log {
		t.Fatal("db and log should be distinct files")
	}
}
