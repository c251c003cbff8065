package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MinDelay != 2*time.Second || cfg.MaxDelay != 5*time.Second {
		t.Errorf("delay defaults = %v..%v", cfg.MinDelay, cfg.MaxDelay)
	}
	if cfg.LongPauseInterval != 50 {
		t.Errorf("LongPauseInterval = %d, want 50", cfg.LongPauseInterval)
	}
	if cfg.MaxProfilesPerSession != 500 {
		t.Errorf("MaxProfilesPerSession = %d, want 500", cfg.MaxProfilesPerSession)
	}
	if cfg.LoginTimeout != 300*time.Second {
		t.Errorf("LoginTimeout = %v, want 300s", cfg.LoginTimeout)
	}
	if cfg.BaseURL != "https://www.linkedin.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MIN_DELAY", "0.5")
	t.Setenv("LONG_PAUSE_INTERVAL", "10")
	t.Setenv("HEADLESS", "true")
	t.Setenv("MAX_PROFILES_PER_SESSION", "not-a-number")

	cfg := Load()

	if cfg.MinDelay != 500*time.Millisecond {
		t.Errorf("MinDelay = %v, want 0.5s", cfg.MinDelay)
	}
	if cfg.LongPauseInterval != 10 {
		t.Errorf("LongPauseInterval = %d, want 10", cfg.LongPauseInterval)
	}
	if !cfg.Headless {
		t.Error("Headless should be true")
	}
	if cfg.MaxProfilesPerSession != 500 {
		t.Errorf("invalid numbers must fall back to the default, got %d", cfg.MaxProfilesPerSession)
	}
}

func TestLoadSelectorOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	content := []byte(`
selectors:
  name:
    - ".new-name-class"
    - ".older-name-class"
  next:
    - "button[aria-label='Siguiente']"
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	overrides, err := LoadSelectorOverrides(path)
	if err != nil {
		t.Fatalf("LoadSelectorOverrides() error = %v", err)
	}

	if len(overrides.Selectors["name"]) != 2 {
		t.Errorf("name selectors = %v", overrides.Selectors["name"])
	}
	if overrides.Selectors["next"][0] != "button[aria-label='Siguiente']" {
		t.Errorf("next selectors = %v", overrides.Selectors["next"])
	}
}

func TestLoadSelectorOverridesMissingFile(t *testing.T) {
	if _, err := LoadSelectorOverrides("/nonexistent/selectors.yaml"); err == nil {
		t.Error("LoadSelectorOverrides() should fail for a missing file")
	}
}
