package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_RequiresBackendURL(t *testing.T) {
	os.Unsetenv("BACKEND_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BACKEND_URL is missing")
	}
}

func TestLoad_WithBackendURL(t *testing.T) {
	os.Setenv("BACKEND_URL", "http://localhost:4000")
	defer os.Unsetenv("BACKEND_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BackendURL != "http://localhost:4000" {
		t.Errorf("expected BACKEND_URL to be set, got %s", cfg.BackendURL)
	}

	if cfg.ChatURL != "http://localhost:5000/api/chat" {
		t.Errorf("expected default chat URL, got %s", cfg.ChatURL)
	}

	if cfg.VideoDomain != "meet.jit.si" {
		t.Errorf("expected default video domain meet.jit.si, got %s", cfg.VideoDomain)
	}

	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("expected default timeout 15s, got %s", cfg.HTTPTimeout)
	}

	if cfg.Currency != "MAD " {
		t.Errorf("expected default currency 'MAD ', got %q", cfg.Currency)
	}

	if cfg.StateDir == "" || !strings.HasSuffix(cfg.StateDir, ".medibook") {
		t.Errorf("expected STATE_DIR to default under the home directory, got %s", cfg.StateDir)
	}
}

func TestLoad_StateDirOverride(t *testing.T) {
	os.Setenv("BACKEND_URL", "http://localhost:4000")
	os.Setenv("STATE_DIR", "/tmp/medibook-test")
	defer os.Unsetenv("BACKEND_URL")
	defer os.Unsetenv("STATE_DIR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StateDir != "/tmp/medibook-test" {
		t.Errorf("expected STATE_DIR override, got %s", cfg.StateDir)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{
		BackendURL:  "http://localhost:4000",
		ChatURL:     "http://localhost:5000/api/chat",
		VideoDomain: "meet.jit.si",
		HTTPTimeout: 15 * time.Second,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := *c
	bad.ChatURL = "localhost:5000"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for non-http chat URL")
	}

	bad = *c
	bad.HTTPTimeout = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}

	bad = *c
	bad.VideoDomain = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty video domain")
	}
}
