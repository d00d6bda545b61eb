package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Fatalf("expected base url %q, got %q", DefaultBaseURL, cfg.API.BaseURL)
	}
	if cfg.Assistant.ThinkDelayMS != 700 {
		t.Fatalf("expected think delay 700, got %d", cfg.Assistant.ThinkDelayMS)
	}
	if cfg.Sync.DiscardStale {
		t.Fatal("expected discard_stale to default to false")
	}
	if cfg.API.TimeoutSec != 30 {
		t.Fatalf("expected timeout 30, got %d", cfg.API.TimeoutSec)
	}
}

func TestLoadConfigEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("PLANNER_API_BASE_URL", "http://planner.internal:9000/")
	t.Setenv("PLANNER_USER_ID", "user-42")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != "http://planner.internal:9000" {
		t.Fatalf("expected env base url without trailing slash, got %q", cfg.API.BaseURL)
	}
	if cfg.User.ID != "user-42" {
		t.Fatalf("expected user id from env, got %q", cfg.User.ID)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
user:
  id: abc
api:
  base_url: http://example.test
sync:
  discard_stale: true
  refresh_interval_sec: 60
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.User.ID != "abc" {
		t.Fatalf("expected user id abc, got %q", cfg.User.ID)
	}
	if !cfg.Sync.DiscardStale || cfg.Sync.RefreshIntervalSec != 60 {
		t.Fatalf("unexpected sync config: %+v", cfg.Sync)
	}
	if cfg.Mail.Port != 993 {
		t.Fatalf("expected default mail port, got %d", cfg.Mail.Port)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-02-28", 1, "2024-02-29"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"not-a-date", 1, "not-a-date"},
	}
	for _, tt := range tests {
		if got := AddDays(tt.in, tt.n); got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
