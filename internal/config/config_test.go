package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_HasExpectedValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.DefaultMinutes != 25 {
		t.Errorf("DefaultConfig().Session.DefaultMinutes = %d, want 25", cfg.Session.DefaultMinutes)
	}
	if cfg.Session.DurationCeiling != 60 {
		t.Errorf("DefaultConfig().Session.DurationCeiling = %d, want 60", cfg.Session.DurationCeiling)
	}
	if cfg.Session.ExtensionCeiling != 30 {
		t.Errorf("DefaultConfig().Session.ExtensionCeiling = %d, want 30", cfg.Session.ExtensionCeiling)
	}
	if cfg.Session.FallbackMinutes != 5 {
		t.Errorf("DefaultConfig().Session.FallbackMinutes = %d, want 5", cfg.Session.FallbackMinutes)
	}

	if cfg.Blocker.Command != "selfcontrol-cli" {
		t.Errorf("DefaultConfig().Blocker.Command = %q, want %q", cfg.Blocker.Command, "selfcontrol-cli")
	}
	if cfg.Blocker.Profile != "focus" {
		t.Errorf("DefaultConfig().Blocker.Profile = %q, want %q", cfg.Blocker.Profile, "focus")
	}

	if cfg.Prompt.TimeoutSeconds != 90 {
		t.Errorf("DefaultConfig().Prompt.TimeoutSeconds = %d, want 90", cfg.Prompt.TimeoutSeconds)
	}
	if cfg.Prompt.MaxRetries != 960 {
		t.Errorf("DefaultConfig().Prompt.MaxRetries = %d, want 960", cfg.Prompt.MaxRetries)
	}

	if cfg.Lock.StaleAfterHours != 6 {
		t.Errorf("DefaultConfig().Lock.StaleAfterHours = %d, want 6", cfg.Lock.StaleAfterHours)
	}
}

func TestMergeWithDefaults_FillsMissingValues(t *testing.T) {
	cfg := &Config{
		Session: SessionConfig{
			DurationCeiling: 90,
			// Other fields empty, should be filled
		},
		Log: LogConfig{
			Path: "/tmp/custom-logs.csv",
		},
	}

	merged := MergeWithDefaults(cfg)

	// Should preserve custom values
	if merged.Session.DurationCeiling != 90 {
		t.Errorf("MergeWithDefaults() should preserve Session.DurationCeiling, got %d", merged.Session.DurationCeiling)
	}
	if merged.Log.Path != "/tmp/custom-logs.csv" {
		t.Errorf("MergeWithDefaults() should preserve Log.Path, got %q", merged.Log.Path)
	}

	// Should fill defaults
	if merged.Session.FallbackMinutes != 5 {
		t.Errorf("MergeWithDefaults() should fill Session.FallbackMinutes, got %d", merged.Session.FallbackMinutes)
	}
	if merged.Blocker.Command != "selfcontrol-cli" {
		t.Errorf("MergeWithDefaults() should fill Blocker.Command, got %q", merged.Blocker.Command)
	}
	if merged.Lock.Path != "~/.focus/focus.lock" {
		t.Errorf("MergeWithDefaults() should fill Lock.Path, got %q", merged.Lock.Path)
	}
}

func TestLoadFromPath_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFilename)

	content := `session:
  default_minutes: 45
  duration_ceiling: 120
blocker:
  profile: deepwork
prompt:
  timeout_seconds: 30
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Session.DefaultMinutes != 45 {
		t.Errorf("Session.DefaultMinutes = %d, want 45", cfg.Session.DefaultMinutes)
	}
	if cfg.Session.DurationCeiling != 120 {
		t.Errorf("Session.DurationCeiling = %d, want 120", cfg.Session.DurationCeiling)
	}
	if cfg.Blocker.Profile != "deepwork" {
		t.Errorf("Blocker.Profile = %q, want %q", cfg.Blocker.Profile, "deepwork")
	}
	if cfg.Prompt.TimeoutSeconds != 30 {
		t.Errorf("Prompt.TimeoutSeconds = %d, want 30", cfg.Prompt.TimeoutSeconds)
	}

	// Unset values fall back to defaults
	if cfg.Session.ExtensionCeiling != 30 {
		t.Errorf("Session.ExtensionCeiling = %d, want default 30", cfg.Session.ExtensionCeiling)
	}
	if cfg.Log.Path != "~/.focus/logs.csv" {
		t.Errorf("Log.Path = %q, want default", cfg.Log.Path)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromPath() expected error for missing file")
	}
}

func TestPromptTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PromptTimeout(); got != 90*time.Second {
		t.Errorf("PromptTimeout() = %v, want 90s", got)
	}
}

func TestStaleAfter(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.StaleAfter(); got != 6*time.Hour {
		t.Errorf("StaleAfter() = %v, want 6h", got)
	}
}

func TestLockTimePath(t *testing.T) {
	cfg := &Config{Lock: LockConfig{Path: "/tmp/focus.lock"}}
	if got := cfg.LockTimePath(); got != "/tmp/focus.lock.time" {
		t.Errorf("LockTimePath() = %q, want %q", got, "/tmp/focus.lock.time")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/logs.csv", filepath.Join(home, "logs.csv")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
