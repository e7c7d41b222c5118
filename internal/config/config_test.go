package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CALKEEP_CONFIG", "CALKEEP_EVENTS_PATH", "CALKEEP_LOG_LEVEL"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EventsPath != "samples/events.json" {
		t.Fatalf("unexpected events path: %q", cfg.EventsPath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calkeep.yaml")
	if err := os.WriteFile(path, []byte("events_path: /tmp/events.json\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EventsPath != "/tmp/events.json" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calkeep.yaml")
	if err := os.WriteFile(path, []byte("events_path: /tmp/from-file.json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CALKEEP_CONFIG", path)
	t.Setenv("CALKEEP_EVENTS_PATH", "/tmp/from-env.json")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EventsPath != "/tmp/from-env.json" {
		t.Fatalf("env did not override file: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte(":\t not yaml ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for invalid yaml")
	}

	t.Setenv("CALKEEP_LOG_LEVEL", "trace")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestValidate(t *testing.T) {
	cases := []Config{
		{EventsPath: "", LogLevel: "info"},
		{EventsPath: "x", LogLevel: "loud"},
	}
	for _, tc := range cases {
		if err := tc.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", tc)
		}
	}
	if err := (Config{EventsPath: "x", LogLevel: "WARN"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
