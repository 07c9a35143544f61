package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizedDefaults(t *testing.T) {
	cfg := Config{}.Normalized()
	if cfg.DataDir != "data" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.WorldDir != filepath.Join("data", "world") {
		t.Fatalf("WorldDir = %q", cfg.WorldDir)
	}
	if cfg.LogDir != filepath.Join("data", "logs") {
		t.Fatalf("LogDir = %q", cfg.LogDir)
	}
	if cfg.BrowserPollMillis != 1000 {
		t.Fatalf("BrowserPollMillis = %d", cfg.BrowserPollMillis)
	}
	if cfg.AutomapRadius != 4 {
		t.Fatalf("AutomapRadius = %d", cfg.AutomapRadius)
	}
	if cfg.Seed == "" {
		t.Fatalf("Seed must default")
	}
}

func TestNormalizedPreservesExplicitValues(t *testing.T) {
	cfg := Config{
		DataDir:           "/srv/map",
		BrowserPollMillis: 4000,
		AutomapRadius:     2,
		Seed:              "  alpine  ",
	}.Normalized()
	if cfg.WorldDir != filepath.Join("/srv/map", "world") {
		t.Fatalf("WorldDir = %q", cfg.WorldDir)
	}
	if cfg.BrowserPollMillis != 4000 || cfg.AutomapRadius != 2 {
		t.Fatalf("explicit values clobbered: %+v", cfg)
	}
	if cfg.Seed != "alpine" {
		t.Fatalf("Seed not trimmed: %q", cfg.Seed)
	}
}

func TestNormalizedClampsPollFloor(t *testing.T) {
	cfg := Config{BrowserPollMillis: 50}.Normalized()
	if cfg.BrowserPollMillis != 1000 {
		t.Fatalf("poll floor not applied: %d", cfg.BrowserPollMillis)
	}
}

func TestLoadMissingPathYieldsZeroConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("empty path must not error: %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"port":8080,"seed":"ridge"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Seed != "ridge" {
		t.Fatalf("parsed config wrong: %+v", cfg)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed config must error")
	}
}
