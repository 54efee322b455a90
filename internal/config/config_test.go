package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Function == "" {
		t.Error("default function should not be empty")
	}
	if cfg.H <= 0 {
		t.Error("h should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero h", func(c *Config) { c.H = 0 }},
		{"negative h", func(c *Config) { c.H = -0.1 }},
		{"reversed interval", func(c *Config) { c.XEnd = c.X0 - 1 }},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"negative decimals", func(c *Config) { c.Decimals = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Function = "x*y^2"
	cfg.H = 0.05
	cfg.Iterations = 5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Function != cfg.Function || loaded.H != cfg.H || loaded.Iterations != cfg.Iterations {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("exponential")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Function != "y" {
		t.Errorf("expected function y, got %s", cfg.Function)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestPresetsAllValid(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
