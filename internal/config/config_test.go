package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default tuning should validate: %v", err)
	}
	if cfg.Dt() <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.SoftRescueTicks >= cfg.HardRescueTicks {
		t.Error("soft threshold must stay below hard threshold")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero tick rate", func(c *Tuning) { c.TickRate = 0 }},
		{"zero time scale", func(c *Tuning) { c.TimeScale = 0 }},
		{"negative gravity", func(c *Tuning) { c.Gravity = -10 }},
		{"negative grace", func(c *Tuning) { c.GraceTicks = -1 }},
		{"soft above hard", func(c *Tuning) { c.SoftRescueTicks = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")

	data := "gravity: 42.0\ngrace_ticks: 12\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gravity != 42.0 {
		t.Errorf("gravity = %f, want 42", cfg.Gravity)
	}
	if cfg.GraceTicks != 12 {
		t.Errorf("grace_ticks = %d, want 12", cfg.GraceTicks)
	}
	// Untouched fields keep their defaults.
	if cfg.TickRate != DefaultTickRate {
		t.Errorf("tick_rate = %d, want default %d", cfg.TickRate, DefaultTickRate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid tuning")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")

	cfg := Default()
	cfg.Gravity = 99.0
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Gravity != 99.0 {
		t.Errorf("gravity after round trip = %f, want 99", loaded.Gravity)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	sort.Strings(names)
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	for _, name := range names {
		preset := GetPreset(name)
		if preset == nil {
			t.Fatalf("preset %s not found", name)
		}
		if err := preset.Validate(); err != nil {
			t.Errorf("preset %s should validate: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}
