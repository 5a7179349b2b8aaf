package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/twolink/internal/arm"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "ik" {
		t.Errorf("expected mode ik, got %s", cfg.Mode)
	}
	if cfg.L1 <= 0 || cfg.L2 <= 0 {
		t.Error("link lengths should be positive")
	}
	if cfg.Trail.Max != 80 {
		t.Errorf("expected trail max 80, got %d", cfg.Trail.Max)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.yaml")
	want := GetPreset("long_reach")
	want.View.Theme = "ocean"

	if err := Save(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero l1", func(c *Config) { c.L1 = 0 }},
		{"negative l2", func(c *Config) { c.L2 = -10 }},
		{"bad mode", func(c *Config) { c.Mode = "jacobian" }},
		{"zero trail", func(c *Config) { c.Trail.Max = 0 }},
		{"empty canvas", func(c *Config) { c.Canvas.Width = 0 }},
		{"fps too high", func(c *Config) { c.View.FPS = 1000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestArmConfig(t *testing.T) {
	cfg := GetPreset("fk_demo")

	ac, err := cfg.ArmConfig()
	if err != nil {
		t.Fatalf("arm config: %v", err)
	}
	if ac.Mode != arm.ModeForward {
		t.Errorf("expected forward mode, got %s", ac.Mode)
	}
	if math.Abs(ac.Theta1-math.Pi/6) > 1e-12 {
		t.Errorf("expected theta1 pi/6, got %g", ac.Theta1)
	}
	if math.Abs(ac.Theta2-math.Pi/3) > 1e-12 {
		t.Errorf("expected theta2 pi/3, got %g", ac.Theta2)
	}
}

func TestClampLength(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{120, 120},
		{0, MinLength},
		{-4, MinLength},
		{math.NaN(), MinLength},
	}
	for _, tt := range tests {
		if got := ClampLength(tt.in); got != tt.want {
			t.Errorf("ClampLength(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("equal")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.L1 != cfg.L2 {
		t.Errorf("expected equal links, got %g and %g", cfg.L1, cfg.L2)
	}

	cfg.L1 = 1
	if Presets["equal"].L1 == 1 {
		t.Error("GetPreset returned shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := MustPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
