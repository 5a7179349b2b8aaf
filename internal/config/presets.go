package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"equal": preset(func(c *Config) {
		c.L1, c.L2 = 110, 110
	}),
	"long_reach": preset(func(c *Config) {
		c.L1, c.L2 = 180, 160
		c.Trail.Max = 160
	}),
	"stubby": preset(func(c *Config) {
		c.L1, c.L2 = 140, 40
	}),
	"fk_demo": preset(func(c *Config) {
		c.Mode = "fk"
		c.Theta1, c.Theta2 = 30, 60
	}),
	"elbow_down": preset(func(c *Config) {
		c.ElbowUp = false
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// MustPreset is GetPreset with an error for unknown names.
func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%q (available: %v): %w", name, ListPresets(), ErrUnknownPreset)
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
