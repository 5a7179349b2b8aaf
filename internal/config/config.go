package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/kinematics"
)

const (
	DefaultL1       = arm.DefaultL1
	DefaultL2       = arm.DefaultL2
	DefaultTheta1   = 45.0
	DefaultTheta2   = -30.0
	DefaultMaxTrail = arm.DefaultMaxTrail
	DefaultWidth    = arm.DefaultWidth
	DefaultHeight   = arm.DefaultHeight
	DefaultFPS      = 60
	DefaultTheme    = "cyberpunk"
	DefaultAddr     = ":8000"

	// MinLength is the smallest link length accepted from input.
	MinLength = 1.0
)

var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the on-disk configuration. Angles are in degrees.
type Config struct {
	L1      float64      `yaml:"l1"`
	L2      float64      `yaml:"l2"`
	Theta1  float64      `yaml:"theta1"`
	Theta2  float64      `yaml:"theta2"`
	Mode    string       `yaml:"mode"`
	ElbowUp bool         `yaml:"elbow_up"`
	Trail   TrailConfig  `yaml:"trail"`
	Canvas  CanvasConfig `yaml:"canvas"`
	View    ViewConfig   `yaml:"view"`
	Server  ServerConfig `yaml:"server"`
}

type TrailConfig struct {
	Enabled bool `yaml:"enabled"`
	Max     int  `yaml:"max"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		L1:      DefaultL1,
		L2:      DefaultL2,
		Theta1:  DefaultTheta1,
		Theta2:  DefaultTheta2,
		Mode:    arm.ModeInverse.String(),
		ElbowUp: true,
		Trail: TrailConfig{
			Enabled: true,
			Max:     DefaultMaxTrail,
		},
		Canvas: CanvasConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that would otherwise reach the arm unchecked.
func (c *Config) Validate() error {
	if err := kinematics.ValidateLengths(c.L1, c.L2); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := arm.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: mode: %v", ErrInvalidConfig, err)
	}
	if c.Trail.Max < 1 {
		return fmt.Errorf("%w: trail.max must be at least 1, got %d", ErrInvalidConfig, c.Trail.Max)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas must have positive size, got %gx%g", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	}
	if c.View.FPS < 1 || c.View.FPS > 240 {
		return fmt.Errorf("%w: view.fps must be in [1, 240], got %d", ErrInvalidConfig, c.View.FPS)
	}
	return nil
}

// ClampLength raises a user-supplied length to MinLength.
func ClampLength(l float64) float64 {
	if !(l >= MinLength) {
		return MinLength
	}
	return l
}

// ArmConfig converts to the controller's configuration.
func (c *Config) ArmConfig() (arm.Config, error) {
	mode, err := arm.ParseMode(c.Mode)
	if err != nil {
		return arm.Config{}, err
	}
	return arm.Config{
		L1:           c.L1,
		L2:           c.L2,
		Theta1:       kinematics.Radians(c.Theta1),
		Theta2:       kinematics.Radians(c.Theta2),
		Mode:         mode,
		ElbowUp:      c.ElbowUp,
		TrailEnabled: c.Trail.Enabled,
		MaxTrail:     c.Trail.Max,
		Width:        c.Canvas.Width,
		Height:       c.Canvas.Height,
	}, nil
}
