package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScene       = "particles"
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultMaxDt       = 0.1
	DefaultRecordEvery = 1
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Scene       string             `yaml:"scene"`
	Dt          float64            `yaml:"dt"`
	Duration    float64            `yaml:"duration"`
	MaxDt       float64            `yaml:"max_dt"`
	Seed        int64              `yaml:"seed"`
	RecordEvery int                `yaml:"record_every"`
	Params      map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:       DefaultScene,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		MaxDt:       DefaultMaxDt,
		Seed:        1,
		RecordEvery: DefaultRecordEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read parses a config file without defaults or validation, so that only
// the fields it sets take part in an Overlay.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene is empty", ErrInvalid)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	case c.MaxDt < 0:
		return fmt.Errorf("%w: max_dt must not be negative, got %g", ErrInvalid, c.MaxDt)
	case c.RecordEvery < 0:
		return fmt.Errorf("%w: record_every must not be negative, got %d", ErrInvalid, c.RecordEvery)
	}
	return nil
}

// Clone returns a deep copy so presets are never mutated through callers.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// Overlay copies every set field of o over c. Zero values in o are left
// alone; params are merged key by key.
func (c *Config) Overlay(o *Config) {
	if o == nil {
		return
	}
	if o.Scene != "" {
		c.Scene = o.Scene
	}
	if o.Dt != 0 {
		c.Dt = o.Dt
	}
	if o.Duration != 0 {
		c.Duration = o.Duration
	}
	if o.MaxDt != 0 {
		c.MaxDt = o.MaxDt
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.RecordEvery != 0 {
		c.RecordEvery = o.RecordEvery
	}
	if len(o.Params) > 0 && c.Params == nil {
		c.Params = make(map[string]float64, len(o.Params))
	}
	for k, v := range o.Params {
		c.Params[k] = v
	}
}
