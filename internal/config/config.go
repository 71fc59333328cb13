package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
)

const (
	DefaultLogLevel = "info"
	DefaultLogEvery = 1000
	EnvPrefix       = "IGNITE_"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Name       string              `yaml:"name,omitempty"`
	Conditions ignition.Conditions `yaml:"conditions"`
	Params     ignition.Params     `yaml:"params"`
	LogLevel   string              `yaml:"log_level"`
	LogEvery   int                 `yaml:"log_every"`
}

// envOverrides holds the values that may be set from IGNITE_* variables.
// Unset variables leave the pre-filled value untouched.
type envOverrides struct {
	Temp        float64 `env:"TEMP"`
	Pressure    float64 `env:"PRESSURE"`
	PressureBar float64 `env:"PRESSURE_BAR"`
	Dt          float64 `env:"DT"`
	Tau         float64 `env:"TAU"`
	LogLevel    string  `env:"LOG_LEVEL"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "standard",
		Conditions: ignition.DefaultConditions(),
		Params:     ignition.DefaultParams(),
		LogLevel:   DefaultLogLevel,
		LogEvery:   DefaultLogEvery,
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if err := c.Conditions.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("%w: log_every must be non-negative, got %d", ErrInvalidConfig, c.LogEvery)
	}
	return nil
}

// Load reads a YAML file on top of the defaults, so a file only needs the
// fields it changes.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file on top of base.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides conditions, step size, horizon and log level from the
// process environment.
func ApplyEnv(cfg *Config) error {
	return ApplyEnvFrom(cfg, nil)
}

// ApplyEnvFrom is ApplyEnv with an explicit environment; nil means the
// process environment.
func ApplyEnvFrom(cfg *Config, environ map[string]string) error {
	o := envOverrides{
		Temp:        cfg.Conditions.Temp,
		Pressure:    cfg.Conditions.Pressure,
		PressureBar: cfg.Conditions.PressureBar,
		Dt:          cfg.Params.Dt,
		Tau:         cfg.Params.Tau,
		LogLevel:    cfg.LogLevel,
	}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.Conditions.Temp = o.Temp
	cfg.Conditions.Pressure = o.Pressure
	cfg.Conditions.PressureBar = o.PressureBar
	cfg.Params.Dt = o.Dt
	cfg.Params.Tau = o.Tau
	cfg.LogLevel = o.LogLevel
	return nil
}
