package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultH          = 0.1
	DefaultXEnd       = 1.0
	DefaultIterations = 1
	DefaultDecimals   = 8
	DefaultTimeoutSec = 3.0
)

// Config describes one solver run. CLI flags override file values.
type Config struct {
	Function   string  `yaml:"function"`
	Method     string  `yaml:"method"`
	X0         float64 `yaml:"x0"`
	Y0         float64 `yaml:"y0"`
	XEnd       float64 `yaml:"x_end"`
	H          float64 `yaml:"h"`
	Iterations int     `yaml:"iterations"`
	Decimals   int     `yaml:"decimals"`
	TimeoutSec float64 `yaml:"solve_timeout_sec"`
}

func DefaultConfig() *Config {
	return &Config{
		Function:   "y",
		Method:     "both",
		X0:         0,
		Y0:         1,
		XEnd:       DefaultXEnd,
		H:          DefaultH,
		Iterations: DefaultIterations,
		Decimals:   DefaultDecimals,
		TimeoutSec: DefaultTimeoutSec,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate mirrors the core invariants so front-ends can reject bad
// parameters before a run; the integrators re-check them regardless.
func (c *Config) Validate() error {
	if c.H <= 0 {
		return fmt.Errorf("h must be positive, got %g", c.H)
	}
	if c.XEnd <= c.X0 {
		return fmt.Errorf("x_end (%g) must be greater than x0 (%g)", c.XEnd, c.X0)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.Decimals < 0 || c.Decimals > 20 {
		return fmt.Errorf("decimals must be between 0 and 20, got %d", c.Decimals)
	}
	return nil
}
