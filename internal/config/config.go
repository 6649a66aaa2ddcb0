// Package config loads trajectory run settings from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig reports a configuration that cannot be run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Integrator names.
const (
	IntegratorExplicit = "explicit"
	IntegratorImplicit = "implicit"
)

// Metric names.
const (
	MetricDiag       = "diag"
	MetricRiemannian = "riemannian"
)

// Model names.
const (
	ModelNormal = "normal"
	ModelFunnel = "funnel"
)

// Config describes one simulated trajectory.
type Config struct {
	Model      string `yaml:"model"`      // normal or funnel
	Dim        int    `yaml:"dim"`        // number of position coordinates
	Integrator string `yaml:"integrator"` // explicit or implicit
	Metric     string `yaml:"metric"`     // diag or riemannian

	StepSize float64 `yaml:"step_size"`
	NumSteps int     `yaml:"num_steps"`
	Seed     uint64  `yaml:"seed"`

	// Independent trajectories, chain i seeded with Seed+i.
	Chains  int `yaml:"chains"`
	Workers int `yaml:"workers"` // concurrent chains; 0 means one per CPU

	// Position to start from; zero when empty.
	Init []float64 `yaml:"init"`

	MaxNumFixedPoint    int     `yaml:"max_num_fixed_point"`
	FixedPointThreshold float64 `yaml:"fixed_point_threshold"`
}

// Default returns the default configuration: a 3-dimensional funnel
// integrated with the implicit leapfrog under its Riemannian metric.
func Default() Config {
	return Config{
		Model:               ModelFunnel,
		Dim:                 3,
		Integrator:          IntegratorImplicit,
		Metric:              MetricRiemannian,
		StepSize:            0.05,
		NumSteps:            20,
		Seed:                1,
		Chains:              1,
		MaxNumFixedPoint:    10,
		FixedPointThreshold: 1e-8,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable trajectory.
func (c Config) Validate() error {
	switch c.Model {
	case ModelNormal:
		if c.Dim < 1 {
			return fmt.Errorf("%w: dim %d, want at least 1", ErrInvalidConfig, c.Dim)
		}
	case ModelFunnel:
		if c.Dim < 2 {
			return fmt.Errorf("%w: funnel needs dim of at least 2, got %d", ErrInvalidConfig, c.Dim)
		}
	default:
		return fmt.Errorf("%w: unknown model %q", ErrInvalidConfig, c.Model)
	}

	switch c.Integrator {
	case IntegratorExplicit, IntegratorImplicit:
	default:
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalidConfig, c.Integrator)
	}

	switch c.Metric {
	case MetricDiag:
	case MetricRiemannian:
		if c.Integrator == IntegratorExplicit {
			return fmt.Errorf("%w: the explicit integrator cannot simulate a riemannian metric", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, c.Metric)
	}

	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 1) {
		return fmt.Errorf("%w: step_size %v, want positive", ErrInvalidConfig, c.StepSize)
	}
	if c.NumSteps < 1 {
		return fmt.Errorf("%w: num_steps %d, want at least 1", ErrInvalidConfig, c.NumSteps)
	}
	if c.Chains < 1 {
		return fmt.Errorf("%w: chains %d, want at least 1", ErrInvalidConfig, c.Chains)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d, want non-negative", ErrInvalidConfig, c.Workers)
	}
	if c.Init != nil && len(c.Init) != c.Dim {
		return fmt.Errorf("%w: init has %d entries, dim is %d", ErrInvalidConfig, len(c.Init), c.Dim)
	}
	return nil
}
