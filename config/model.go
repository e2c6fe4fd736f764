package config

import (
	"fmt"

	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/model"
	"github.com/kilianp07/routeeta/core/prediction"
)

// ModelConfig tunes training and optimization. An unset Seed selects the
// default seed.
type ModelConfig struct {
	Fitter             factory.ModuleConfig `json:"fitter"`
	Seed               *uint64              `json:"seed"`
	EvalRatio          float64              `json:"eval_ratio"`
	OptimizationFactor float64              `json:"optimization_factor"`
}

// SetDefaults applies the predictor defaults.
func (c *ModelConfig) SetDefaults() {
	if c.Fitter.Type == "" {
		c.Fitter.Type = "ols"
	}
	if c.Seed == nil {
		seed := uint64(prediction.DefaultSeed)
		c.Seed = &seed
	}
	if c.EvalRatio == 0 {
		c.EvalRatio = prediction.DefaultEvalRatio
	}
	if c.OptimizationFactor == 0 {
		c.OptimizationFactor = prediction.DefaultOptimizationFactor
	}
}

// Validate checks ratio bounds.
func (c ModelConfig) Validate() error {
	if c.EvalRatio < 0 || c.EvalRatio >= 1 {
		return fmt.Errorf("eval_ratio must be in [0,1), got %v", c.EvalRatio)
	}
	if c.OptimizationFactor < 0 || c.OptimizationFactor > 1 {
		return fmt.Errorf("optimization_factor must be in [0,1], got %v", c.OptimizationFactor)
	}
	return nil
}

// Predictor converts the section into prediction settings.
func (c ModelConfig) Predictor() prediction.Config {
	seed := uint64(prediction.DefaultSeed)
	if c.Seed != nil {
		seed = *c.Seed
	}
	return prediction.Config{
		Seed:               seed,
		EvalRatio:          c.EvalRatio,
		OptimizationFactor: c.OptimizationFactor,
	}
}

// RegistryConfig configures the route registry.
type RegistryConfig struct {
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
}

func (c *RegistryConfig) SetDefaults() {
	if c.AverageSpeedKmh == 0 {
		c.AverageSpeedKmh = model.DefaultAverageSpeedKmh
	}
}

func (c RegistryConfig) Validate() error {
	if c.AverageSpeedKmh < 0 {
		return fmt.Errorf("average_speed_kmh must be positive, got %v", c.AverageSpeedKmh)
	}
	return nil
}

// RouteConfig seeds the registry at startup.
type RouteConfig struct {
	ID         string  `json:"id"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	DistanceKm float64 `json:"distance_km"`
}

func (c RouteConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	if c.DistanceKm < 0 {
		return fmt.Errorf("route %s: distance_km must not be negative", c.ID)
	}
	return nil
}
