package config

import "github.com/kilianp07/routeeta/infra/render"

// RenderConfig defines where route maps are written and how location labels
// map to coordinates.
type RenderConfig struct {
	OutputDir string                        `json:"output_dir"`
	Locations map[string]render.Coordinates `json:"locations"`
}

func (c *RenderConfig) SetDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
}
