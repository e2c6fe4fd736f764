package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/routeeta/core/prediction"
)

//nolint:gocyclo
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `logging:
  level: debug
model:
  fitter:
    type: ridge
    conf:
      lambda: 0.5
  seed: 7
  eval_ratio: 0.25
registry:
  average_speed_kmh: 80
history:
  type: csv
  conf:
    path: history.csv
metrics:
  sinks:
    - type: "nop"
journal:
  path: predictions.jsonl
render:
  output_dir: maps
  locations:
    Paris:
      lat: 48.85
      lon: 2.35
routes:
  - id: R1
    start: Chicago
    end: Detroit
    distance_km: 450
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"logging.level", cfg.Logging.Level, "debug"},
		{"model.fitter", cfg.Model.Fitter.Type, "ridge"},
		{"model.seed", *cfg.Model.Seed, uint64(7)},
		{"model.eval_ratio", cfg.Model.EvalRatio, 0.25},
		{"model.optimization_factor", cfg.Model.OptimizationFactor, prediction.DefaultOptimizationFactor},
		{"registry.speed", cfg.Registry.AverageSpeedKmh, 80.0},
		{"history.type", cfg.History.Type, "csv"},
		{"history.path", cfg.History.Conf["path"], "history.csv"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"journal.backend", cfg.Journal.Backend, "jsonl"},
		{"render.output_dir", cfg.Render.OutputDir, "maps"},
		{"render.paris.lat", cfg.Render.Locations["Paris"].Lat, 48.85},
		{"routes", len(cfg.Routes), 1},
		{"routes[0].distance", cfg.Routes[0].DistanceKm, 450.0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level: %s", cfg.Logging.Level)
	}
	if cfg.Model.Seed == nil || *cfg.Model.Seed != prediction.DefaultSeed || cfg.Model.EvalRatio != prediction.DefaultEvalRatio {
		t.Errorf("model defaults: %+v", cfg.Model)
	}
	if cfg.Model.Fitter.Type != "ols" {
		t.Errorf("fitter: %s", cfg.Model.Fitter.Type)
	}
	if cfg.Registry.AverageSpeedKmh != 60 {
		t.Errorf("speed: %v", cfg.Registry.AverageSpeedKmh)
	}
	if cfg.Journal.Path != "" || cfg.History.Type != "" {
		t.Errorf("optional sections should stay disabled")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ETA_MODEL__SEED", "9")
	t.Setenv("ETA_MODEL__EVAL_RATIO", "0.3")
	t.Setenv("ETA_LOGGING__LEVEL", "warn")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Model.Seed == nil || *cfg.Model.Seed != 9 {
		t.Errorf("seed: %v", cfg.Model.Seed)
	}
	if cfg.Model.EvalRatio != 0.3 {
		t.Errorf("eval_ratio: %v", cfg.Model.EvalRatio)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level: %s", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "model:\n  seed: 7\nregistry:\n  average_speed_kmh: 80\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ETA_REGISTRY__AVERAGE_SPEED_KMH", "90")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Registry.AverageSpeedKmh != 90 {
		t.Errorf("speed: %v", cfg.Registry.AverageSpeedKmh)
	}
	if *cfg.Model.Seed != 7 {
		t.Errorf("seed: %d", *cfg.Model.Seed)
	}
}

func TestSeedZeroIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model:\n  seed: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Model.Seed == nil || *cfg.Model.Seed != 0 {
		t.Fatalf("seed: %v", cfg.Model.Seed)
	}
	if got := cfg.Model.Predictor().Seed; got != 0 {
		t.Fatalf("predictor seed: %d", got)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for toml")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"eval_ratio", func(c *Config) { c.Model.EvalRatio = 1 }},
		{"factor", func(c *Config) { c.Model.OptimizationFactor = 1.5 }},
		{"speed", func(c *Config) { c.Registry.AverageSpeedKmh = -1 }},
		{"journal", func(c *Config) { c.Journal.Backend = "postgres" }},
		{"route id", func(c *Config) { c.Routes = []RouteConfig{{DistanceKm: 1}} }},
		{"route distance", func(c *Config) { c.Routes = []RouteConfig{{ID: "R", DistanceKm: -1}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.SetDefaults()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
