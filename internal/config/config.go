// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	registry "rainscape/internal/core"
	"rainscape/internal/logger"
	"rainscape/internal/scenegen"
	"rainscape/internal/sims/rain"
	"rainscape/pkg/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Scene   SceneConfig   `yaml:"scene"`
	Rain    RainConfig    `yaml:"rain"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ViewerConfig holds display settings. Width and Height are simulation
// cells; the ebiten viewer multiplies them by Scale.
type ViewerConfig struct {
	Sim      string `yaml:"sim"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Scale    int    `yaml:"scale"`
	TPS      int    `yaml:"tps"`
	HUDWidth int    `yaml:"hud_width"`
}

// SceneConfig controls the procedural scene.
type SceneConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Seed            int64   `yaml:"seed"`
	Horizon         float64 `yaml:"horizon"`
	ObjectThreshold float64 `yaml:"object_threshold"`
	NoiseScale      float64 `yaml:"noise_scale"`
}

// RainConfig holds the simulation seed and tunables.
type RainConfig struct {
	Seed   uint32      `yaml:"seed"`
	Params rain.Params `yaml:"params"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := scenegen.DefaultOptions()
	return &Config{
		Viewer: ViewerConfig{
			Sim:      "rain",
			Width:    320,
			Height:   180,
			Scale:    3,
			TPS:      60,
			HUDWidth: 260,
		},
		Scene: SceneConfig{
			Width:           opts.W,
			Height:          opts.H,
			Seed:            opts.Seed,
			Horizon:         opts.Horizon,
			ObjectThreshold: opts.ObjectThreshold,
			NoiseScale:      opts.NoiseScale,
		},
		Rain: RainConfig{
			Seed:   core.DefaultSeed,
			Params: rain.DefaultParams(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
			Path: "/metrics",
		},
	}
}

// SceneOptions converts the scene section for the generator.
func (c *Config) SceneOptions() scenegen.Options {
	return scenegen.Options{
		W:               c.Scene.Width,
		H:               c.Scene.Height,
		Seed:            c.Scene.Seed,
		Horizon:         c.Scene.Horizon,
		ObjectThreshold: c.Scene.ObjectThreshold,
		NoiseScale:      c.Scene.NoiseScale,
	}
}

// WorldConfig builds the rain world configuration for the viewer size.
func (c *Config) WorldConfig() rain.Config {
	return rain.Config{
		Width:  c.Viewer.Width,
		Height: c.Viewer.Height,
		Seed:   c.Rain.Seed,
		Params: c.Rain.Params,
	}
}

// LoggerOptions converts the logging section. Console output is left to
// the caller.
func (c *Config) LoggerOptions(console bool) logger.Options {
	opts := logger.Options{Level: c.Logging.Level, Console: console}
	if c.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(c.Logging.LogFile)
	}
	return opts
}

// Validate reports every setting the viewers cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	_, known := registry.Sims()[c.Viewer.Sim]
	check(known, "viewer sim %q is not registered", c.Viewer.Sim)
	check(c.Viewer.Width > 0 && c.Viewer.Height > 0, "viewer size %dx%d", c.Viewer.Width, c.Viewer.Height)
	check(c.Viewer.Scale >= 1, "viewer scale %d", c.Viewer.Scale)
	check(c.Viewer.TPS >= 1, "viewer tps %d", c.Viewer.TPS)
	check(c.Viewer.HUDWidth >= 0, "viewer hud_width %d", c.Viewer.HUDWidth)

	check(c.Scene.Width > 0 && c.Scene.Height > 0, "scene size %dx%d", c.Scene.Width, c.Scene.Height)
	check(c.Scene.Horizon >= 0 && c.Scene.Horizon < 1, "scene horizon %v", c.Scene.Horizon)
	check(c.Scene.NoiseScale > 0, "scene noise_scale %v", c.Scene.NoiseScale)

	p := c.Rain.Params
	check(p.VelNear > 0 && p.VelFar > 0, "rain fall speeds %v/%v", p.VelNear, p.VelFar)
	check(p.GroundNear > 0 && p.GroundNear <= 1, "rain ground_near %v", p.GroundNear)
	check(p.GroundFar > 0 && p.GroundFar <= 1, "rain ground_far %v", p.GroundFar)
	check(p.SplashChance >= 0 && p.SplashChance <= 1, "rain splash_chance %v", p.SplashChance)
	check(p.SlideChance >= 0 && p.SlideChance <= 1, "rain slide_chance %v", p.SlideChance)
	check(p.DepthMargin >= 0 && p.DepthMargin <= 255, "rain depth_margin %d", p.DepthMargin)
	check(p.FlowSpeed >= 0, "rain flow_speed %v", p.FlowSpeed)
	check(p.FlowLifetime >= 1 && p.FlowLifetime <= 255, "rain flow_lifetime %d", p.FlowLifetime)
	check(p.SpawnDivisor >= 1, "rain spawn_divisor %d", p.SpawnDivisor)

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		check(false, "logging level %q", c.Logging.Level)
	}

	if c.Metrics.Enabled {
		check(c.Metrics.Addr != "", "metrics addr is empty")
		check(len(c.Metrics.Path) > 0 && c.Metrics.Path[0] == '/', "metrics path %q", c.Metrics.Path)
	}

	return errors.Join(errs...)
}
