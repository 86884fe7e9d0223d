package rain

import (
	"strconv"

	"rainscape/pkg/core"
)

// Params holds the visual-feel tunables. None of them are derived from a
// physical model.
type Params struct {
	// Droplet fall speed at z=0 (near) and z=1 (far), in pixels per tick.
	VelNear float32 `yaml:"vel_near"`
	VelFar  float32 `yaml:"vel_far"`

	// Ground line as a fraction of screen height for near and far drops.
	GroundNear float32 `yaml:"ground_near"`
	GroundFar  float32 `yaml:"ground_far"`

	SplashChance float32 `yaml:"splash_chance"`
	SlideChance  float32 `yaml:"slide_chance"`

	// DepthMargin is the byte distance within which a drop meets geometry.
	DepthMargin int `yaml:"depth_margin"`

	FlowSpeed    float32 `yaml:"flow_speed"`
	FlowLifetime int     `yaml:"flow_lifetime"`

	// One new drop per SpawnDivisor screen columns, plus one, every tick.
	SpawnDivisor int `yaml:"spawn_divisor"`
}

// Config controls the rain world dimensions and seed.
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Seed   uint32 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		VelNear:      1.7,
		VelFar:       0.35,
		GroundNear:   1.0,
		GroundFar:    0.4,
		SplashChance: 0.7,
		SlideChance:  0.6,
		DepthMargin:  48,
		FlowSpeed:    0.4,
		FlowLifetime: 120,
		SpawnDivisor: 64,
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  320,
		Height: 180,
		Seed:   core.DefaultSeed,
		Params: DefaultParams(),
	}
}

// MinFallSpeed keeps droplets moving down the screen.
const MinFallSpeed = 0.05

// Sanitize clamps values the simulation cannot run with.
func (p *Params) Sanitize() {
	if p.DepthMargin < 0 {
		p.DepthMargin = 0
	}
	if p.DepthMargin > 255 {
		p.DepthMargin = 255
	}
	if p.FlowLifetime < 1 {
		p.FlowLifetime = 1
	}
	if p.FlowLifetime > 255 {
		p.FlowLifetime = 255
	}
	if p.SpawnDivisor < 1 {
		p.SpawnDivisor = 1
	}
	p.SplashChance = clamp01(p.SplashChance)
	p.SlideChance = clamp01(p.SlideChance)
	if p.FlowSpeed < 0 {
		p.FlowSpeed = 0
	}
	p.VelNear = max(p.VelNear, MinFallSpeed)
	p.VelFar = max(p.VelFar, MinFallSpeed)
}

func (p *Params) depthMargin() uint8 { return uint8(p.DepthMargin) }

func (p *Params) flowLifetime() uint8 { return uint8(p.FlowLifetime) }

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 0, 32); err == nil {
			c.Seed = uint32(parsed)
		}
	}

	floats := map[string]*float32{
		"vel_near":      &c.Params.VelNear,
		"vel_far":       &c.Params.VelFar,
		"ground_near":   &c.Params.GroundNear,
		"ground_far":    &c.Params.GroundFar,
		"splash_chance": &c.Params.SplashChance,
		"slide_chance":  &c.Params.SlideChance,
		"flow_speed":    &c.Params.FlowSpeed,
	}
	for key, dst := range floats {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil {
				*dst = float32(parsed)
			}
		}
	}

	ints := map[string]*int{
		"depth_margin":  &c.Params.DepthMargin,
		"flow_lifetime": &c.Params.FlowLifetime,
		"spawn_divisor": &c.Params.SpawnDivisor,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}

	c.Params.Sanitize()
	return c
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
