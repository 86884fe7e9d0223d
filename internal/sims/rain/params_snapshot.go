package rain

import (
	"strconv"

	"rainscape/internal/core"
)

// Parameters reports the current tunables grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.w),
				core.IntParam("h", "Height", w.h),
				uintParam("seed", "Seed", w.cfg.Seed),
				core.IntParam("spawn_divisor", "Columns per spawn", params.SpawnDivisor),
			},
		},
		{
			Name: "Droplets",
			Params: []core.Parameter{
				core.FloatParam("vel_near", "Near fall speed", params.VelNear),
				core.FloatParam("vel_far", "Far fall speed", params.VelFar),
				core.FloatParam("ground_near", "Near ground line", params.GroundNear),
				core.FloatParam("ground_far", "Far ground line", params.GroundFar),
				core.IntParam("depth_margin", "Depth margin", params.DepthMargin),
			},
		},
		{
			Name: "Splashes",
			Params: []core.Parameter{
				core.FloatParam("splash_chance", "Splash chance", params.SplashChance),
			},
		},
		{
			Name: "Streams",
			Params: []core.Parameter{
				core.FloatParam("slide_chance", "Slide chance", params.SlideChance),
				core.FloatParam("flow_speed", "Flow speed", params.FlowSpeed),
				core.IntParam("flow_lifetime", "Flow lifetime", params.FlowLifetime),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust live.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		core.FloatControl("vel_near", "Near fall speed", 0.05, MinFallSpeed, 5),
		core.FloatControl("vel_far", "Far fall speed", 0.05, MinFallSpeed, 5),
		core.FloatControl("ground_far", "Far ground line", 0.02, 0, 1),
		core.FloatControl("splash_chance", "Splash chance", 0.05, 0, 1),
		core.FloatControl("slide_chance", "Slide chance", 0.05, 0, 1),
		core.FloatControl("flow_speed", "Flow speed", 0.05, 0, 4),
		core.IntControl("depth_margin", "Depth margin", 2, 0, 255),
		core.IntControl("flow_lifetime", "Flow lifetime", 10, 1, 255),
		core.IntControl("spawn_divisor", "Columns per spawn", 4, 1, 1024),
	}
}

// SetFloatParameter updates a float tunable. Values are clamped to the
// simulation's valid range.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	v := float32(value)
	switch key {
	case "vel_near":
		p.VelNear = v
	case "vel_far":
		p.VelFar = v
	case "ground_near":
		p.GroundNear = v
	case "ground_far":
		p.GroundFar = v
	case "splash_chance":
		p.SplashChance = v
	case "slide_chance":
		p.SlideChance = v
	case "flow_speed":
		p.FlowSpeed = v
	default:
		return false
	}
	p.Sanitize()
	return true
}

// SetIntParameter updates an integer tunable.
func (w *World) SetIntParameter(key string, value int) bool {
	p := &w.cfg.Params
	switch key {
	case "depth_margin":
		p.DepthMargin = value
	case "flow_lifetime":
		p.FlowLifetime = value
	case "spawn_divisor":
		p.SpawnDivisor = value
	default:
		return false
	}
	p.Sanitize()
	return true
}

func uintParam(key, label string, value uint32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: "0x" + strconv.FormatUint(uint64(value), 16),
	}
}
