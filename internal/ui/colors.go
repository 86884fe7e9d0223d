package ui

import (
	"image/color"
	"math"

	"rainscape/internal/scene"
)

func groundTint(r *scene.Raster, i int) color.RGBA {
	if r.Ground[i] == 0 {
		return color.RGBA{}
	}
	occlusion := 1 - float64(r.AO[i])/255
	glow := 0.6 + 0.4*occlusion
	alpha := uint8(math.Round(70 + 70*occlusion))
	return premul(color.RGBA{
		R: scaleColorComponent(64, glow),
		G: scaleColorComponent(200, glow),
		B: scaleColorComponent(120, glow),
		A: alpha,
	})
}

func depthTint(r *scene.Raster, i int) color.RGBA {
	if r.Depth[i] <= scene.SkyCutoff {
		return color.RGBA{}
	}
	return premul(depthColor(float64(r.Depth[i]) / 255))
}

// depthColor runs from cold far tones to warm near ones.
func depthColor(t float64) color.RGBA {
	stops := [...]struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.4, color.RGBA{R: 70, G: 105, B: 160, A: 160}},
		{0.7, color.RGBA{R: 90, G: 150, B: 100, A: 170}},
		{0.85, color.RGBA{R: 190, G: 160, B: 80, A: 180}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 190}},
	}
	t = clamp01(t)
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].t {
			prev := stops[i-1]
			local := (t - prev.t) / (stops[i].t - prev.t)
			return lerpRGBA(prev.col, stops[i].col, local)
		}
	}
	return stops[len(stops)-1].col
}

func flowColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(80 + 70*t)),
		G: uint8(math.Round(170 + 70*t)),
		B: uint8(math.Round(230 + 20*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

func premul(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
