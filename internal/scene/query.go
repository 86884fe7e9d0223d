package scene

import "math"

// All coordinates are raster cells. Callers convert from screen space with
// the world's scale factors. Out-of-bounds cells answer with neutral values.

// DepthAt returns the cell depth in [0, 1] (0 = far, 1 = near).
func (r *Raster) DepthAt(x, y int) float32 {
	i, ok := r.Index(x, y)
	if !ok {
		return 0
	}
	return float32(r.Depth[i]) / 255.0
}

// DepthRaw returns the stored depth byte.
func (r *Raster) DepthRaw(x, y int) uint8 {
	i, ok := r.Index(x, y)
	if !ok {
		return 0
	}
	return r.Depth[i]
}

// Height is the inverse of depth: near cells sit low in world space.
func (r *Raster) Height(x, y int) float32 {
	return 1 - r.DepthAt(x, y)
}

// IsGround reports whether water can rest or slide on the cell.
func (r *Raster) IsGround(x, y int) bool {
	i, ok := r.Index(x, y)
	if !ok {
		return false
	}
	return r.Ground[i] == 1
}

// Normal returns the surface tilt in [-1, 1]².
func (r *Raster) Normal(x, y int) (float32, float32) {
	i, ok := r.Index(x, y)
	if !ok {
		return 0, 0
	}
	return float32(r.NormalX[i]) / 127.0, float32(r.NormalY[i]) / 127.0
}

// Flow returns the slide direction in [-1, 1]². Flat and non-ground cells
// return (0, 0).
func (r *Raster) Flow(x, y int) (float32, float32) {
	i, ok := r.Index(x, y)
	if !ok {
		return 0, 0
	}
	return float32(r.FlowX[i]) / 127.0, float32(r.FlowY[i]) / 127.0
}

// HasFlow separates sliding surfaces from flat ground where water pools.
func (r *Raster) HasFlow(x, y int) bool {
	i, ok := r.Index(x, y)
	if !ok {
		return false
	}
	return abs8(r.FlowX[i]) > int(FlowThreshold) || abs8(r.FlowY[i]) > int(FlowThreshold)
}

// FlowStrength returns the flow magnitude in [0, 1].
func (r *Raster) FlowStrength(x, y int) float32 {
	i, ok := r.Index(x, y)
	if !ok {
		return 0
	}
	fx := float64(r.FlowX[i])
	fy := float64(r.FlowY[i])
	return float32(math.Min(math.Hypot(fx, fy)/127.0, 1))
}

// HitsSurface reports whether a droplet at depth dropZ (0 = near, 1 = far)
// meets geometry at the cell. Sky never collides, and geometry only collides
// when its depth byte is within margin of the droplet's.
func (r *Raster) HitsSurface(x, y int, dropZ float32, margin uint8) bool {
	i, ok := r.Index(x, y)
	if !ok {
		return false
	}
	bg := r.Depth[i]
	if bg <= SkyCutoff {
		return false
	}
	drop := DepthByte(dropZ)
	diff := int(drop) - int(bg)
	if diff < 0 {
		diff = -diff
	}
	return diff < int(margin)
}

// DepthByte converts a droplet depth (0 = near, 1 = far) to the raster's byte
// scale (255 = near).
func DepthByte(z float32) uint8 {
	v := (1 - z) * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func abs8(v int8) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}
