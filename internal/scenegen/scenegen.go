// Package scenegen builds procedural scene bundles: a perlin-textured ground
// plane under a sky band, with normals, flow, ground mask and ambient
// occlusion derived from the depth layer.
package scenegen

import (
	"errors"
	"fmt"
	"math"

	"rainscape/internal/scene"

	"github.com/aquilax/go-perlin"
)

// ErrInvalidSize is returned for non-positive raster dimensions.
var ErrInvalidSize = errors.New("scenegen: invalid raster size")

const (
	classGround uint8 = 0
	classSky    uint8 = 2

	groundFar  = 40.0
	groundNear = 250.0
	objectLift = 80.0

	normalScale = 50.0
	aoRadius    = 3
)

// Options controls the generated scene.
type Options struct {
	W, H int
	Seed int64

	// Horizon is the fraction of rows, from the top, that are sky.
	Horizon float64
	// ObjectThreshold is the noise level above which cells are lifted
	// toward the camera as objects. Values >= 1 disable objects.
	ObjectThreshold float64
	// NoiseScale is the perlin sampling frequency in cells.
	NoiseScale float64
}

// DefaultOptions mirrors the 320x180 raster the rain engine is tuned for.
func DefaultOptions() Options {
	return Options{
		W:               320,
		H:               180,
		Seed:            1337,
		Horizon:         0.35,
		ObjectThreshold: 0.62,
		NoiseScale:      0.06,
	}
}

// Generate builds a complete bundle for opts.
func Generate(opts Options) (*scene.Raster, error) {
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.W, opts.H)
	}
	w, h := opts.W, opts.H
	r := scene.New(w, h)

	depth := depthField(opts)
	for i, d := range depth {
		b := uint8(clamp(float64(d)*255, 0, 255))
		r.Depth[i] = b
		r.Pixels[i] = b >> 3
		if b == 0 {
			r.Class[i] = classSky
		} else {
			r.Class[i] = classGround
		}
	}

	groundMask(r.Class, r.Ground)
	normals(depth, w, h, normalScale, r.NormalX, r.NormalY)
	flowField(depth, r.Ground, w, h, r.FlowX, r.FlowY)
	ambientOcclusion(depth, w, h, aoRadius, r.AO)

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("scenegen: %w", err)
	}
	return r, nil
}

func depthField(opts Options) []float32 {
	w, h := opts.W, opts.H
	out := make([]float32, w*h)
	noise := perlin.NewPerlin(2, 2, 3, opts.Seed)

	horizon := int(float64(h) * opts.Horizon)
	span := float64(h - 1 - horizon)
	if span <= 0 {
		span = 1
	}
	for y := horizon; y < h; y++ {
		t := float64(y-horizon) / span
		base := groundFar + t*(groundNear-groundFar)
		for x := 0; x < w; x++ {
			d := base
			if opts.ObjectThreshold < 1 {
				n := (noise.Noise2D(float64(x)*opts.NoiseScale, float64(y)*opts.NoiseScale) + 1) / 2
				if n > opts.ObjectThreshold {
					d += (n - opts.ObjectThreshold) / (1 - opts.ObjectThreshold) * objectLift
				}
			}
			out[y*w+x] = float32(clamp(d, 1, 255) / 255)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
