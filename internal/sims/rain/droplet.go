package rain

import (
	"rainscape/internal/scene"
	"rainscape/pkg/core"
)

// MaxDroplets caps the falling population.
const MaxDroplets = 3000

// Droplets is the falling population, stored as parallel arrays. Slots [0, n)
// are live.
type Droplets struct {
	X [MaxDroplets]float32
	Y [MaxDroplets]float32
	Z [MaxDroplets]float32 // 0 = near, 1 = far
	V [MaxDroplets]float32 // downward speed, pixels per tick

	n int
}

// Len returns the live count.
func (d *Droplets) Len() int { return d.n }

// Clear drops every droplet.
func (d *Droplets) Clear() { d.n = 0 }

// At returns the state of droplet i.
func (d *Droplets) At(i int) (x, y, z, v float32) {
	return d.X[i], d.Y[i], d.Z[i], d.V[i]
}

// Add appends a droplet with explicit state. It reports false at capacity.
func (d *Droplets) Add(x, y, z, v float32) bool {
	if d.n >= MaxDroplets {
		return false
	}
	i := d.n
	d.X[i], d.Y[i], d.Z[i], d.V[i] = x, y, z, v
	d.n++
	return true
}

// Spawn adds up to count droplets just above the screen. Near drops fall
// faster than far ones.
func (d *Droplets) Spawn(count int, screenW float32, p *Params, rng *core.XorShift32) {
	for k := 0; k < count; k++ {
		if d.n >= MaxDroplets {
			return
		}
		z := rng.Float32()
		x := rng.Float32() * screenW
		y := -rng.Float32() * 15
		v := lerp(p.VelNear, p.VelFar, z) * rng.Range(0.8, 1.2)
		d.Add(x, y, z, v)
	}
}

// Update advances every droplet and resolves collisions, first match wins:
// geometry at the droplet's depth, then the perspective ground line.
// Survivors are compacted forward in order.
func (d *Droplets) Update(vp Viewport, r *scene.Raster, p *Params, splashes *Splashes, streams *Streams, rng *core.XorShift32) {
	margin := p.depthMargin()
	write := 0

	for read := 0; read < d.n; read++ {
		x := d.X[read]
		y := d.Y[read] + d.V[read]
		z := d.Z[read]

		ground := vp.H * lerp(p.GroundNear, p.GroundFar, z)

		if vp.Contains(x, y) {
			bx, by := vp.ToRaster(x, y)
			if r.HitsSurface(bx, by, z, margin) {
				if r.HasFlow(bx, by) && rng.Float32() < p.SlideChance {
					streams.Spawn(x, y, z, p)
				}
				nx, ny := r.Normal(bx, by)
				splashes.SpawnWithNormal(x, y, z, nx, ny, rng)
				continue
			}
		}

		if y > ground {
			if rng.Float32() < p.SplashChance {
				typ := SplashType(rng.Float32() * 4)
				splashes.Spawn(x, ground, z, typ, rng)
			}
			continue
		}

		d.X[write] = x
		d.Y[write] = y
		d.Z[write] = z
		d.V[write] = d.V[read]
		write++
	}

	d.n = write
}
