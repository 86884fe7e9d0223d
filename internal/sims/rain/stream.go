package rain

import (
	"rainscape/internal/scene"
	"rainscape/pkg/core"
)

const (
	// MaxStreams caps the sliding population.
	MaxStreams = 500

	// Streams older than this leave no splash when they slip off an edge.
	streamFreshLife = 60
)

// Streams is the population of water sliding along the flow field.
type Streams struct {
	X    [MaxStreams]float32
	Y    [MaxStreams]float32
	Z    [MaxStreams]float32
	Life [MaxStreams]uint8

	n       int
	spawned uint64
}

// Len returns the live count.
func (s *Streams) Len() int { return s.n }

// Clear drops every stream.
func (s *Streams) Clear() { s.n = 0 }

// Spawned counts every stream created since construction.
func (s *Streams) Spawned() uint64 { return s.spawned }

// Spawn adds a fresh stream. It reports false at capacity.
func (s *Streams) Spawn(x, y, z float32, p *Params) bool {
	return s.add(x, y, z, p.flowLifetime())
}

func (s *Streams) add(x, y, z float32, life uint8) bool {
	if s.n >= MaxStreams {
		return false
	}
	i := s.n
	s.X[i] = x
	s.Y[i] = y
	s.Z[i] = z
	s.Life[i] = life
	s.n++
	s.spawned++
	return true
}

// Update slides the first limit streams one step along the flow field.
// Streams at index limit and above were spawned during this tick and are
// carried over unmoved. A stream that slips off its surface while fresh
// leaves a spray, one that reaches still ground pools into a crown, and the
// rest expire silently.
func (s *Streams) Update(limit int, vp Viewport, r *scene.Raster, p *Params, splashes *Splashes, rng *core.XorShift32) {
	if limit > s.n {
		limit = s.n
	}
	margin := p.depthMargin()
	speed := p.FlowSpeed
	write := 0

	for read := 0; read < limit; read++ {
		life := s.Life[read]
		if life == 0 {
			continue
		}

		x := s.X[read]
		y := s.Y[read]
		z := s.Z[read]

		fx, fy := r.Flow(vp.ToRaster(x, y))
		step := speed * (1 - z*0.5)
		x += fx * step
		y += fy * step

		if !vp.Contains(x, y) {
			continue
		}

		bx, by := vp.ToRaster(x, y)
		if !r.HitsSurface(bx, by, z, margin) {
			if life > streamFreshLife {
				splashes.Spawn(x, y, z, SplashSpray, rng)
			}
			continue
		}
		if !r.HasFlow(bx, by) {
			splashes.Spawn(x, y, z, SplashCrown, rng)
			continue
		}

		life--
		if life == 0 {
			continue
		}

		s.X[write] = x
		s.Y[write] = y
		s.Z[write] = z
		s.Life[write] = life
		write++
	}

	for read := limit; read < s.n; read++ {
		s.X[write] = s.X[read]
		s.Y[write] = s.Y[read]
		s.Z[write] = s.Z[read]
		s.Life[write] = s.Life[read]
		write++
	}

	s.n = write
}
