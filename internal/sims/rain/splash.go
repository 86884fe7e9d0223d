package rain

import (
	"math"

	"rainscape/pkg/core"
)

const (
	// MaxSplashes caps the splash population.
	MaxSplashes = 200
	// SplashFrames is the splash lifetime in ticks.
	SplashFrames = 24
	// FramesPerStep is how many ticks each animation step is held.
	FramesPerStep = 3
	// SplashSteps is the number of animation steps.
	SplashSteps = SplashFrames / FramesPerStep
)

// SplashType selects the splash shape.
type SplashType uint8

const (
	SplashCrown SplashType = iota
	SplashLeft
	SplashRight
	SplashSpray

	splashTypeCount
)

// String returns the shape name.
func (t SplashType) String() string {
	switch t {
	case SplashCrown:
		return "crown"
	case SplashLeft:
		return "left-burst"
	case SplashRight:
		return "right-burst"
	case SplashSpray:
		return "spray"
	default:
		return "unknown"
	}
}

// Splashes is the impact animation population. Position, depth, direction
// and type are fixed at spawn; only Frame changes.
type Splashes struct {
	X     [MaxSplashes]float32
	Y     [MaxSplashes]float32
	Z     [MaxSplashes]float32
	Frame [MaxSplashes]uint8
	Dir   [MaxSplashes]int8 // horizontal bias in pixels
	Typ   [MaxSplashes]SplashType

	n       int
	spawned uint64
}

// Len returns the live count.
func (s *Splashes) Len() int { return s.n }

// Clear drops every splash.
func (s *Splashes) Clear() { s.n = 0 }

// Spawned counts every splash created since construction.
func (s *Splashes) Spawned() uint64 { return s.spawned }

// Spawn adds a splash with a small random drift. It reports false at capacity.
func (s *Splashes) Spawn(x, y, z float32, typ SplashType, rng *core.XorShift32) bool {
	if s.n >= MaxSplashes {
		return false
	}
	x += (rng.Float32() - 0.5) * 4
	dir := int8(rng.Float32()*5) - 2
	s.add(x, y, z, dir, typ)
	return true
}

// SpawnWithNormal adds a splash shaped by the surface tilt: steeper tilts
// bias the drift harder and favour the directional bursts.
func (s *Splashes) SpawnWithNormal(x, y, z, nx, ny float32, rng *core.XorShift32) bool {
	if s.n >= MaxSplashes {
		return false
	}
	x += (rng.Float32() - 0.5) * 4

	bias := nx*6 + rng.Range(-1, 1)
	dir := int8(math.Max(-5, math.Min(5, float64(bias))))

	var typ SplashType
	dirProb := 0.3 + float32(math.Abs(float64(nx)))*0.6
	switch {
	case rng.Float32() < dirProb:
		if nx < 0 {
			typ = SplashLeft
		} else {
			typ = SplashRight
		}
	case rng.Float32() < 0.5:
		typ = SplashCrown
	default:
		typ = SplashSpray
	}

	s.add(x, y, z, dir, typ)
	return true
}

func (s *Splashes) add(x, y, z float32, dir int8, typ SplashType) {
	i := s.n
	s.X[i] = x
	s.Y[i] = y
	s.Z[i] = z
	s.Frame[i] = 0
	s.Dir[i] = dir
	s.Typ[i] = typ
	s.n++
	s.spawned++
}

// Update advances every animation by one frame and drops finished splashes.
func (s *Splashes) Update() {
	write := 0

	for read := 0; read < s.n; read++ {
		frame := s.Frame[read] + 1
		if frame >= SplashFrames {
			continue
		}

		s.X[write] = s.X[read]
		s.Y[write] = s.Y[read]
		s.Z[write] = s.Z[read]
		s.Frame[write] = frame
		s.Dir[write] = s.Dir[read]
		s.Typ[write] = s.Typ[read]
		write++
	}

	s.n = write
}
