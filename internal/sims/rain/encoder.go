package rain

import "rainscape/internal/core"

// Display codes. Each range is ordered so that a larger code always wins a
// cell: streams over splashes over droplets over empty.
const (
	CodeEmpty = 0

	DropletBase = 1  // 1..32: depth bucket*4 + trail row
	SplashBase  = 33 // 33..96: depth bucket*8 + glyph
	StreamBase  = 97 // 97..128: depth bucket*4 + size class

	// MaxCode is the largest code the encoder writes.
	MaxCode = 128

	// DepthBuckets is the number of depth shades per population.
	DepthBuckets = 8
)

// Kind identifies the population a display code belongs to.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindDroplet
	KindSplash
	KindStream
)

// Code is a decoded display byte. Bucket 7 is nearest.
type Code struct {
	Kind   Kind
	Bucket int
	// Sub is the trail row for droplets, the glyph for splashes and the
	// size class for streams.
	Sub int
}

// Decode splits a display byte into its parts. Bytes above MaxCode decode
// as empty.
func Decode(b uint8) Code {
	switch {
	case b == CodeEmpty || b > MaxCode:
		return Code{Kind: KindEmpty}
	case b < SplashBase:
		v := int(b - DropletBase)
		return Code{Kind: KindDroplet, Bucket: v / 4, Sub: v % 4}
	case b < StreamBase:
		v := int(b - SplashBase)
		return Code{Kind: KindSplash, Bucket: v / 8, Sub: v % 8}
	default:
		v := int(b - StreamBase)
		return Code{Kind: KindStream, Bucket: v / 4, Sub: v % 4}
	}
}

// DepthBucket maps z (0 near, 1 far) to a shade where 7 is nearest.
func DepthBucket(z float32) int {
	b := int((1 - z) * DepthBuckets)
	if b < 0 {
		return 0
	}
	if b > DepthBuckets-1 {
		return DepthBuckets - 1
	}
	return b
}

// Encoder rasterises the populations into a byte grid.
type Encoder struct {
	grid *core.ByteGrid
}

// NewEncoder allocates an encoder for a w×h screen.
func NewEncoder(w, h int) *Encoder {
	return &Encoder{grid: core.NewByteGrid(w, h)}
}

// Resize reallocates the output and clears it.
func (e *Encoder) Resize(w, h int) { e.grid.Resize(w, h) }

// Clear zeroes the output.
func (e *Encoder) Clear() { e.grid.Clear() }

// Cells exposes the output buffer.
func (e *Encoder) Cells() []uint8 { return e.grid.Cells() }

func (e *Encoder) put(x, y int, code uint8) { e.grid.Max(x, y, code) }

// EncodeDroplets draws each droplet as a short vertical trail above its
// head. Near drops leave longer trails.
func (e *Encoder) EncodeDroplets(d *Droplets) {
	w := e.grid.W
	for i := 0; i < d.n; i++ {
		x := int(d.X[i])
		if x < 0 || x >= w {
			continue
		}
		z := d.Z[i]
		base := DepthBucket(z) * 4
		trail := int(5 - 4*z)
		if trail < 1 {
			trail = 1
		}
		y := int(d.Y[i])
		for dy := 0; dy < trail; dy++ {
			row := dy
			if row > 3 {
				row = 3
			}
			e.put(x, y-dy, uint8(DropletBase+base+row))
		}
	}
}

// EncodeSplashes draws the current animation step of every splash.
func (e *Encoder) EncodeSplashes(s *Splashes) {
	for i := 0; i < s.n; i++ {
		z := s.Z[i]
		base := SplashBase + DepthBucket(z)*8
		EachMark(s.Typ[i], s.Frame[i], z, s.Dir[i], int(s.X[i]), int(s.Y[i]), func(x, y int, g Glyph) {
			e.put(x, y, uint8(base+int(g)))
		})
	}
}

// EncodeStreams draws each stream as a single cell sized by remaining life.
func (e *Encoder) EncodeStreams(s *Streams) {
	for i := 0; i < s.n; i++ {
		x := int(s.X[i])
		y := int(s.Y[i])
		if !e.grid.InBounds(x, y) {
			continue
		}
		e.put(x, y, uint8(StreamBase+DepthBucket(s.Z[i])*4+streamSize(s.Life[i])))
	}
}

func streamSize(life uint8) int {
	switch {
	case life > 80:
		return 3
	case life > 40:
		return 2
	case life > 10:
		return 1
	default:
		return 0
	}
}
