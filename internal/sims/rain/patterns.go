package rain

import "math"

// Glyph indexes the eight splash marks a renderer draws. The encoder only
// carries the index; the shapes named here are what the bundled renderers
// use.
type Glyph uint8

const (
	GlyphDot      Glyph = iota // impact point
	GlyphColumn                // rising sheet
	GlyphFleck                 // airborne droplet
	GlyphComma                 // reserved
	GlyphLeftArm               // crown wall leaning left
	GlyphRightArm              // crown wall leaning right
	GlyphSettle                // water settling back
	GlyphStar                  // reserved

	GlyphCount
)

// Mark is one pixel of a splash pattern. Offsets are in units of the depth
// scale s; DirMul multiplies the splash's horizontal drift. Negative DY is up.
type Mark struct {
	DX, DY int
	DirMul int
	Glyph  Glyph
}

// patterns[typ][step] lists the marks drawn at each animation step. Each
// shape starts as a single dot, fans outward and upward, then settles.
var patterns = [splashTypeCount][SplashSteps][]Mark{
	SplashCrown: {
		{{0, 0, 0, GlyphDot}},
		{{-1, 0, 1, GlyphLeftArm}, {0, 0, 0, GlyphDot}, {1, 0, 1, GlyphRightArm}},
		{{0, -1, 1, GlyphColumn}, {-1, 0, 1, GlyphLeftArm}, {1, 0, 1, GlyphRightArm}},
		{{-2, -1, 1, GlyphLeftArm}, {0, -1, 1, GlyphColumn}, {2, -1, 1, GlyphRightArm}, {-1, 0, 0, GlyphLeftArm}, {1, 0, 0, GlyphRightArm}},
		{{-2, -2, 2, GlyphFleck}, {0, -2, 1, GlyphFleck}, {2, -2, 2, GlyphFleck}, {-2, -1, 1, GlyphLeftArm}, {2, -1, 1, GlyphRightArm}},
		{{-3, -2, 2, GlyphFleck}, {0, -2, 1, GlyphFleck}, {3, -2, 2, GlyphFleck}},
		{{-2, -1, 1, GlyphFleck}, {2, -1, 1, GlyphFleck}},
		{{-1, 0, 1, GlyphSettle}, {1, 0, 1, GlyphSettle}},
	},
	SplashLeft: {
		{{0, 0, 0, GlyphDot}},
		{{-1, 0, 1, GlyphLeftArm}, {0, 0, 0, GlyphDot}},
		{{-1, -1, 1, GlyphLeftArm}, {0, -1, 1, GlyphColumn}, {-2, 0, 1, GlyphLeftArm}},
		{{-2, -2, 1, GlyphFleck}, {-1, -1, 1, GlyphLeftArm}, {0, -1, 1, GlyphColumn}, {-3, 0, 1, GlyphLeftArm}},
		{{-3, -2, 1, GlyphFleck}, {-1, -2, 1, GlyphFleck}, {-2, -1, 1, GlyphLeftArm}, {0, -1, 1, GlyphColumn}},
		{{-4, -2, 1, GlyphFleck}, {-2, -2, 1, GlyphFleck}, {-3, -1, 1, GlyphLeftArm}},
		{{-3, -1, 1, GlyphFleck}, {-1, -1, 1, GlyphFleck}},
		{{-2, 0, 1, GlyphSettle}},
	},
	SplashRight: {
		{{0, 0, 0, GlyphDot}},
		{{0, 0, 0, GlyphDot}, {1, 0, 1, GlyphRightArm}},
		{{0, -1, 1, GlyphColumn}, {1, -1, 1, GlyphRightArm}, {2, 0, 1, GlyphRightArm}},
		{{0, -1, 1, GlyphColumn}, {1, -1, 1, GlyphRightArm}, {2, -2, 1, GlyphFleck}, {3, 0, 1, GlyphRightArm}},
		{{0, -1, 1, GlyphColumn}, {2, -1, 1, GlyphRightArm}, {1, -2, 1, GlyphFleck}, {3, -2, 1, GlyphFleck}},
		{{3, -1, 1, GlyphRightArm}, {2, -2, 1, GlyphFleck}, {4, -2, 1, GlyphFleck}},
		{{1, -1, 1, GlyphFleck}, {3, -1, 1, GlyphFleck}},
		{{2, 0, 1, GlyphSettle}},
	},
	SplashSpray: {
		{{0, 0, 0, GlyphDot}},
		{{0, 0, 1, GlyphDot}, {-1, 0, 1, GlyphFleck}, {1, 0, 1, GlyphFleck}},
		{{0, -1, 2, GlyphFleck}, {-1, -1, 1, GlyphFleck}, {2, 0, 1, GlyphFleck}},
		{{0, -2, 2, GlyphFleck}, {-2, -1, 1, GlyphFleck}, {1, -1, 1, GlyphFleck}, {3, 0, 1, GlyphFleck}},
		{{-1, -2, 1, GlyphFleck}, {2, -2, 1, GlyphFleck}, {-2, -1, 1, GlyphFleck}, {3, -1, 1, GlyphFleck}},
		{{-2, -2, 1, GlyphFleck}, {1, -2, 1, GlyphFleck}, {3, -1, 1, GlyphFleck}},
		{{-1, -1, 1, GlyphFleck}, {2, -1, 1, GlyphFleck}},
		{{0, 0, 1, GlyphSettle}},
	},
}

// Pattern returns the marks for a splash type and animation step. Unknown
// types draw as spray and steps past the end hold the last step.
func Pattern(typ SplashType, step int) []Mark {
	if typ >= splashTypeCount {
		typ = SplashSpray
	}
	if step < 0 {
		step = 0
	}
	if step >= SplashSteps {
		step = SplashSteps - 1
	}
	return patterns[typ][step]
}

// SplashScale is the pattern magnification for a depth: near splashes are
// drawn larger, and very distant ones collapse to 0.
func SplashScale(z float32) int {
	return int(math.Round(float64((1 - z) * 2.5)))
}

// tinyGlyph is the three-stage sequence used when the scale collapses to 0.
func tinyGlyph(step int) Glyph {
	switch {
	case step < 3:
		return GlyphDot
	case step < 6:
		return GlyphFleck
	default:
		return GlyphSettle
	}
}

// EachMark resolves the pixels of a splash centred at (cx, cy) and calls fn
// for each one.
func EachMark(typ SplashType, frame uint8, z float32, dir int8, cx, cy int, fn func(x, y int, g Glyph)) {
	step := int(frame) / FramesPerStep
	s := SplashScale(z)
	if s == 0 {
		fn(cx, cy, tinyGlyph(step))
		return
	}
	d := int(dir)
	for _, m := range Pattern(typ, step) {
		fn(cx+m.DX*s+m.DirMul*d, cy+m.DY*s, m.Glyph)
	}
}
