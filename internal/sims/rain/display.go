package rain

import "image/color"

var rainPalette = buildRainPalette()

// Palette exposes the colors for every display code. Entry 0 is fully
// transparent so renderers can composite the output over the scene.
func (w *World) Palette() []color.RGBA {
	return rainPalette
}

// Palette returns the shared rain palette without a world.
func Palette() []color.RGBA {
	return rainPalette
}

func buildRainPalette() []color.RGBA {
	palette := make([]color.RGBA, MaxCode+1)
	for i := range palette {
		palette[i] = toRGBA(paletteColorFor(Decode(uint8(i))))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

func paletteColorFor(c Code) color.NRGBA {
	// Bucket 7 is nearest and brightest.
	light := 0.35 + 0.65*float64(c.Bucket)/float64(DepthBuckets-1)

	switch c.Kind {
	case KindDroplet:
		// Head of the trail is Sub 0; the tail fades.
		fade := 1 - 0.2*float64(c.Sub)
		return shade(color.NRGBA{R: 150, G: 175, B: 210, A: 255}, light*fade)
	case KindSplash:
		base := color.NRGBA{R: 200, G: 220, B: 245, A: 255}
		if Glyph(c.Sub) == GlyphSettle {
			base = color.NRGBA{R: 120, G: 150, B: 190, A: 255}
		}
		return shade(base, light)
	case KindStream:
		size := 0.6 + 0.4*float64(c.Sub)/3
		return shade(color.NRGBA{R: 90, G: 190, B: 230, A: 255}, light*size)
	default:
		return color.NRGBA{}
	}
}

func shade(c color.NRGBA, f float64) color.NRGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return color.NRGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: c.A,
	}
}
