package render

import (
	"image/color"

	"rainscape/internal/scene"
)

var (
	skyTop     = color.RGBA{R: 18, G: 22, B: 34, A: 255}
	skyBottom  = color.RGBA{R: 46, G: 54, B: 72, A: 255}
	groundFar  = color.RGBA{R: 40, G: 46, B: 58, A: 255}
	groundNear = color.RGBA{R: 70, G: 74, B: 66, A: 255}
)

// scenePalette maps the 32 raster pixel indices to ground colors.
var scenePalette = buildScenePalette()

func buildScenePalette() []color.RGBA {
	palette := make([]color.RGBA, 32)
	for i := range palette {
		palette[i] = lerpRGBA(groundFar, groundNear, float64(i)/float64(len(palette)-1))
	}
	return palette
}

// SceneColor returns the backdrop color of screen cell (x, y) on a w×h
// screen. Sky cells get a vertical gradient; ground cells take their pixel
// index color darkened by ambient occlusion.
func SceneColor(r *scene.Raster, x, y, w, h int) color.RGBA {
	if r == nil || w <= 0 || h <= 0 {
		return skyTop
	}
	rx := x * r.W / w
	ry := y * r.H / h
	if r.DepthRaw(rx, ry) <= scene.SkyCutoff {
		return lerpRGBA(skyTop, skyBottom, float64(y)/float64(h))
	}
	i, _ := r.Index(rx, ry)
	idx := int(r.Pixels[i])
	if idx >= len(scenePalette) {
		idx = len(scenePalette) - 1
	}
	shade := 0.45 + 0.55*float64(r.AO[i])/255
	return scaleRGBA(scenePalette[idx], shade)
}

// FillScene writes the backdrop for a w×h screen into buf.
func FillScene(buf []byte, r *scene.Raster, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * 4
			col := SceneColor(r, x, y, w, h)
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// Composite draws cells over the backdrop bg into buf using the palette.
// Transparent palette entries show the backdrop.
func Composite(buf, bg []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		copy(buf, bg)
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		if col.A == 0 {
			copy(buf[base:base+4], bg[base:base+4])
			continue
		}
		out := Over(col, color.RGBA{R: bg[base], G: bg[base+1], B: bg[base+2], A: 255})
		buf[base+0] = out.R
		buf[base+1] = out.G
		buf[base+2] = out.B
		buf[base+3] = out.A
	}
}

// Over places the premultiplied color c on top of an opaque backdrop.
func Over(c, bg color.RGBA) color.RGBA {
	switch c.A {
	case 0:
		return bg
	case 255:
		return c
	}
	inv := 255 - uint32(c.A)
	return color.RGBA{
		R: c.R + uint8(uint32(bg.R)*inv/255),
		G: c.G + uint8(uint32(bg.G)*inv/255),
		B: c.B + uint8(uint32(bg.B)*inv/255),
		A: 255,
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func scaleRGBA(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: c.A,
	}
}
