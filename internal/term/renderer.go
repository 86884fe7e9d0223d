// Package term draws a rain world as text in a terminal.
package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"rainscape/internal/render"
	"rainscape/internal/scene"
	"rainscape/internal/sims/rain"
)

// Splash glyph runes, indexed by rain.Glyph.
var splashRunes = [rain.GlyphCount]rune{'.', '|', '\'', ',', '/', '\\', '_', '*'}

// Glyph returns the rune drawn for an encoded cell. Empty cells are spaces.
func Glyph(code uint8) rune {
	c := rain.Decode(code)
	switch c.Kind {
	case rain.KindDroplet:
		switch c.Sub {
		case 0:
			return '|'
		case 3:
			return '.'
		default:
			return ':'
		}
	case rain.KindSplash:
		return splashRunes[c.Sub]
	case rain.KindStream:
		return '~'
	}
	return ' '
}

// Renderer paints world output onto a tcell screen. The bottom row is kept
// for a status line.
type Renderer struct {
	screen  tcell.Screen
	palette []color.RGBA

	bg      []color.RGBA
	bgW     int
	bgH     int
	bgScene *scene.Raster
}

// NewRenderer binds a renderer to a screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, palette: rain.Palette()}
}

// Invalidate forces the scene backdrop to be recomputed on the next draw.
func (r *Renderer) Invalidate() {
	r.bgScene = nil
	r.bg = r.bg[:0]
}

func (r *Renderer) backdrop(w *rain.World) {
	width, height := w.Width(), w.Height()
	if r.bgScene == w.Scene() && r.bgW == width && r.bgH == height && len(r.bg) == width*height {
		return
	}
	r.bgScene, r.bgW, r.bgH = w.Scene(), width, height
	if cap(r.bg) < width*height {
		r.bg = make([]color.RGBA, width*height)
	}
	r.bg = r.bg[:width*height]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.bg[y*width+x] = render.SceneColor(w.Scene(), x, y, width, height)
		}
	}
}

// Draw paints the world cells and the status text, then shows the screen.
func (r *Renderer) Draw(w *rain.World, status string) {
	r.backdrop(w)
	width := w.Width()
	cells := w.Output()
	for i, code := range cells {
		x, y := i%width, i/width
		bg := r.bg[i]
		style := tcell.StyleDefault.Background(rgb(bg))
		if code != rain.CodeEmpty && int(code) < len(r.palette) {
			style = style.Foreground(rgb(render.Over(r.palette[code], bg)))
		}
		r.screen.SetContent(x, y, Glyph(code), nil, style)
	}
	r.drawStatus(w.Height(), status)
	r.screen.Show()
}

func (r *Renderer) drawStatus(row int, status string) {
	sw, sh := r.screen.Size()
	if row >= sh {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, ch := range status {
		if x >= sw {
			break
		}
		r.screen.SetContent(x, row, ch, nil, style)
		x++
	}
	for ; x < sw; x++ {
		r.screen.SetContent(x, row, ' ', nil, style)
	}
}

// StatusLine summarises the world state for the status row.
func StatusLine(w *rain.World, paused bool, tps int) string {
	s := w.Stats()
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf(" drops %d  splashes %d  streams %d  tick %d  %d tps  %s  [space n r s +/- q]",
		s.Droplets, s.Splashes, s.Streams, s.Ticks, tps, state)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
