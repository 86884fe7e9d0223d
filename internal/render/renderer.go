//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"rainscape/internal/scene"
)

// ScenePainter draws rain codes over a pre-shaded scene backdrop into a
// single RGBA image.
type ScenePainter struct {
	w, h int
	img  *ebiten.Image
	bg   []byte
	buf  []byte
}

// NewScenePainter allocates a painter for a w*h cell grid.
func NewScenePainter(w, h int) *ScenePainter {
	sp := &ScenePainter{}
	sp.Resize(w, h)
	return sp
}

// Resize reallocates the painter and clears the backdrop.
func (sp *ScenePainter) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if sp.img != nil {
		sp.img.Deallocate()
	}
	sp.w, sp.h = w, h
	sp.bg = make([]byte, 4*w*h)
	sp.buf = make([]byte, 4*w*h)
	sp.img = ebiten.NewImage(w, h)
}

// SetBackground shades the backdrop from a scene raster. A nil raster draws
// an empty sky.
func (sp *ScenePainter) SetBackground(r *scene.Raster) {
	FillScene(sp.bg, r, sp.w, sp.h)
}

// Blit composites the cells over the backdrop and draws the result scaled.
func (sp *ScenePainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != sp.w*sp.h {
		return
	}
	Composite(sp.buf, sp.bg, cells, palette)
	sp.img.WritePixels(sp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(sp.img, op)
}

// Size returns the dimensions of the underlying image.
func (sp *ScenePainter) Size() (int, int) { return sp.w, sp.h }
