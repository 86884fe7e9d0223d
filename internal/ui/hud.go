//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"rainscape/internal/core"
)

var (
	panelColor    = color.RGBA{R: 16, G: 18, B: 24, A: 255}
	titleColor    = color.RGBA{R: 200, G: 210, B: 225, A: 255}
	labelColor    = color.RGBA{R: 220, G: 225, B: 235, A: 255}
	mutedColor    = color.RGBA{R: 150, G: 155, B: 170, A: 255}
	buttonColor   = color.RGBA{R: 50, G: 58, B: 72, A: 255}
	disabledColor = color.RGBA{R: 30, G: 34, B: 42, A: 255}
)

var keyHelp = []string{
	"space pause   n step",
	"r reset   s reseed   q quit",
	"1 flow  2 ground  3 depth  4 stats",
}

// HUD renders the parameter panel to the right of the rain view. It reads
// the parameter interfaces from internal/core, so any sim exposing them can
// be tuned from it.
type HUD struct {
	sim   core.Sim
	width int
	title string

	panel       *ebiten.Image
	pixel       *ebiten.Image
	panelHeight int
	offsetX     int

	controls []controlRow
}

type controlRow struct {
	adjustableState
	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// NewHUD constructs a HUD for the sim with the given panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: panelTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, controlRow{
				adjustableState: adjustableState{control: ctrl, value: "--"},
				top:             top,
				minus:           minus,
				plus:            plus,
			})
		}
	}
	return h
}

// Update refreshes control values from the sim and applies button clicks.
// panelOffsetX is the screen x of the panel's left edge.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.offsetX = panelOffsetX
	var snapshot core.ParameterSnapshot
	if provider, ok := h.sim.(core.ParameterSnapshotProvider); ok {
		snapshot = provider.Parameters()
	}
	values := snapshot.Values()
	for i := range h.controls {
		h.controls[i].refresh(values)
	}
	h.handleClick()
}

func (h *HUD) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		row := &h.controls[i]
		switch {
		case pt.In(row.minus):
			row.apply(h.sim, -1)
			return
		case pt.In(row.plus):
			row.apply(h.sim, 1)
			return
		}
	}
}

// Draw paints the panel at offsetX, matching the view height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panelHeight != height {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.panelHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, mutedColor)
	}
	for i := range h.controls {
		h.drawRow(&h.controls[i])
	}
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing
	for _, line := range keyHelp {
		if y > height-panelPadding {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += 16
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawRow(row *controlRow) {
	face := basicfont.Face7x13
	baseline := row.top + labelBaseline
	text.Draw(h.panel, row.control.Label, face, panelPadding, baseline, labelColor)

	valueColor := labelColor
	if !row.hasValue {
		valueColor = mutedColor
	}
	valueWidth := text.BoundString(face, row.value).Dx()
	text.Draw(h.panel, row.value, face, row.minus.Min.X-buttonGap-valueWidth, baseline, valueColor)

	_, canDec := row.target(h.sim, -1)
	_, canInc := row.target(h.sim, 1)
	h.drawButton(row.minus, "-", canDec)
	h.drawButton(row.plus, "+", canInc)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = disabledColor, mutedColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	colorScale(op, bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
