//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"rainscape/internal/scene"
	"rainscape/internal/sims/rain"
)

// Overlay draws optional scene diagnostics on top of the rain view.
//
//	1  flow arrows
//	2  ground mask
//	3  depth tint
//	4  population readout
type Overlay struct {
	world *rain.World
	scale int

	showFlow  bool
	showMask  bool
	showDepth bool
	showStats bool

	layerImg *ebiten.Image
	layerBuf []byte

	pixel       *ebiten.Image
	flowSamples []flowSample
	flowKey     sampleKey
	flowSpan    float64
}

type flowSample struct {
	rx, ry int
	sx, sy float64
}

type sampleKey struct {
	w, h, scale int
	raster      *scene.Raster
}

// NewOverlay constructs an overlay for a world drawn at the given scale.
func NewOverlay(world *rain.World, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{world: world, scale: scale, showStats: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFlow = !o.showFlow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMask = !o.showMask
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showDepth = !o.showDepth
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit4) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	w, h := o.world.Width(), o.world.Height()
	r := o.world.Scene()
	if w <= 0 || h <= 0 {
		return
	}
	if r != nil && r.W > 0 && r.H > 0 {
		if o.showDepth {
			o.drawLayer(screen, w, h, depthTint)
		}
		if o.showMask {
			o.drawLayer(screen, w, h, groundTint)
		}
		if o.showFlow {
			o.drawFlow(screen, w, h)
		}
	}
	if o.showStats {
		o.drawStats(screen)
	}
}

func (o *Overlay) drawStats(screen *ebiten.Image) {
	s := o.world.Stats()
	lines := []string{
		fmt.Sprintf("tick %d", s.Ticks),
		fmt.Sprintf("drops %4d/%d", s.Droplets, rain.MaxDroplets),
		fmt.Sprintf("splash %3d/%d (%d)", s.Splashes, rain.MaxSplashes, s.SplashesSpawned),
		fmt.Sprintf("stream %3d/%d (%d)", s.Streams, rain.MaxStreams, s.StreamsSpawned),
	}
	face := basicfont.Face7x13
	for i, line := range lines {
		y := 16 + i*15
		text.Draw(screen, line, face, 9, y+1, color.RGBA{A: 200})
		text.Draw(screen, line, face, 8, y, color.RGBA{R: 210, G: 225, B: 240, A: 255})
	}
}

// drawLayer tints every screen cell with a color derived from the raster
// cell under it.
func (o *Overlay) drawLayer(screen *ebiten.Image, w, h int, tint func(*scene.Raster, int) color.RGBA) {
	total := w * h
	if o.layerImg == nil || o.layerImg.Bounds().Dx() != w || o.layerImg.Bounds().Dy() != h {
		if o.layerImg != nil {
			o.layerImg.Deallocate()
		}
		o.layerImg = ebiten.NewImage(w, h)
		o.layerBuf = make([]byte, 4*total)
	}
	r := o.world.Scene()
	vp := o.world.Viewport()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * 4
			rx, ry := vp.ToRaster(float32(x), float32(y))
			i, ok := r.Index(rx, ry)
			col := color.RGBA{}
			if ok {
				col = tint(r, i)
			}
			o.layerBuf[base+0] = col.R
			o.layerBuf[base+1] = col.G
			o.layerBuf[base+2] = col.B
			o.layerBuf[base+3] = col.A
		}
	}
	o.layerImg.WritePixels(o.layerBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.layerImg, op)
}

func (o *Overlay) drawFlow(screen *ebiten.Image, w, h int) {
	if !o.ensureFlowSamples(w, h) {
		return
	}
	const (
		headAngle = math.Pi / 6
		minThick  = 0.65
		maxThick  = 1.05
	)
	r := o.world.Scene()
	scale := float64(o.scale)
	minLength := o.flowSpan * 0.35
	maxLength := o.flowSpan * 0.7
	dot := math.Max(o.flowSpan*0.18, scale*0.75)

	for _, s := range o.flowSamples {
		if !r.IsGround(s.rx, s.ry) {
			continue
		}
		fx, fy := r.Flow(s.rx, s.ry)
		vx, vy := float64(fx), float64(fy)
		speed := math.Hypot(vx, vy)
		if !r.HasFlow(s.rx, s.ry) || speed == 0 {
			o.drawPoint(screen, s.sx, s.sy, dot, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}
		nx, ny := vx/speed, vy/speed
		strength := clamp01(speed)
		length := minLength + (maxLength-minLength)*math.Sqrt(strength)
		head := math.Min(length*0.3, scale*4.5)
		tail := length * 0.4
		tipX, tipY := s.sx+nx*(length-tail), s.sy+ny*(length-tail)
		thick := math.Max(1, scale*(minThick+(maxThick-minThick)*strength))
		col := flowColor(strength)

		o.drawLine(screen, s.sx-nx*tail, s.sy-ny*tail, tipX-nx*head, tipY-ny*head, thick, col)
		angle := math.Atan2(ny, nx)
		for _, side := range [2]float64{headAngle, -headAngle} {
			hx := tipX - math.Cos(angle+side)*head
			hy := tipY - math.Sin(angle+side)*head
			o.drawLine(screen, tipX, tipY, hx, hy, thick*0.85, col)
		}
	}
}

// ensureFlowSamples lays a centred grid of arrow anchors over the view.
func (o *Overlay) ensureFlowSamples(w, h int) bool {
	key := sampleKey{w: w, h: h, scale: o.scale, raster: o.world.Scene()}
	if key == o.flowKey && len(o.flowSamples) > 0 {
		return true
	}
	const (
		targetSamples = 360.0
		minSpacing    = 6
		maxSpacing    = 20
	)
	spacing := clampInt(int(math.Sqrt(float64(w*h)/targetSamples)), minSpacing, maxSpacing)
	countX := (w + spacing - 1) / spacing
	countY := (h + spacing - 1) / spacing
	startX := max(0, (w-1-(countX-1)*spacing)/2)
	startY := max(0, (h-1-(countY-1)*spacing)/2)

	vp := o.world.Viewport()
	o.flowSamples = o.flowSamples[:0]
	for yi := 0; yi < countY; yi++ {
		cy := min(h-1, startY+yi*spacing)
		for xi := 0; xi < countX; xi++ {
			cx := min(w-1, startX+xi*spacing)
			rx, ry := vp.ToRaster(float32(cx), float32(cy))
			o.flowSamples = append(o.flowSamples, flowSample{
				rx: rx,
				ry: ry,
				sx: (float64(cx) + 0.5) * float64(o.scale),
				sy: (float64(cy) + 0.5) * float64(o.scale),
			})
		}
	}
	o.flowKey = key
	o.flowSpan = float64(spacing * o.scale)
	return len(o.flowSamples) > 0
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	colorScale(op, col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	colorScale(op, col)
	screen.DrawImage(o.pixel, op)
}

func colorScale(op *ebiten.DrawImageOptions, col color.RGBA) {
	a := float32(col.A) / 255
	op.ColorScale.Scale(float32(col.R)/255*a, float32(col.G)/255*a, float32(col.B)/255*a, a)
}
