//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"rainscape/internal/render"
	"rainscape/internal/scene"
	"rainscape/internal/sims/rain"
	"rainscape/internal/ui"
)

// Game adapts a rain world to the ebiten.Game interface.
type Game struct {
	world   *rain.World
	painter *render.ScenePainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA
	log     *zap.Logger
	observe func(time.Duration, rain.Stats)

	// backdrop tracks what the painter was last shaded for.
	backdrop *scene.Raster
	bgW, bgH int

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(world *rain.World, opts Options) *Game {
	opts = opts.withDefaults()
	return &Game{
		world:    world,
		painter:  render.NewScenePainter(world.Width(), world.Height()),
		overlay:  ui.NewOverlay(world, opts.Scale),
		hud:      ui.NewHUD(world, opts.HUDWidth),
		palette:  world.Palette(),
		log:      opts.Log,
		observe:  opts.Observe,
		scale:    opts.Scale,
		hudWidth: opts.HUDWidth,
		seed:     opts.Seed,
	}
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the world.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.log.Info("window closed", zap.Uint64("ticks", g.world.Stats().Ticks))
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.world.Width() * g.scale)

	if !g.paused || g.tickOnce {
		start := time.Now()
		g.world.Tick()
		if g.observe != nil {
			g.observe(time.Since(start), g.world.Stats())
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the scene, the rain and the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.world.Width(), g.world.Height()
	if g.backdrop != g.world.Scene() || g.bgW != w || g.bgH != h {
		g.painter.Resize(w, h)
		g.painter.SetBackground(g.world.Scene())
		g.backdrop, g.bgW, g.bgH = g.world.Scene(), w, h
	}
	g.painter.Blit(screen, g.world.Output(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, w*g.scale, g.scale)
}

// Layout returns the logical screen size: the scaled view plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.world.Width()*g.scale + g.hudWidth, g.world.Height() * g.scale
}
