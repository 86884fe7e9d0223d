package rain

import (
	"go.uber.org/zap"

	"rainscape/internal/core"
	"rainscape/internal/scene"
	"rainscape/internal/scenegen"
	pcore "rainscape/pkg/core"
)

// Viewport maps live screen coordinates onto the scene raster.
type Viewport struct {
	W, H           float32
	ScaleX, ScaleY float32
}

// NewViewport computes the screen→raster scale for a w×h screen. Zero-sized
// screens get zero scales.
func NewViewport(w, h int, r *scene.Raster) Viewport {
	vp := Viewport{W: float32(w), H: float32(h)}
	if w > 0 && r != nil {
		vp.ScaleX = float32(r.W) / float32(w)
	}
	if h > 0 && r != nil {
		vp.ScaleY = float32(r.H) / float32(h)
	}
	return vp
}

// Contains reports whether (x, y) is on screen.
func (v Viewport) Contains(x, y float32) bool {
	return x >= 0 && x < v.W && y >= 0 && y < v.H
}

// ToRaster converts a screen position to raster cell coordinates.
func (v Viewport) ToRaster(x, y float32) (int, int) {
	return int(x * v.ScaleX), int(y * v.ScaleY)
}

// Stats is a point-in-time summary of the world.
type Stats struct {
	Ticks           uint64
	Droplets        int
	Splashes        int
	Streams         int
	SplashesSpawned uint64
	StreamsSpawned  uint64
}

// World owns the three populations, the encoder and the generator, and
// drives them one tick at a time over a read-only scene.
type World struct {
	cfg Config

	w, h int
	vp   Viewport

	raster *scene.Raster

	drops    *Droplets
	splashes *Splashes
	streams  *Streams
	enc      *Encoder

	rng   pcore.XorShift32
	ticks uint64

	log *zap.Logger
}

// New returns a rain world with the provided dimensions using defaults.
func New(w, h int, r *scene.Raster) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg, r)
}

// NewWithConfig returns a rain world configured from cfg. A nil raster is
// replaced by an empty one, so every drop falls to the ground line.
func NewWithConfig(cfg Config, r *scene.Raster) *World {
	if r == nil {
		r = scene.New(0, 0)
	}
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}
	cfg.Params.Sanitize()
	w := &World{
		cfg:      cfg,
		w:        cfg.Width,
		h:        cfg.Height,
		raster:   r,
		drops:    &Droplets{},
		splashes: &Splashes{},
		streams:  &Streams{},
		enc:      NewEncoder(cfg.Width, cfg.Height),
		rng:      pcore.NewXorShift32(cfg.Seed),
		log:      zap.NewNop(),
	}
	w.vp = NewViewport(w.w, w.h, r)
	return w
}

// SetLogger replaces the world's logger. A nil logger disables logging.
func (w *World) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	w.log = l.Named("rain")
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "rain" }

// Size reports the screen dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Width returns the screen width.
func (w *World) Width() int { return w.w }

// Height returns the screen height.
func (w *World) Height() int { return w.h }

// Cells exposes the encoded output buffer.
func (w *World) Cells() []uint8 { return w.enc.Cells() }

// Output exposes the encoded output buffer without copying. It is valid
// until the next Resize.
func (w *World) Output() []uint8 { return w.enc.Cells() }

// OutputLen returns width*height.
func (w *World) OutputLen() int { return len(w.enc.Cells()) }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Viewport returns the current screen→raster mapping.
func (w *World) Viewport() Viewport { return w.vp }

// Scene returns the raster the world collides against.
func (w *World) Scene() *scene.Raster { return w.raster }

// Droplets exposes the falling population for inspection.
func (w *World) Droplets() *Droplets { return w.drops }

// Splashes exposes the splash population for inspection.
func (w *World) Splashes() *Splashes { return w.splashes }

// Streams exposes the stream population for inspection.
func (w *World) Streams() *Streams { return w.streams }

// Counts returns the live population sizes.
func (w *World) Counts() (drops, splashes, streams int) {
	return w.drops.Len(), w.splashes.Len(), w.streams.Len()
}

// Stats summarises the world.
func (w *World) Stats() Stats {
	return Stats{
		Ticks:           w.ticks,
		Droplets:        w.drops.Len(),
		Splashes:        w.splashes.Len(),
		Streams:         w.streams.Len(),
		SplashesSpawned: w.splashes.Spawned(),
		StreamsSpawned:  w.streams.Spawned(),
	}
}

// SetScene swaps the raster and recomputes the scale factors. Live
// particles are kept.
func (w *World) SetScene(r *scene.Raster) {
	if r == nil {
		r = scene.New(0, 0)
	}
	w.raster = r
	w.vp = NewViewport(w.w, w.h, r)
	w.log.Debug("scene replaced", zap.Int("raster_w", r.W), zap.Int("raster_h", r.H))
}

// Resize reallocates the output for a new screen and clears every
// population. The generator keeps its state.
func (w *World) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.w, w.h = width, height
	w.cfg.Width, w.cfg.Height = width, height
	w.enc.Resize(width, height)
	w.vp = NewViewport(width, height, w.raster)
	w.clearPopulations()
	w.log.Debug("resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("scale_x", w.vp.ScaleX),
		zap.Float32("scale_y", w.vp.ScaleY),
	)
}

// Reset clears every population and reseeds the generator. A zero seed
// uses the configured one.
func (w *World) Reset(seed int64) {
	s := uint32(seed)
	if seed == 0 {
		s = w.cfg.Seed
	}
	w.rng.Seed(s)
	w.clearPopulations()
	w.enc.Clear()
	w.ticks = 0
	w.log.Debug("reset", zap.Uint32("seed", s))
}

func (w *World) clearPopulations() {
	w.drops.Clear()
	w.splashes.Clear()
	w.streams.Clear()
}

// Step advances the world by one tick.
func (w *World) Step() { w.Tick() }

// Tick advances the world by one fixed step: spawn, update droplets,
// splashes and streams in that order, then encode.
func (w *World) Tick() {
	w.enc.Clear()
	if w.w == 0 || w.h == 0 {
		return
	}
	p := &w.cfg.Params

	w.drops.Spawn(w.w/p.SpawnDivisor+1, w.vp.W, p, &w.rng)

	settled := w.streams.Len()
	w.drops.Update(w.vp, w.raster, p, w.splashes, w.streams, &w.rng)
	w.splashes.Update()
	w.streams.Update(settled, w.vp, w.raster, p, w.splashes, &w.rng)

	w.enc.EncodeDroplets(w.drops)
	w.enc.EncodeSplashes(w.splashes)
	w.enc.EncodeStreams(w.streams)

	w.ticks++
}

// Encode redraws the current state without advancing it.
func (w *World) Encode() {
	w.enc.Clear()
	w.enc.EncodeDroplets(w.drops)
	w.enc.EncodeSplashes(w.splashes)
	w.enc.EncodeStreams(w.streams)
}

// fromRegistry builds a world for the sim registry. A failed scene leaves
// the world with an empty raster, so drops only splash on the ground line.
func fromRegistry(cfg map[string]string, opts scenegen.Options, log *zap.Logger) *World {
	c := FromMap(cfg)
	r, err := scenegen.Generate(opts)
	if err != nil {
		log.Warn("rain scene generation failed, running without a scene", zap.Error(err))
	}
	w := NewWithConfig(c, r)
	w.SetLogger(log)
	return w
}

func init() {
	core.Register("rain", func(cfg map[string]string) core.Sim {
		return fromRegistry(cfg, scenegen.DefaultOptions(), zap.L())
	})
}
