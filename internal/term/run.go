package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"rainscape/internal/core"
	"rainscape/internal/sims/rain"
)

const (
	frameInterval = 16 * time.Millisecond
	maxCatchUp    = 4
	minTPS        = 5
	maxTPS        = 240
)

// Options configures Run.
type Options struct {
	TPS  int
	Seed int64
	Log  *zap.Logger
	// Observe, when set, is called after every tick with its duration.
	Observe func(time.Duration, rain.Stats)
}

// session holds the interactive state of one Run.
type session struct {
	screen   tcell.Screen
	world    *rain.World
	renderer *Renderer
	step     *core.FixedStep
	log      *zap.Logger
	observe  func(time.Duration, rain.Stats)

	tps      int
	seed     int64
	paused   bool
	tickOnce bool
	quit     bool
}

func newSession(screen tcell.Screen, world *rain.World, opts Options) *session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	tps := opts.TPS
	if tps <= 0 {
		tps = 60
	}
	return &session{
		screen:   screen,
		world:    world,
		renderer: NewRenderer(screen),
		step:     core.NewFixedStep(tps),
		log:      log,
		observe:  opts.Observe,
		tps:      tps,
		seed:     opts.Seed,
	}
}

// Run drives the world on screen until the user quits or ctx is cancelled.
// The caller owns the screen and must Init and Fini it.
func Run(ctx context.Context, screen tcell.Screen, world *rain.World, opts Options) error {
	s := newSession(screen, world, opts)
	s.fit()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	s.log.Info("terminal viewer started",
		zap.Int("width", world.Width()),
		zap.Int("height", world.Height()),
		zap.Int("tps", s.tps))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("terminal viewer cancelled", zap.Uint64("ticks", world.Stats().Ticks))
			return ctx.Err()
		case ev := <-events:
			s.handle(ev)
			if s.quit {
				s.log.Info("terminal viewer closed", zap.Uint64("ticks", world.Stats().Ticks))
				return nil
			}
		case <-ticker.C:
			s.frame()
		}
	}
}

// fit resizes the world to the screen minus the status row.
func (s *session) fit() {
	sw, sh := s.screen.Size()
	h := sh - 1
	if h < 0 {
		h = 0
	}
	if s.world.Width() == sw && s.world.Height() == h {
		return
	}
	s.world.Resize(sw, h)
	s.renderer.Invalidate()
	s.screen.Clear()
}

func (s *session) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.fit()
		s.screen.Sync()
	case *tcell.EventKey:
		s.key(ev)
	}
}

func (s *session) key(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.quit = true
		return
	case tcell.KeyEnter:
		s.setPaused(false)
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch ev.Rune() {
	case 'q', 'Q':
		s.quit = true
	case ' ':
		s.setPaused(!s.paused)
	case 'n', 'N':
		s.tickOnce = true
	case 'r', 'R':
		s.reset(s.seed)
	case 's', 'S':
		s.reset(time.Now().UnixNano())
	case '+', '=':
		s.setTPS(s.tps * 2)
	case '-', '_':
		s.setTPS(s.tps / 2)
	}
}

// setPaused restarts the step clock on resume so paused time is not replayed.
func (s *session) setPaused(paused bool) {
	if s.paused && !paused {
		s.step.Restart()
	}
	s.paused = paused
}

func (s *session) reset(seed int64) {
	s.seed = seed
	s.world.Reset(seed)
	s.tickOnce = false
}

func (s *session) setTPS(tps int) {
	if tps < minTPS {
		tps = minTPS
	}
	if tps > maxTPS {
		tps = maxTPS
	}
	s.tps = tps
	s.step.SetTPS(tps)
}

// frame advances the world by however many fixed steps are due, then draws.
func (s *session) frame() {
	switch {
	case s.tickOnce:
		s.tick()
		s.tickOnce = false
	case !s.paused:
		for n := s.step.Due(maxCatchUp); n > 0; n-- {
			s.tick()
		}
	}
	s.renderer.Draw(s.world, StatusLine(s.world, s.paused, s.tps))
}

func (s *session) tick() {
	start := time.Now()
	s.world.Tick()
	if s.observe != nil {
		s.observe(time.Since(start), s.world.Stats())
	}
}
