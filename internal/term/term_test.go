package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainscape/internal/scene"
	"rainscape/internal/sims/rain"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func flatScene(w, h int) *scene.Raster {
	r := scene.New(w, h)
	r.FillDepth(200)
	r.FillGround(true)
	return r
}

func TestGlyph(t *testing.T) {
	cases := []struct {
		code uint8
		want rune
	}{
		{rain.CodeEmpty, ' '},
		{rain.DropletBase, '|'},
		{rain.DropletBase + 1, ':'},
		{rain.DropletBase + 2, ':'},
		{rain.DropletBase + 3, '.'},
		{rain.SplashBase + uint8(rain.GlyphDot), '.'},
		{rain.SplashBase + 8*3 + uint8(rain.GlyphLeftArm), '/'},
		{rain.SplashBase + uint8(rain.GlyphRightArm), '\\'},
		{rain.SplashBase + uint8(rain.GlyphSettle), '_'},
		{rain.StreamBase, '~'},
		{rain.MaxCode, '~'},
		{200, ' '},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, Glyph(tc.code), "Glyph(%d)", tc.code)
	}
}

func TestRendererDrawsCellsAndStatus(t *testing.T) {
	screen := simScreen(t, 6, 5)
	w := rain.New(6, 4, flatScene(6, 4))
	w.Droplets().Add(2, 3, 0, 1)
	w.Encode()

	r := NewRenderer(screen)
	r.Draw(w, "hello world")

	ch, _, style, _ := screen.GetContent(2, 3)
	assert.Equal(t, '|', ch)
	fg, bg, _ := style.Decompose()
	assert.NotEqual(t, fg, bg)

	ch, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, ' ', ch)

	var status []rune
	for x := 0; x < 6; x++ {
		ch, _, _, _ := screen.GetContent(x, 4)
		status = append(status, ch)
	}
	assert.Equal(t, "hello ", string(status), "status line is clipped to the screen width")
}

func TestRendererRebuildsBackdropOnResize(t *testing.T) {
	screen := simScreen(t, 8, 8)
	w := rain.New(4, 4, flatScene(4, 4))
	r := NewRenderer(screen)
	r.Draw(w, "")
	require.Len(t, r.bg, 16)

	w.Resize(8, 7)
	r.Draw(w, "")
	assert.Len(t, r.bg, 56)
}

func TestStatusLine(t *testing.T) {
	w := rain.New(16, 8, nil)
	w.Tick()
	line := StatusLine(w, true, 30)
	assert.Contains(t, line, "tick 1")
	assert.Contains(t, line, "30 tps")
	assert.Contains(t, line, "paused")
}

func TestSessionKeys(t *testing.T) {
	screen := simScreen(t, 20, 10)
	w := rain.New(20, 9, nil)
	s := newSession(screen, w, Options{TPS: 60, Seed: 7})

	press := func(r rune) {
		s.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	press(' ')
	assert.True(t, s.paused)
	s.frame()
	assert.Zero(t, w.Stats().Ticks, "paused sessions must not tick")

	press('n')
	s.frame()
	assert.EqualValues(t, 1, w.Stats().Ticks, "single step while paused")
	s.frame()
	assert.EqualValues(t, 1, w.Stats().Ticks)

	press('r')
	assert.Zero(t, w.Stats().Ticks)
	assert.EqualValues(t, 7, s.seed)

	press('+')
	assert.Equal(t, 120, s.tps)
	for i := 0; i < 10; i++ {
		press('-')
	}
	assert.Equal(t, minTPS, s.tps)

	s.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.False(t, s.paused)

	press('q')
	assert.True(t, s.quit)
}

func TestSessionObservesTicks(t *testing.T) {
	screen := simScreen(t, 20, 10)
	w := rain.New(20, 9, nil)
	var seen []rain.Stats
	s := newSession(screen, w, Options{Observe: func(_ time.Duration, st rain.Stats) {
		seen = append(seen, st)
	}})

	s.tickOnce = true
	s.frame()
	require.Len(t, seen, 1)
	assert.EqualValues(t, 1, seen[0].Ticks)
}

func TestRunFitsWorldAndQuits(t *testing.T) {
	screen := simScreen(t, 30, 12)
	w := rain.New(4, 4, nil)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	err := Run(context.Background(), screen, w, Options{TPS: 30})

	require.NoError(t, err)
	assert.Equal(t, 30, w.Width())
	assert.Equal(t, 11, w.Height(), "bottom row is reserved for status")
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := simScreen(t, 10, 6)
	w := rain.New(10, 5, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := Run(ctx, screen, w, Options{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
