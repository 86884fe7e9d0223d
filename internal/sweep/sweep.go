// Package sweep runs rain worlds headlessly across a grid of parameters and
// summarises how each setting shapes the populations.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rainscape/internal/scene"
	"rainscape/internal/sims/rain"
)

// Point is one parameter combination.
type Point struct {
	SplashChance float32
	SlideChance  float32
	FlowSpeed    float32
	SpawnDivisor int
}

func (p Point) String() string {
	return fmt.Sprintf("splash=%.2f slide=%.2f flow=%.2f divisor=%d",
		p.SplashChance, p.SlideChance, p.FlowSpeed, p.SpawnDivisor)
}

// Apply overrides the swept fields of params.
func (p Point) Apply(params rain.Params) rain.Params {
	params.SplashChance = p.SplashChance
	params.SlideChance = p.SlideChance
	params.FlowSpeed = p.FlowSpeed
	params.SpawnDivisor = p.SpawnDivisor
	params.Sanitize()
	return params
}

// Grid lists the values to try per axis. An empty axis holds the base value.
type Grid struct {
	SplashChance []float32
	SlideChance  []float32
	FlowSpeed    []float32
	SpawnDivisor []int
}

// DefaultGrid spans the interesting range of every swept parameter.
func DefaultGrid() Grid {
	return Grid{
		SplashChance: []float32{0.3, 0.7, 1},
		SlideChance:  []float32{0.2, 0.6, 1},
		FlowSpeed:    []float32{0.2, 0.4, 0.8},
		SpawnDivisor: []int{16, 64},
	}
}

// Points expands the grid into every combination, in axis order.
func (g Grid) Points(base rain.Params) []Point {
	splash := orBase(g.SplashChance, base.SplashChance)
	slide := orBase(g.SlideChance, base.SlideChance)
	flow := orBase(g.FlowSpeed, base.FlowSpeed)
	divisor := orBase(g.SpawnDivisor, base.SpawnDivisor)

	points := make([]Point, 0, len(splash)*len(slide)*len(flow)*len(divisor))
	for _, sc := range splash {
		for _, sl := range slide {
			for _, fs := range flow {
				for _, dv := range divisor {
					points = append(points, Point{SplashChance: sc, SlideChance: sl, FlowSpeed: fs, SpawnDivisor: dv})
				}
			}
		}
	}
	return points
}

func orBase[T any](values []T, base T) []T {
	if len(values) == 0 {
		return []T{base}
	}
	return values
}

// Result summarises one scenario after warmup.
type Result struct {
	Point Point
	Ticks int

	MeanDroplets float64
	MeanSplashes float64
	MeanStreams  float64

	PeakDroplets int
	PeakSplashes int
	PeakStreams  int

	SplashesSpawned uint64
	StreamsSpawned  uint64

	Elapsed time.Duration
}

// PerTick is the average wall time of one measured tick.
func (r Result) PerTick() time.Duration {
	if r.Ticks == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Ticks)
}

func (r Result) String() string {
	return fmt.Sprintf("drops=%.0f/%d splashes=%.1f/%d streams=%.1f/%d spawned=%d/%d tick=%s %s",
		r.MeanDroplets, r.PeakDroplets, r.MeanSplashes, r.PeakSplashes, r.MeanStreams, r.PeakStreams,
		r.SplashesSpawned, r.StreamsSpawned, r.PerTick(), r.Point)
}

// Observer receives every tick a worker runs.
type Observer func(time.Duration, rain.Stats)

// Options configures a sweep.
type Options struct {
	Base   rain.Config
	Scene  *scene.Raster
	Steps  int
	Warmup int
	// Workers defaults to the CPU count.
	Workers int
	Log     *zap.Logger
	// Observer, when set, returns the tick observer for a worker index.
	Observer func(worker int) Observer
}

// RunPoint simulates one scenario. Warmup ticks are run but not measured.
func RunPoint(opts Options, p Point, observe Observer) Result {
	cfg := opts.Base
	cfg.Params = p.Apply(cfg.Params)
	w := rain.NewWithConfig(cfg, opts.Scene)
	if opts.Log != nil {
		w.SetLogger(opts.Log)
	}

	for i := 0; i < opts.Warmup; i++ {
		w.Tick()
	}
	before := w.Stats()

	res := Result{Point: p, Ticks: opts.Steps}
	var sumD, sumS, sumT int
	for i := 0; i < opts.Steps; i++ {
		start := time.Now()
		w.Tick()
		d := time.Since(start)
		res.Elapsed += d

		s := w.Stats()
		if observe != nil {
			observe(d, s)
		}
		sumD += s.Droplets
		sumS += s.Splashes
		sumT += s.Streams
		res.PeakDroplets = max(res.PeakDroplets, s.Droplets)
		res.PeakSplashes = max(res.PeakSplashes, s.Splashes)
		res.PeakStreams = max(res.PeakStreams, s.Streams)
	}
	after := w.Stats()
	res.SplashesSpawned = after.SplashesSpawned - before.SplashesSpawned
	res.StreamsSpawned = after.StreamsSpawned - before.StreamsSpawned
	if opts.Steps > 0 {
		n := float64(opts.Steps)
		res.MeanDroplets = float64(sumD) / n
		res.MeanSplashes = float64(sumS) / n
		res.MeanStreams = float64(sumT) / n
	}
	return res
}

// Run fans the points out over a worker pool. Results come back in point
// order. Cancelling ctx stops handing out new points.
func Run(ctx context.Context, opts Options, points []Point) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(1, len(points)))
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	type job struct {
		idx int
		p   Point
	}
	jobs := make(chan job)
	results := make([]Result, len(points))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, p := range points {
			select {
			case jobs <- job{i, p}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for wi := 0; wi < workers; wi++ {
		wi := wi
		var observe Observer
		if opts.Observer != nil {
			observe = opts.Observer(wi)
		}
		g.Go(func() error {
			for j := range jobs {
				results[j.idx] = RunPoint(opts, j.p, observe)
				log.Debug("scenario done", zap.Int("worker", wi), zap.Stringer("point", j.p))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SortKeys are the accepted Sort keys.
var SortKeys = []string{"streams", "splashes", "droplets", "speed"}

// Sort orders results best first by key. Unknown keys leave the order.
func Sort(results []Result, key string) {
	var metric func(Result) float64
	switch key {
	case "streams":
		metric = func(r Result) float64 { return r.MeanStreams }
	case "splashes":
		metric = func(r Result) float64 { return r.MeanSplashes }
	case "droplets":
		metric = func(r Result) float64 { return r.MeanDroplets }
	case "speed":
		metric = func(r Result) float64 { return -float64(r.PerTick()) }
	default:
		return
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		ma, mb := metric(a), metric(b)
		switch {
		case ma > mb:
			return -1
		case ma < mb:
			return 1
		}
		return 0
	})
}
