// Command rain-bench sweeps rain parameters headlessly and reports the
// populations each setting produces.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"rainscape/internal/config"
	"rainscape/internal/logger"
	"rainscape/internal/metrics"
	"rainscape/internal/scenegen"
	"rainscape/internal/sweep"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rain-bench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.NewFlags(flag.CommandLine)
	steps := flag.Int("steps", 600, "measured ticks per scenario")
	warmup := flag.Int("warmup", 200, "unmeasured ticks before measuring")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	sortKey := flag.String("sort", "streams", "rank by "+strings.Join(sweep.SortKeys, "|"))
	top := flag.Int("top", 10, "results to print")
	splash := flag.String("splash", "", "comma separated splash chances")
	slide := flag.String("slide", "", "comma separated slide chances")
	flow := flag.String("flow", "", "comma separated flow speeds")
	divisor := flag.String("divisor", "", "comma separated spawn divisors")
	hold := flag.Bool("hold", false, "keep serving metrics after the sweep until interrupted")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logr := logger.New(cfg.LoggerOptions(true))
	defer logger.Sync(logr)
	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	grid := sweep.DefaultGrid()
	if grid.SplashChance, err = floatsOr(*splash, grid.SplashChance); err != nil {
		return fmt.Errorf("-splash: %w", err)
	}
	if grid.SlideChance, err = floatsOr(*slide, grid.SlideChance); err != nil {
		return fmt.Errorf("-slide: %w", err)
	}
	if grid.FlowSpeed, err = floatsOr(*flow, grid.FlowSpeed); err != nil {
		return fmt.Errorf("-flow: %w", err)
	}
	if grid.SpawnDivisor, err = intsOr(*divisor, grid.SpawnDivisor); err != nil {
		return fmt.Errorf("-divisor: %w", err)
	}

	raster, err := scenegen.Generate(cfg.SceneOptions())
	if err != nil {
		return fmt.Errorf("generate scene: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := sweep.Options{
		Base:    cfg.WorldConfig(),
		Scene:   raster,
		Steps:   *steps,
		Warmup:  *warmup,
		Workers: *workers,
		Log:     logr,
	}

	var serveDone chan struct{}
	if cfg.Metrics.Enabled {
		recs := make([]*metrics.Recorder, *workers)
		for i := range recs {
			recs[i] = metrics.NewRecorder(prometheus.Labels{"worker": strconv.Itoa(i)})
		}
		opts.Observer = func(worker int) sweep.Observer { return recs[worker].Observe }

		serveDone = make(chan struct{})
		go func() {
			defer close(serveDone)
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, cfg.Metrics.Path, metrics.Handler(recs...), logr); err != nil {
				logr.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	points := grid.Points(opts.Base.Params)
	fmt.Printf("Sweeping %d parameter sets on %dx%d (%d workers, %d+%d steps)\n",
		len(points), opts.Base.Width, opts.Base.Height, *workers, *warmup, *steps)

	start := time.Now()
	results, err := sweep.Run(ctx, opts, points)
	if err != nil {
		return err
	}
	sweep.Sort(results, *sortKey)

	fmt.Printf("\nTop %d by %s (elapsed %s):\n", min(*top, len(results)), *sortKey, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, results[i])
	}

	if serveDone != nil {
		if *hold {
			fmt.Printf("\nServing metrics on %s%s, interrupt to exit\n", cfg.Metrics.Addr, cfg.Metrics.Path)
		} else {
			stop()
		}
		<-serveDone
	}
	return nil
}

func floatsOr(list string, def []float32) ([]float32, error) {
	if strings.TrimSpace(list) == "" {
		return def, nil
	}
	var out []float32
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}

func intsOr(list string, def []int) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return def, nil
	}
	var out []int
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
