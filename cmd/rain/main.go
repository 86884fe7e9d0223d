//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"rainscape/internal/app"
	"rainscape/internal/config"
	"rainscape/internal/logger"
	"rainscape/internal/metrics"
)

func main() {
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logr := logger.New(cfg.LoggerOptions(true))
	defer logger.Sync(logr)

	world, err := cfg.NewWorld(logr)
	if err != nil {
		logr.Fatal("build world", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := app.Options{
		Scale:    cfg.Viewer.Scale,
		HUDWidth: cfg.Viewer.HUDWidth,
		Log:      logr,
	}
	if cfg.Metrics.Enabled {
		rec := metrics.NewRecorder(prometheus.Labels{"viewer": "window"})
		opts.Observe = rec.Observe
		go func() {
			if err := rec.Serve(ctx, cfg.Metrics.Addr, cfg.Metrics.Path, logr); err != nil {
				logr.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	game := app.New(world, opts)

	ebiten.SetWindowTitle("rainscape")
	ebiten.SetTPS(cfg.Viewer.TPS)
	ebiten.SetWindowSize(world.Width()*cfg.Viewer.Scale+cfg.Viewer.HUDWidth, world.Height()*cfg.Viewer.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logr.Fatal("run", zap.Error(err))
	}
}
