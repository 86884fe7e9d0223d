// Command rain-term renders the rain world as text in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"rainscape/internal/config"
	"rainscape/internal/logger"
	"rainscape/internal/metrics"
	"rainscape/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rain-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The screen owns stdout, so logs only go to the file when one is set.
	logr := logger.New(cfg.LoggerOptions(false))
	defer logger.Sync(logr)

	world, err := cfg.NewWorld(logr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := term.Options{TPS: cfg.Viewer.TPS, Log: logr}
	if cfg.Metrics.Enabled {
		rec := metrics.NewRecorder(prometheus.Labels{"viewer": "terminal"})
		opts.Observe = rec.Observe
		go func() {
			if err := rec.Serve(ctx, cfg.Metrics.Addr, cfg.Metrics.Path, logr); err != nil {
				logr.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	err = term.Run(ctx, screen, world, opts)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
