package app

import (
	"time"

	"go.uber.org/zap"

	"rainscape/internal/sims/rain"
)

// Options configures the windowed viewer.
type Options struct {
	Scale    int
	HUDWidth int
	Seed     int64
	Log      *zap.Logger
	// Observe, when set, receives every tick's duration and the stats after it.
	Observe func(time.Duration, rain.Stats)
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.HUDWidth < 0 {
		o.HUDWidth = 0
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}
