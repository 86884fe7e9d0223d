// Package metrics exports rain world statistics to prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rainscape/internal/sims/rain"
)

const namespace = "rainscape"

// Recorder holds the collectors for one world. Each recorder owns its
// registry so several can coexist in tests and sweeps.
type Recorder struct {
	reg *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	population   *prometheus.GaugeVec
	spawned      *prometheus.CounterVec

	prev rain.Stats
}

// NewRecorder creates and registers the collectors. Extra labels are
// attached to every series.
func NewRecorder(constLabels prometheus.Labels) *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "ticks_total",
			Help:        "Simulation ticks advanced.",
			ConstLabels: constLabels,
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "tick_duration_seconds",
			Help:        "Wall time of one simulation tick.",
			Buckets:     prometheus.ExponentialBuckets(0.00001, 2, 14),
			ConstLabels: constLabels,
		}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "population",
			Help:        "Live entities per population.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "spawned_total",
			Help:        "Entities created by impacts.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
	}
	r.reg.MustRegister(r.ticks, r.tickDuration, r.population, r.spawned)
	return r
}

// Registry exposes the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Observe records one tick that took d and left the world at s.
func (r *Recorder) Observe(d time.Duration, s rain.Stats) {
	r.tickDuration.Observe(d.Seconds())

	if s.Ticks >= r.prev.Ticks {
		r.ticks.Add(float64(s.Ticks - r.prev.Ticks))
	} else {
		// The world was reset; count from zero.
		r.ticks.Add(float64(s.Ticks))
	}
	if s.SplashesSpawned > r.prev.SplashesSpawned {
		r.spawned.WithLabelValues("splashes").Add(float64(s.SplashesSpawned - r.prev.SplashesSpawned))
	}
	if s.StreamsSpawned > r.prev.StreamsSpawned {
		r.spawned.WithLabelValues("streams").Add(float64(s.StreamsSpawned - r.prev.StreamsSpawned))
	}

	r.population.WithLabelValues("droplets").Set(float64(s.Droplets))
	r.population.WithLabelValues("splashes").Set(float64(s.Splashes))
	r.population.WithLabelValues("streams").Set(float64(s.Streams))

	r.prev = s
}

// Handler serves the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return Handler(r)
}

// Handler serves the merged registries of several recorders. Recorders
// must carry distinct const labels.
func Handler(recs ...*Recorder) http.Handler {
	gatherers := make(prometheus.Gatherers, 0, len(recs))
	for _, r := range recs {
		gatherers = append(gatherers, r.reg)
	}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}

// Serve runs an HTTP endpoint for the recorder until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr, path string, log *zap.Logger) error {
	return Serve(ctx, addr, path, r.Handler(), log)
}

// Serve exposes h on addr under path until ctx is cancelled.
func Serve(ctx context.Context, addr, path string, h http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle(path, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics endpoint listening", zap.String("addr", addr), zap.String("path", path))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics shutdown: %w", err)
		}
		return nil
	}
}
