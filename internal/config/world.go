package config

import (
	"fmt"

	"go.uber.org/zap"

	"rainscape/internal/scenegen"
	"rainscape/internal/sims/rain"
)

// NewWorld generates the configured scene and builds a rain world over it.
func (c *Config) NewWorld(log *zap.Logger) (*rain.World, error) {
	raster, err := scenegen.Generate(c.SceneOptions())
	if err != nil {
		return nil, fmt.Errorf("generate scene: %w", err)
	}
	w := rain.NewWithConfig(c.WorldConfig(), raster)
	w.SetLogger(log)
	if log != nil {
		log.Debug("world ready",
			zap.Int("width", w.Width()),
			zap.Int("height", w.Height()),
			zap.Int("scene_w", raster.W),
			zap.Int("scene_h", raster.H),
			zap.Int64("scene_seed", c.Scene.Seed),
			zap.Uint32("seed", c.Rain.Seed))
	}
	return w, nil
}
