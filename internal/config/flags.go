package config

import (
	"flag"
	"strconv"
)

// Flags binds the command-line overrides. Only flags the user actually set
// are applied, so the priority is defaults < file < flags.
type Flags struct {
	fs *flag.FlagSet

	path        string
	sim         string
	width       int
	height      int
	scale       int
	tps         int
	seed        string
	sceneSeed   int64
	debug       bool
	logFile     string
	metricsAddr string
}

// NewFlags registers the shared viewer flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "path to config file")
	fs.StringVar(&f.sim, "sim", "", "simulation to run")
	fs.IntVar(&f.width, "width", 0, "simulation width in cells")
	fs.IntVar(&f.height, "height", 0, "simulation height in cells")
	fs.IntVar(&f.scale, "scale", 0, "pixel scale multiplier")
	fs.IntVar(&f.tps, "tps", 0, "ticks per second")
	fs.StringVar(&f.seed, "seed", "", "rain seed (decimal or 0x hex)")
	fs.Int64Var(&f.sceneSeed, "scene-seed", 0, "procedural scene seed")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "rotating log file path")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return f
}

// Path returns the explicit config path.
func (f *Flags) Path() string { return f.path }

// Load reads the config file named by -config and applies the set flags.
func (f *Flags) Load() (*Config, error) {
	cfg, err := Load(f.path)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	return cfg, nil
}

// Apply copies every flag that was set on the command line into cfg.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sim":
			cfg.Viewer.Sim = f.sim
		case "width":
			cfg.Viewer.Width = f.width
		case "height":
			cfg.Viewer.Height = f.height
		case "scale":
			cfg.Viewer.Scale = f.scale
		case "tps":
			cfg.Viewer.TPS = f.tps
		case "seed":
			if v, err := strconv.ParseUint(f.seed, 0, 32); err == nil {
				cfg.Rain.Seed = uint32(v)
			}
		case "scene-seed":
			cfg.Scene.Seed = f.sceneSeed
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log-file":
			cfg.Logging.LogFile = f.logFile
		case "metrics-addr":
			cfg.Metrics.Addr = f.metricsAddr
			cfg.Metrics.Enabled = f.metricsAddr != ""
		}
	})
}
