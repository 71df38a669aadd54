// Package config defines application configuration and layered loading.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WindowWidth and WindowHeight size the demo window.
	WindowWidth  int `koanf:"window_width"`
	WindowHeight int `koanf:"window_height"`

	WindowTitle string `koanf:"window_title"`

	TargetFPS int `koanf:"target_fps"`

	// MetricsAddr serves prometheus metrics when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// FloorExtent is the half-size of the detectable floor surface.
	FloorExtent float64 `koanf:"floor_extent"`

	// SpawnNudge lifts spawned objects off the surface to avoid z-fighting.
	SpawnNudge float64 `koanf:"spawn_nudge"`

	// PulseSeconds is the reticle attention-tint duration after a spawn.
	PulseSeconds float64 `koanf:"pulse_seconds"`

	// PickMaxDistance bounds the pointer pick ray.
	PickMaxDistance float64 `koanf:"pick_max_distance"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		WindowWidth:     1280,
		WindowHeight:    720,
		WindowTitle:     "xrplace",
		TargetFPS:       60,
		MetricsAddr:     "",
		FloorExtent:     20,
		SpawnNudge:      0.01,
		PulseSeconds:    0.3,
		PickMaxDistance: 100,
	}
}
