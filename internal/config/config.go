// Package config loads preview server settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the preview server settings.
type Config struct {
	// Addr is the listen address for the preview server.
	Addr string `toml:"addr"`

	// LogLevel sets the zerolog level: trace, debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Pretty enables pretty-printed HTML in snapshots and exports.
	Pretty bool `toml:"pretty"`

	// MetricsNamespace overrides the Prometheus namespace.
	MetricsNamespace string `toml:"metrics_namespace"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// duration wraps time.Duration for TOML decoding of strings like "5s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:             ":8420",
		LogLevel:         "info",
		Pretty:           false,
		MetricsNamespace: "reflow",
		ShutdownTimeout:  duration{5 * time.Second},
	}
}

// Load reads a TOML config file, layering it over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
