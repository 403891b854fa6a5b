package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// config holds the render settings. Values come from the TOML file first;
// flags given on the command line override them.
type config struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Bands    int    `toml:"bands"`
	LogLevel string `toml:"log_level"`
	Output   string `toml:"output"`
	Backend  string `toml:"backend"`
	Debug    bool   `toml:"debug"`
}

func defaultConfig() config {
	return config{
		LogLevel: "warn",
		Output:   "out.png",
	}
}

// loadConfig decodes a TOML file over cfg. Unknown keys are rejected.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// applyFlags copies the flags that were set explicitly into cfg.
func applyFlags(fs *flag.FlagSet, f *flags, cfg *config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = f.width
		case "height":
			cfg.Height = f.height
		case "bands":
			cfg.Bands = f.bands
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "output":
			cfg.Output = f.output
		case "backend":
			cfg.Backend = f.backend
		case "debug":
			cfg.Debug = f.debug
		}
	})
}

func (c *config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
