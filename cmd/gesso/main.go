// Command gesso renders a YAML scene file to an image.
//
// Usage:
//
//	gesso [flags] scene.yaml
//
// The frame size comes from the scene file unless -width and -height are
// given. With -watch the scene is re-rendered whenever the file changes;
// with -debug a debug server exposes the scene until the process exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/debug"
)

// flags mirrors config for command-line overrides.
type flags struct {
	configPath string
	width      int
	height     int
	bands      int
	logLevel   string
	output     string
	backend    string
	debug      bool
	watch      bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gesso: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var f flags
	fs := flag.NewFlagSet("gesso", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "TOML config file")
	fs.IntVar(&f.width, "width", 0, "image width (default: from the scene)")
	fs.IntVar(&f.height, "height", 0, "image height (default: from the scene)")
	fs.IntVar(&f.bands, "bands", 0, "software renderer worker bands (default: GOMAXPROCS)")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&f.output, "output", "out.png", "output image (.png, .bmp, .tif)")
	fs.StringVar(&f.backend, "backend", "", "render backend: software or wgpu (default: best available)")
	fs.BoolVar(&f.debug, "debug", false, "serve the scene on a debug socket")
	fs.BoolVar(&f.watch, "watch", false, "re-render when the scene file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one scene file")
	}
	scenePath := fs.Arg(0)

	cfg := defaultConfig()
	if f.configPath != "" {
		if err := loadConfig(f.configPath, &cfg); err != nil {
			return err
		}
	}
	applyFlags(fs, &f, &cfg)

	level, err := cfg.level()
	if err != nil {
		return err
	}
	gesso.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	r := newSceneRenderer(cfg)
	defer r.close()

	if cfg.Debug {
		srv, err := debug.NewServer()
		if err != nil {
			return err
		}
		defer srv.Close()
		r.debug = srv
	}

	if err := r.renderFile(scenePath); err != nil {
		return err
	}
	if !f.watch && !cfg.Debug {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.watch {
		return watchFile(ctx, scenePath, func() {
			if err := r.renderFile(scenePath); err != nil {
				gesso.Logger().Error("render failed", "scene", scenePath, "error", err)
			}
		})
	}
	<-ctx.Done()
	return nil
}
