// Command gessobench measures frame time for scenes of random quads.
//
// Usage:
//
//	gessobench [-quads 10k] [-frames 100] [-backend software|wgpu]
//
// Each frame rebuilds the scene from a generator seeded with the frame
// number, so runs are reproducible and every frame differs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/backend"
	_ "github.com/gogpu/gesso/backend/wgpu"
	"github.com/gogpu/gesso/scene"
)

type benchmark struct {
	quads   int
	frames  int
	warmup  int
	width   int
	height  int
	bands   int
	seed    uint64
	backend string
	quiet   bool
	out     io.Writer
}

func main() {
	b := benchmark{out: os.Stdout}
	if err := b.run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gessobench: %v\n", err)
		os.Exit(1)
	}
}

func (b *benchmark) parse(args []string) error {
	fs := flag.NewFlagSet("gessobench", flag.ContinueOnError)
	quads := fs.String("quads", "10k", "quads per frame (e.g. 1000, 1k, 100k, 1m)")
	fs.IntVar(&b.frames, "frames", 100, "measured frames")
	fs.IntVar(&b.warmup, "warmup", 10, "unmeasured warmup frames")
	fs.IntVar(&b.width, "width", 1280, "frame width")
	fs.IntVar(&b.height, "height", 720, "frame height")
	fs.IntVar(&b.bands, "bands", 0, "software renderer bands (default: GOMAXPROCS)")
	fs.Uint64Var(&b.seed, "seed", 0, "added to the frame number to seed each frame")
	fs.StringVar(&b.backend, "backend", "", "render backend: software or wgpu (default: best available)")
	fs.BoolVar(&b.quiet, "quiet", false, "hide the progress bar")
	verbose := fs.Bool("v", false, "log renderer diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	n, err := parseCount(*quads)
	if err != nil {
		return err
	}
	b.quads = n
	if b.frames < 1 {
		return fmt.Errorf("-frames must be at least 1")
	}
	if *verbose {
		gesso.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return nil
}

func (b *benchmark) run(args []string) error {
	if err := b.parse(args); err != nil {
		return err
	}

	be, err := backend.OpenNamed(b.backend, backend.Options{Width: b.width, Height: b.height, Bands: b.bands})
	if err != nil {
		return err
	}
	defer be.Close()
	surf, renderer := be.Surface(), be.Renderer()

	s := scene.New()
	stats := newFrameStats(b.frames)

	var pb *progressbar.ProgressBar
	if !b.quiet {
		pb = progressbar.Default(int64(b.warmup + b.frames))
		defer pb.Close()
	}

	for frame := range b.warmup + b.frames {
		start := time.Now()
		buildScene(s, b.quads, float32(b.width), float32(b.height), b.seed+uint64(frame))
		built := time.Now()
		if err := renderer.Render(s, surf); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		done := time.Now()

		if frame >= b.warmup {
			stats.record(done.Sub(start), built.Sub(start), done.Sub(built))
		}
		if pb != nil {
			_ = pb.Add(1)
		}
	}
	if pb != nil {
		_ = pb.Finish()
	}

	fmt.Fprintf(b.out, "\nbackend %s, %dx%d\n", be.Name(), b.width, b.height)
	stats.report(b.out, b.quads, b.warmup)
	return nil
}

// buildScene refills s with n random quads kept inside a width x height
// viewport. Sizes range from 4 to min(100, width/10, height/10) pixels and
// alpha from 0.5 to 1.
func buildScene(s *scene.Scene, n int, width, height float32, seed uint64) {
	s.Clear()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	const minSize = 4
	maxSize := min(100, width/10, height/10)
	if maxSize <= minSize {
		maxSize = minSize + 1
	}
	between := func(lo, hi float32) float32 {
		return lo + rng.Float32()*(hi-lo)
	}

	for range n {
		w := between(minSize, maxSize)
		h := between(minSize, maxSize)
		x := between(0, max(width-w, 1))
		y := between(0, max(height-h, 1))
		c := scene.RGBA(rng.Float32(), rng.Float32(), rng.Float32(), between(0.5, 1))
		s.PushQuad(scene.NewQuad(scene.NewRect(x, y, w, h), c))
	}
}

// parseCount accepts a plain integer or one with a k or m suffix.
func parseCount(s string) (int, error) {
	mult := 1
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(lower, "k"):
		mult, lower = 1_000, strings.TrimSuffix(lower, "k")
	case strings.HasSuffix(lower, "m"):
		mult, lower = 1_000_000, strings.TrimSuffix(lower, "m")
	}
	n, err := strconv.Atoi(lower)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid quad count %q", s)
	}
	return n * mult, nil
}
