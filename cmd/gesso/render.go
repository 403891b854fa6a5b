package main

import (
	"fmt"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/backend"
	_ "github.com/gogpu/gesso/backend/wgpu"
	"github.com/gogpu/gesso/debug"
	"github.com/gogpu/gesso/scene"
	"github.com/gogpu/gesso/scenefile"
	"github.com/gogpu/gesso/surface"
)

// sceneRenderer keeps a backend alive across renders of the
// same file so watch mode reuses the instance buffer.
type sceneRenderer struct {
	cfg   config
	debug *debug.Server

	backend backend.Backend
	width   int
	height  int
	clear   scene.Color
}

func newSceneRenderer(cfg config) *sceneRenderer {
	return &sceneRenderer{cfg: cfg}
}

func (r *sceneRenderer) renderFile(path string) error {
	doc, err := scenefile.LoadFile(path)
	if err != nil {
		return err
	}

	width, height := doc.Width, doc.Height
	if r.cfg.Width > 0 {
		width = r.cfg.Width
	}
	if r.cfg.Height > 0 {
		height = r.cfg.Height
	}
	if err := r.ensure(width, height, doc.ClearColor()); err != nil {
		return err
	}

	s := doc.Scene()
	if r.debug != nil {
		r.debug.UpdateScene(debug.NewSnapshot(s, float32(width), float32(height), 1))
		r.debug.ApplyOverlays(s)
	}
	if s.IsEmpty() {
		gesso.Logger().Warn("scene is empty, nothing rendered", "scene", path)
		return nil
	}

	if err := r.backend.Renderer().Render(s, r.backend.Surface()); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	img, err := r.backend.Surface().Snapshot()
	if err != nil {
		return err
	}
	if err := surface.SaveImage(r.cfg.Output, img); err != nil {
		return err
	}
	gesso.Logger().Info("rendered", "scene", path, "quads", s.QuadCount(),
		"width", width, "height", height, "output", r.cfg.Output, "backend", r.backend.Name())
	return nil
}

// ensure opens the backend, replacing it when the frame size or clear
// color changed.
func (r *sceneRenderer) ensure(width, height int, bg scene.Color) error {
	if r.backend != nil && r.width == width && r.height == height && r.clear == bg {
		return nil
	}
	r.close()

	b, err := backend.OpenNamed(r.cfg.Backend, backend.Options{
		Width:      width,
		Height:     height,
		Bands:      r.cfg.Bands,
		ClearColor: &bg,
	})
	if err != nil {
		return err
	}
	gesso.Logger().Debug("backend opened", "backend", b.Name(), "width", width, "height", height)

	r.backend, r.width, r.height, r.clear = b, width, height, bg
	return nil
}

func (r *sceneRenderer) close() {
	if r.backend == nil {
		return
	}
	if err := r.backend.Close(); err != nil {
		gesso.Logger().Warn("backend close failed", "error", err)
	}
	r.backend = nil
}
