// Package gesso renders per-frame scenes of rounded rectangles with a
// single instanced draw call.
//
// # Overview
//
// An application rebuilds a [scene.Scene] of [scene.Quad] values every
// frame. A backend renderer packs the quads into a GPU-visible instance
// buffer, acquires one drawable from its surface, and draws every quad with
// one instanced draw of a shared unit quad. Rounded corners, borders, and
// clip rectangles are evaluated per pixel.
//
// # Quick Start
//
//	s := scene.New()
//	s.PushQuad(scene.NewQuad(scene.NewRect(100, 100, 200, 200), scene.RGB(1, 0, 0)))
//
//	surf := surface.NewImageSurface(800, 600)
//	r := render.NewSoftwareRenderer()
//	if err := r.Render(s, surf); err != nil {
//	    log.Fatal(err)
//	}
//	_ = surf.Save("frame.png")
//
// # Backends
//
//   - render.SoftwareRenderer: CPU backend, banded per-pixel evaluation
//   - backend/wgpu.Renderer: wgpu/hal backend with a WGSL quad program
//   - render.DebugRenderer: counts frames and quads without drawing
//
// Package backend opens a surface together with a matching renderer by
// name ("software", "wgpu") or by priority.
//
// # Tools
//
//   - scenefile: YAML scene documents
//   - debug: JSON-RPC debug server and client over a Unix socket
//   - cmd/gesso, cmd/gessobench, cmd/gessodebug
//
// # Logging
//
// gesso is silent by default. Call [SetLogger] to receive diagnostics from
// every sub-package.
package gesso
