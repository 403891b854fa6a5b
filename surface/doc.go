// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides presentation targets for renderers.
//
// A surface hands out drawables, one per frame, and reports the size of
// the drawables it produces. Renderers acquire a drawable, draw into it
// and present it. The package supplies:
//
//   - ImageSurface: an in-memory surface whose drawables are *image.RGBA
//     buffers, used by the software renderer and by tests
//   - Registry: named surface backends selected by priority
//
// GPU backends register their own surfaces with the registry. The wgpu
// backend registers an offscreen texture surface under the name "wgpu".
//
// # Usage
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	r := render.NewSoftwareRenderer()
//	if err := r.Render(sc, s); err != nil {
//	    return err
//	}
//	if err := s.Save("frame.png"); err != nil {
//	    return err
//	}
//
// # Registry
//
//	s, err := surface.NewSurfaceByName("image", 800, 600)
//	// or pick the best available backend:
//	s, err := surface.NewSurface(800, 600)
package surface
