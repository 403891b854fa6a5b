// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"

	"github.com/gogpu/gesso/scene"
)

// Errors shared by renderer implementations.
var (
	// ErrNilSurface is returned when Render is called without a surface.
	ErrNilSurface = errors.New("render: nil surface")

	// ErrUnsupportedDrawable is returned when a surface hands out a drawable
	// the renderer cannot draw into.
	ErrUnsupportedDrawable = errors.New("render: unsupported drawable")
)

// Renderer turns a Scene into a visible frame on a Surface.
//
// Each backend (software, wgpu) provides one implementation. Render follows
// the same protocol everywhere:
//
//   - An empty scene returns immediately: no drawable is acquired and
//     nothing is submitted.
//   - Otherwise the instance buffer is grown if needed and every quad is
//     packed into it in scene order.
//   - One drawable is acquired from the surface. If none is available the
//     frame is skipped and Render returns nil.
//   - The drawable is cleared to opaque black and all quads are drawn with
//     one instanced draw, then the drawable is presented.
//
// Render returns after submission. The renderer does not retain the scene
// past the call.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from the goroutine that drives the frame loop.
type Renderer interface {
	// Render draws s onto surf.
	//
	// The returned error reports backend failures (submission or present).
	// A missing drawable is not an error.
	Render(s *scene.Scene, surf Surface) error
}

// Surface provides drawables of a known size.
//
// The surface itself (window, layer, offscreen texture) is owned by the
// host application; renderers only acquire one drawable per frame from it.
type Surface interface {
	// DrawableSize returns the current drawable size in device pixels.
	DrawableSize() (width, height float32)

	// Resize changes the drawable size. Drawables acquired afterwards have
	// the new size.
	Resize(width, height float32)

	// NextDrawable acquires the drawable for this frame. It returns false
	// when no drawable is available (for example while the surface is
	// being resized or torn down).
	NextDrawable() (Drawable, bool)
}

// Drawable is the target image for one frame.
type Drawable interface {
	// Present queues the drawable for display.
	Present() error
}

// PixelDrawable is a drawable backed by CPU-visible memory.
type PixelDrawable interface {
	Drawable

	// Image returns the pixels to draw into.
	Image() *image.RGBA
}

// ClearColor is the color every drawable is cleared to before quads are
// drawn.
var ClearColor = scene.Black
