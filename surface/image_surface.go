// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/gesso/render"
)

// ImageSurface is an in-memory surface whose drawables write into a single
// *image.RGBA.
//
// Every drawable handed out by NextDrawable aliases the same image, so the
// image always holds the last rendered frame. Availability can be switched
// off with SetAvailable to model a presentation layer that has no drawable
// ready.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	_ = renderer.Render(sc, s)
//	img, _ := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	unavailable bool
	closed      bool

	acquired  int
	presented int
}

// NewImageSurface creates an in-memory surface with the given dimensions.
// Dimensions below 1 are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width, height = max(width, 1), max(height, 1)
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface that renders into img
// directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		width:  b.Dx(),
		height: b.Dy(),
		img:    img,
	}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int {
	return s.height
}

// DrawableSize returns the drawable size in device pixels.
func (s *ImageSurface) DrawableSize() (float32, float32) {
	return float32(s.width), float32(s.height)
}

// Resize changes the drawable size. Fractional sizes are rounded up.
// Contents are discarded when the size changes.
func (s *ImageSurface) Resize(width, height float32) {
	w := max(int(width+0.999), 1)
	h := max(int(height+0.999), 1)
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// SetAvailable controls whether NextDrawable hands out drawables.
func (s *ImageSurface) SetAvailable(available bool) {
	s.unavailable = !available
}

// NextDrawable returns the drawable for the next frame. It returns false
// after Close or while the surface is unavailable.
func (s *ImageSurface) NextDrawable() (render.Drawable, bool) {
	if s.closed || s.unavailable {
		return nil, false
	}
	s.acquired++
	return &imageDrawable{surface: s, img: s.img}, true
}

// Acquired returns how many drawables have been handed out.
func (s *ImageSurface) Acquired() int {
	return s.acquired
}

// Presented returns how many drawables have been presented.
func (s *ImageSurface) Presented() int {
	return s.presented
}

// Image returns the underlying image. This is a direct reference, not a
// copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() (*image.RGBA, error) {
	if s.closed {
		return nil, ErrClosed
	}
	dst := image.NewRGBA(s.img.Bounds())
	copy(dst.Pix, s.img.Pix)
	return dst, nil
}

// Save encodes the surface contents to path. The format is chosen from the
// file extension: .png, .bmp, .tif or .tiff.
func (s *ImageSurface) Save(path string) error {
	img, err := s.Snapshot()
	if err != nil {
		return err
	}
	return SaveImage(path, img)
}

// SaveImage encodes img to path, choosing the format from the extension.
func SaveImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(f *os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	case ".tif", ".tiff":
		encode = func(f *os.File) error { return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path) //nolint:gosec // path is caller-provided output location
	if err != nil {
		return fmt.Errorf("surface: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("surface: encode %s: %w", path, err)
	}
	return f.Close()
}

// Close releases the image. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

// imageDrawable is one frame of an ImageSurface.
type imageDrawable struct {
	surface *ImageSurface
	img     *image.RGBA
}

// Image returns the pixel buffer to draw into.
func (d *imageDrawable) Image() *image.RGBA {
	return d.img
}

// Present marks the frame as shown.
func (d *imageDrawable) Present() error {
	if d.surface.closed {
		return ErrClosed
	}
	d.surface.presented++
	return nil
}

var (
	_ Surface              = (*ImageSurface)(nil)
	_ render.PixelDrawable = (*imageDrawable)(nil)
)
