// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// fakeSurface is a Surface backed by one image.RGBA that counts every
// acquisition attempt.
type fakeSurface struct {
	width, height float32
	unavailable   bool
	img           *image.RGBA

	attempts int
	acquired int
	presents int
	present  error
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{
		width:  float32(w),
		height: float32(h),
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

func (s *fakeSurface) DrawableSize() (float32, float32) { return s.width, s.height }

func (s *fakeSurface) Resize(w, h float32) {
	s.width, s.height = w, h
	s.img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
}

func (s *fakeSurface) NextDrawable() (Drawable, bool) {
	s.attempts++
	if s.unavailable {
		return nil, false
	}
	s.acquired++
	return &fakeDrawable{surface: s}, true
}

type fakeDrawable struct {
	surface *fakeSurface
}

func (d *fakeDrawable) Image() *image.RGBA { return d.surface.img }

func (d *fakeDrawable) Present() error {
	d.surface.presents++
	return d.surface.present
}

// opaqueDrawable has no pixel access.
type opaqueSurface struct{ fakeSurface }

type opaqueDrawable struct{}

func (opaqueDrawable) Present() error { return nil }

func (s *opaqueSurface) NextDrawable() (Drawable, bool) {
	s.attempts++
	return opaqueDrawable{}, true
}

var errPresent = errors.New("present failed")

func pixelAt(t *testing.T, img *image.RGBA, x, y int) color.RGBA {
	t.Helper()
	return img.RGBAAt(x, y)
}

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := pixelAt(t, img, x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

var (
	opaqueBlack = color.RGBA{0, 0, 0, 255}
	opaqueRed   = color.RGBA{255, 0, 0, 255}
	opaqueBlue  = color.RGBA{0, 0, 255, 255}
	opaqueWhite = color.RGBA{255, 255, 255, 255}
)
