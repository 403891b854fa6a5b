// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/scene"
)

func TestNewImageSurface(t *testing.T) {
	s := NewImageSurface(100, 50)
	defer s.Close()

	if s.Width() != 100 || s.Height() != 50 {
		t.Errorf("size = %dx%d, want 100x50", s.Width(), s.Height())
	}
	w, h := s.DrawableSize()
	if w != 100 || h != 50 {
		t.Errorf("DrawableSize() = %vx%v, want 100x50", w, h)
	}
}

func TestNewImageSurfaceInvalidSize(t *testing.T) {
	s := NewImageSurface(0, -3)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("expected 1x1, got %dx%d", s.Width(), s.Height())
	}
}

func TestImageSurfaceFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 7, 3))
	s := NewImageSurfaceFromImage(img)
	if s.Image() != img {
		t.Error("surface should render into the provided image")
	}
	if s.Width() != 7 || s.Height() != 3 {
		t.Errorf("size = %dx%d, want 7x3", s.Width(), s.Height())
	}
}

func TestImageSurfaceNextDrawable(t *testing.T) {
	s := NewImageSurface(10, 10)

	d, ok := s.NextDrawable()
	if !ok {
		t.Fatal("NextDrawable() returned false")
	}
	pd, ok := d.(render.PixelDrawable)
	if !ok {
		t.Fatal("drawable does not expose pixels")
	}
	if pd.Image() != s.Image() {
		t.Error("drawable image should alias the surface image")
	}
	if err := d.Present(); err != nil {
		t.Errorf("Present() error = %v", err)
	}
	if s.Acquired() != 1 || s.Presented() != 1 {
		t.Errorf("Acquired = %d, Presented = %d; want 1, 1", s.Acquired(), s.Presented())
	}
}

func TestImageSurfaceUnavailable(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.SetAvailable(false)

	if _, ok := s.NextDrawable(); ok {
		t.Error("unavailable surface handed out a drawable")
	}
	s.SetAvailable(true)
	if _, ok := s.NextDrawable(); !ok {
		t.Error("available surface refused a drawable")
	}
}

func TestImageSurfaceResize(t *testing.T) {
	s := NewImageSurface(10, 10)
	old := s.Image()

	s.Resize(10, 10)
	if s.Image() != old {
		t.Error("same-size Resize should keep the image")
	}

	s.Resize(20.5, 30)
	if s.Width() != 21 || s.Height() != 30 {
		t.Errorf("size = %dx%d, want 21x30", s.Width(), s.Height())
	}
	if got := s.Image().Bounds(); got != image.Rect(0, 0, 21, 30) {
		t.Errorf("image bounds = %v", got)
	}
}

func TestImageSurfaceClose(t *testing.T) {
	s := NewImageSurface(10, 10)
	d, _ := s.NextDrawable()

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := s.NextDrawable(); ok {
		t.Error("closed surface handed out a drawable")
	}
	if err := d.Present(); !errors.Is(err, ErrClosed) {
		t.Errorf("Present() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrClosed) {
		t.Errorf("Snapshot() after Close error = %v, want ErrClosed", err)
	}
}

func TestImageSurfaceSnapshotIsCopy(t *testing.T) {
	s := NewImageSurface(4, 4)
	s.Image().SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	snap.SetRGBA(1, 1, color.RGBA{0, 255, 0, 255})

	if got := s.Image().RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("surface pixel changed through snapshot: %v", got)
	}
}

func TestImageSurfaceWithSoftwareRenderer(t *testing.T) {
	s := NewImageSurface(800, 600)
	r := render.NewSoftwareRenderer()

	sc := scene.New()
	sc.PushQuad(scene.NewQuad(scene.NewRect(100, 100, 200, 200), scene.RGB(1, 0, 0)))
	if err := r.Render(sc, s); err != nil {
		t.Fatal(err)
	}

	img := s.Image()
	if got := img.RGBAAt(200, 200); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center = %v, want red", got)
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("outside = %v, want black", got)
	}
	if s.Presented() != 1 {
		t.Errorf("Presented() = %d, want 1", s.Presented())
	}
}

func TestImageSurfaceEmptySceneAcquiresNothing(t *testing.T) {
	s := NewImageSurface(10, 10)
	r := render.NewSoftwareRenderer()

	for range 3 {
		if err := r.Render(scene.New(), s); err != nil {
			t.Fatal(err)
		}
	}
	if s.Acquired() != 0 {
		t.Errorf("Acquired() = %d, want 0", s.Acquired())
	}
}

func TestImageSurfaceSave(t *testing.T) {
	s := NewImageSurface(3, 2)
	s.Image().SetRGBA(2, 1, color.RGBA{0, 0, 255, 255})
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "frame.png")
	if err := s.Save(pngPath); err != nil {
		t.Fatalf("Save(png) error = %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if r, g, b, _ := img.At(2, 1).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("decoded pixel = %v", img.At(2, 1))
	}

	bmpPath := filepath.Join(dir, "frame.bmp")
	if err := s.Save(bmpPath); err != nil {
		t.Fatalf("Save(bmp) error = %v", err)
	}
	bf, err := os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer bf.Close()
	if cfg, err := bmp.DecodeConfig(bf); err != nil || cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("bmp config = %+v, %v", cfg, err)
	}

	if err := s.Save(filepath.Join(dir, "frame.tiff")); err != nil {
		t.Errorf("Save(tiff) error = %v", err)
	}
	if err := s.Save(filepath.Join(dir, "frame.gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(gif) error = %v, want ErrUnsupportedFormat", err)
	}
}
