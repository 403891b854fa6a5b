package debug

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/scene"
	"github.com/gogpu/gesso/surface"
)

// MaxImageSize is the largest screenshot width or height.
const MaxImageSize = 16384

var (
	// ErrEmptyViewport is returned when a screenshot is requested for a
	// snapshot with no viewport size.
	ErrEmptyViewport = errors.New("debug: snapshot has an empty viewport")

	// ErrImageSize is returned for a negative screenshot size or one larger
	// than MaxImageSize.
	ErrImageSize = errors.New("debug: invalid screenshot size")
)

// validImageSize reports whether width x height is an acceptable requested
// size. Zero means the viewport size.
func validImageSize(width, height int) bool {
	return width >= 0 && height >= 0 && width <= MaxImageSize && height <= MaxImageSize
}

// RenderImage draws the snapshot followed by the overlays with the software
// renderer. The image has the snapshot's viewport size, scaled to
// width x height when both are positive and differ from it. Sizes outside
// [0, MaxImageSize] return ErrImageSize.
func RenderImage(snap *Snapshot, overlays []Overlay, width, height int) (*image.RGBA, error) {
	if !validImageSize(width, height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageSize, width, height)
	}
	if snap.ViewportSize[0] > MaxImageSize || snap.ViewportSize[1] > MaxImageSize {
		return nil, fmt.Errorf("%w: viewport %gx%g", ErrImageSize, snap.ViewportSize[0], snap.ViewportSize[1])
	}
	vw, vh := int(snap.ViewportSize[0]+0.5), int(snap.ViewportSize[1]+0.5)
	if vw <= 0 || vh <= 0 {
		return nil, ErrEmptyViewport
	}

	sc := snap.Scene()
	for i := range overlays {
		sc.PushQuad(overlays[i].Quad())
	}

	surf := surface.NewImageSurface(vw, vh)
	if sc.IsEmpty() {
		fill(surf.Image(), render.ClearColor)
	} else if err := render.NewSoftwareRenderer().Render(sc, surf); err != nil {
		return nil, fmt.Errorf("debug: render: %w", err)
	}

	img := surf.Image()
	if width <= 0 || height <= 0 || (width == vw && height == vh) {
		return img, nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled, nil
}

// Screenshot renders the snapshot and overlays and writes the image to
// path. The format follows the file extension.
func Screenshot(snap *Snapshot, overlays []Overlay, path string, width, height int) error {
	img, err := RenderImage(snap, overlays, width, height)
	if err != nil {
		return err
	}
	return surface.SaveImage(path, img)
}

// fill paints an empty frame. Renderers skip empty scenes entirely, so the
// clear color is applied here.
func fill(img *image.RGBA, c scene.Color) {
	xdraw.Draw(img, img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, xdraw.Src)
}
