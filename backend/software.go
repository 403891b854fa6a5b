package backend

import (
	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/surface"
)

// SoftwareBackend draws with render.SoftwareRenderer into an
// in-memory image surface.
type SoftwareBackend struct {
	surf     *surface.ImageSurface
	renderer *render.SoftwareRenderer
}

func init() {
	Register(BackendSoftware, func(opts Options) (Backend, error) {
		return NewSoftwareBackend(opts), nil
	})
}

// NewSoftwareBackend creates the surface and renderer for opts.
func NewSoftwareBackend(opts Options) *SoftwareBackend {
	var ro []render.SoftwareOption
	if opts.Bands > 0 {
		ro = append(ro, render.WithBands(opts.Bands))
	}
	if opts.ClearColor != nil {
		ro = append(ro, render.WithClearColor(*opts.ClearColor))
	}
	return &SoftwareBackend{
		surf:     surface.NewImageSurface(opts.Width, opts.Height),
		renderer: render.NewSoftwareRenderer(ro...),
	}
}

// Name returns BackendSoftware.
func (b *SoftwareBackend) Name() string { return BackendSoftware }

// Surface returns the image surface.
func (b *SoftwareBackend) Surface() surface.Surface { return b.surf }

// Renderer returns the software renderer.
func (b *SoftwareBackend) Renderer() render.Renderer { return b.renderer }

// ImageSurface returns the concrete surface.
func (b *SoftwareBackend) ImageSurface() *surface.ImageSurface { return b.surf }

// SoftwareRenderer returns the concrete renderer.
func (b *SoftwareBackend) SoftwareRenderer() *render.SoftwareRenderer { return b.renderer }

// Close closes the surface.
func (b *SoftwareBackend) Close() error {
	return b.surf.Close()
}

var _ Backend = (*SoftwareBackend)(nil)
