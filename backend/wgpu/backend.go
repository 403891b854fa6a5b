package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/backend"
	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/surface"
)

// Backend is a TextureSurface with a Renderer built for its format.
type Backend struct {
	surf     *TextureSurface
	renderer *Renderer
}

// NewBackend creates a surface and renderer on dev. The device stays owned
// by the caller.
func NewBackend(dev *Device, opts backend.Options) (*Backend, error) {
	surf, err := NewTextureSurface(dev, opts.Width, opts.Height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	return newBackend(surf, opts)
}

func newBackend(surf *TextureSurface, opts backend.Options) (*Backend, error) {
	r, err := NewRenderer(surf.Device(), surf.Format())
	if err != nil {
		_ = surf.Close()
		return nil, err
	}
	if opts.ClearColor != nil && *opts.ClearColor != render.ClearColor {
		gesso.Logger().Warn("wgpu: frames clear to opaque black; clear color ignored")
	}
	return &Backend{surf: surf, renderer: r}, nil
}

// openBackend opens its own device through the surface registry.
func openBackend(opts backend.Options) (backend.Backend, error) {
	s, err := surface.NewSurfaceByName(backend.BackendWGPU, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	ts, ok := s.(*TextureSurface)
	if !ok {
		_ = s.Close()
		return nil, fmt.Errorf("wgpu: registry returned %T", s)
	}
	return newBackend(ts, opts)
}

// Name returns backend.BackendWGPU.
func (b *Backend) Name() string { return backend.BackendWGPU }

// Surface returns the texture surface.
func (b *Backend) Surface() surface.Surface { return b.surf }

// Renderer returns the GPU renderer.
func (b *Backend) Renderer() render.Renderer { return b.renderer }

// TextureSurface returns the concrete surface.
func (b *Backend) TextureSurface() *TextureSurface { return b.surf }

// GPURenderer returns the concrete renderer.
func (b *Backend) GPURenderer() *Renderer { return b.renderer }

// Close destroys the renderer, then closes the surface.
func (b *Backend) Close() error {
	b.renderer.Destroy()
	return b.surf.Close()
}

func init() {
	backend.Register(backend.BackendWGPU, openBackend)
}

var _ backend.Backend = (*Backend)(nil)
