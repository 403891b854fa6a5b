package backend

import (
	"errors"

	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/scene"
	"github.com/gogpu/gesso/surface"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend could
	// be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrUnknownBackend is returned by Open for an unregistered name.
	ErrUnknownBackend = errors.New("backend: unknown backend")
)

// Backend names.
const (
	// BackendSoftware renders on the CPU into an in-memory image.
	BackendSoftware = "software"
	// BackendWGPU renders with the GPU into an offscreen texture.
	BackendWGPU = "wgpu"
)

// Backend is an open surface together with a renderer for it.
type Backend interface {
	// Name returns the backend identifier.
	Name() string

	// Surface returns the surface frames are drawn into.
	Surface() surface.Surface

	// Renderer returns the renderer bound to Surface.
	Renderer() render.Renderer

	// Close releases the renderer and then the surface.
	Close() error
}

// Options configure a backend.
type Options struct {
	// Width and Height are the surface size in pixels.
	Width, Height int

	// Bands is the software renderer's worker count. Zero selects
	// GOMAXPROCS. Ignored by GPU backends.
	Bands int

	// ClearColor overrides the frame clear color where the backend
	// supports it. Nil keeps render.ClearColor.
	ClearColor *scene.Color
}
