package wgpu

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/backend"
	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/surface"
)

// copyRowAlignment is the required alignment of BytesPerRow in
// texture-to-buffer copies.
const copyRowAlignment = 256

// TextureSurface is an offscreen surface that renders into a GPU texture.
// Presenting a drawable reads the texture back into host memory, where
// Snapshot returns it.
type TextureSurface struct {
	dev    *Device
	device hal.Device
	queue  hal.Queue

	label  string
	format gputypes.TextureFormat
	width  uint32
	height uint32

	tex  hal.Texture
	view hal.TextureView

	frame     *image.RGBA
	ownsDev   bool
	closed    bool
	acquired  int
	presented int
}

// NewTextureSurface creates an offscreen surface of the given size. The
// format must be RGBA8Unorm or BGRA8Unorm.
func NewTextureSurface(dev *Device, width, height int, format gputypes.TextureFormat) (*TextureSurface, error) {
	if dev == nil || dev.device == nil {
		return nil, ErrNoDevice
	}
	if format != gputypes.TextureFormatRGBA8Unorm && format != gputypes.TextureFormatBGRA8Unorm {
		return nil, fmt.Errorf("wgpu: unsupported surface format %v", format)
	}

	s := &TextureSurface{
		dev:    dev,
		device: dev.device,
		queue:  dev.queue,
		label:  "gesso_surface",
		format: format,
	}
	if err := s.resize(uint32(max(width, 0)), uint32(max(height, 0))); err != nil { //nolint:gosec // clamped non-negative
		return nil, err
	}
	return s, nil
}

// Device returns the device the surface renders with.
func (s *TextureSurface) Device() *Device {
	return s.dev
}

// Format returns the texture format.
func (s *TextureSurface) Format() gputypes.TextureFormat {
	return s.format
}

// DrawableSize returns the texture size in pixels.
func (s *TextureSurface) DrawableSize() (float32, float32) {
	return float32(s.width), float32(s.height)
}

// Resize recreates the texture at the new size. Fractional sizes are
// rounded up. On failure the surface has no texture and yields no
// drawables until the next successful Resize.
func (s *TextureSurface) Resize(width, height float32) {
	w := uint32(max(width+0.999, 0))
	h := uint32(max(height+0.999, 0))
	if w == s.width && h == s.height && s.tex != nil {
		return
	}
	if err := s.resize(w, h); err != nil {
		gesso.Logger().Warn("wgpu: surface resize failed", "width", w, "height", h, "error", err)
	}
}

func (s *TextureSurface) resize(w, h uint32) error {
	s.destroyTexture()
	s.width, s.height = w, h
	s.frame = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	if w == 0 || h == 0 {
		return nil
	}

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         s.label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create surface texture: %w", err)
	}
	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         s.label + "_view",
		Format:        s.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create surface view: %w", err)
	}
	s.tex, s.view = tex, view
	return nil
}

// NextDrawable returns the surface texture. It returns false for a zero
// size, after a failed Resize, or after Close.
func (s *TextureSurface) NextDrawable() (render.Drawable, bool) {
	if s.closed || s.view == nil {
		return nil, false
	}
	s.acquired++
	return &textureDrawable{surface: s}, true
}

// Acquired returns how many drawables have been handed out.
func (s *TextureSurface) Acquired() int {
	return s.acquired
}

// Presented returns how many drawables have been presented.
func (s *TextureSurface) Presented() int {
	return s.presented
}

// Snapshot returns a copy of the last presented frame.
func (s *TextureSurface) Snapshot() (*image.RGBA, error) {
	if s.closed {
		return nil, surface.ErrClosed
	}
	dst := image.NewRGBA(s.frame.Bounds())
	copy(dst.Pix, s.frame.Pix)
	return dst, nil
}

// Close releases the texture, and the device when the surface was created
// through the surface registry. Close is idempotent.
func (s *TextureSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.destroyTexture()
	if s.ownsDev {
		s.dev.Destroy()
	}
	return nil
}

func (s *TextureSurface) destroyTexture() {
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		s.device.DestroyTexture(s.tex)
		s.tex = nil
	}
}

// readback copies the texture into s.frame.
func (s *TextureSurface) readback() error {
	w, h := s.width, s.height
	bytesPerRow := (w*4 + copyRowAlignment - 1) &^ (copyRowAlignment - 1)
	size := uint64(bytesPerRow) * uint64(h)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gesso_readback_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gesso_readback"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gesso_readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(s.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: bytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}

	if err := submitAndWait(s.device, s.queue, cmdBuf); err != nil {
		return err
	}

	mapping, err := s.device.MapBuffer(staging, 0, size)
	if err != nil {
		return fmt.Errorf("wgpu: map staging buffer: %w", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size)
	unpackRows(s.frame, data, int(bytesPerRow), s.format == gputypes.TextureFormatBGRA8Unorm)
	if err := s.device.UnmapBuffer(staging); err != nil {
		return fmt.Errorf("wgpu: unmap staging buffer: %w", err)
	}
	return nil
}

// unpackRows copies padded texture rows into img, swapping red and blue
// for BGRA data.
func unpackRows(img *image.RGBA, data []byte, bytesPerRow int, bgra bool) {
	rowBytes := img.Bounds().Dx() * 4
	for y := range img.Bounds().Dy() {
		src := data[y*bytesPerRow : y*bytesPerRow+rowBytes]
		dst := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
		copy(dst, src)
		if bgra {
			for i := 0; i < rowBytes; i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
}

// textureDrawable is one frame of a TextureSurface.
type textureDrawable struct {
	surface *TextureSurface
}

// View returns the surface texture view.
func (d *textureDrawable) View() hal.TextureView {
	return d.surface.view
}

// Present reads the rendered texture back into the surface's frame.
func (d *textureDrawable) Present() error {
	s := d.surface
	if s.closed || s.tex == nil {
		return surface.ErrClosed
	}
	if err := s.readback(); err != nil {
		return err
	}
	s.presented++
	return nil
}

// errVulkanUnavailable is reported by the registry availability probe.
var errVulkanUnavailable = errors.New("wgpu: vulkan backend not registered")

func vulkanAvailable() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}

// newRegisteredSurface opens a device for a surface created through the
// surface registry. The surface owns the device.
func newRegisteredSurface(opts surface.Options) (surface.Surface, error) {
	if !vulkanAvailable() {
		return nil, errVulkanUnavailable
	}
	dev, err := OpenDevice()
	if err != nil {
		return nil, err
	}
	s, err := NewTextureSurface(dev, opts.Width, opts.Height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		dev.Destroy()
		return nil, err
	}
	if opts.Label != "" {
		s.label = opts.Label
	}
	s.ownsDev = true
	return s, nil
}

func init() {
	surface.Register(backend.BackendWGPU, 100, newRegisteredSurface, vulkanAvailable)
}

var (
	_ surface.Surface = (*TextureSurface)(nil)
	_ TextureDrawable = (*textureDrawable)(nil)
)
