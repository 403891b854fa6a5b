// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gesso/scene"
)

// SoftwareRenderer is a CPU renderer that follows the same frame protocol
// as the GPU backends.
//
// Quads are packed into an InstanceBuffer backed by host memory, exactly as
// a GPU backend packs them into a vertex buffer, and the packed records are
// what gets drawn. Each record's unit quad is mapped through clip space to
// framebuffer pixels, and Evaluate runs at every covered pixel centre.
//
// The framebuffer is split into horizontal bands that are rasterized
// concurrently. Every band walks all instances in scene order, so each
// pixel sees quads in painter's order and the output is identical to a
// single sequential loop.
//
// Example:
//
//	r := render.NewSoftwareRenderer()
//	surf := surface.NewImageSurface(800, 600)
//	if err := r.Render(s, surf); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type SoftwareRenderer struct {
	alloc  *HostAllocator
	buffer *InstanceBuffer

	bands int
	clear scene.Color

	// instances is reused between frames for decoded records.
	instances []QuadInstance
	spans     []pixelSpan

	frames    int
	drawCalls int
	drawables int
}

// SoftwareOption configures a SoftwareRenderer.
type SoftwareOption func(*SoftwareRenderer)

// WithBands sets the number of horizontal bands rasterized concurrently.
// Values below 1 select one band.
func WithBands(n int) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.bands = max(n, 1)
	}
}

// WithClearColor overrides the frame clear color (default ClearColor).
func WithClearColor(c scene.Color) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.clear = c
	}
}

// NewSoftwareRenderer creates a CPU renderer with an instance buffer of
// InitialInstanceCapacity records.
func NewSoftwareRenderer(opts ...SoftwareOption) *SoftwareRenderer {
	alloc := &HostAllocator{}
	buf, err := NewInstanceBuffer(alloc)
	if err != nil {
		// HostAllocator does not fail.
		panic(err)
	}
	r := &SoftwareRenderer{
		alloc:  alloc,
		buffer: buf,
		bands:  runtime.GOMAXPROCS(0),
		clear:  ClearColor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws s onto surf. See Renderer for the protocol.
func (r *SoftwareRenderer) Render(s *scene.Scene, surf Surface) error {
	if surf == nil {
		return ErrNilSurface
	}
	if s == nil || s.IsEmpty() {
		return nil
	}

	if _, err := r.buffer.Upload(s.Quads()); err != nil {
		return err
	}

	drawable, ok := surf.NextDrawable()
	if !ok {
		return nil
	}
	r.drawables++

	pd, ok := drawable.(PixelDrawable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedDrawable, drawable)
	}
	img := pd.Image()
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrUnsupportedDrawable)
	}

	w, h := surf.DrawableSize()
	fillImage(img, r.clear)
	if err := r.drawInstanced(img, Viewport{Width: w, Height: h}, r.buffer.Len()); err != nil {
		return err
	}
	r.frames++

	return drawable.Present()
}

// Capacity returns the instance buffer capacity in records.
func (r *SoftwareRenderer) Capacity() int {
	return r.buffer.Capacity()
}

// InstanceBuffer returns the renderer's instance buffer.
func (r *SoftwareRenderer) InstanceBuffer() *InstanceBuffer {
	return r.buffer
}

// Frames returns the number of frames drawn and presented.
func (r *SoftwareRenderer) Frames() int {
	return r.frames
}

// DrawCalls returns the number of instanced draws issued.
func (r *SoftwareRenderer) DrawCalls() int {
	return r.drawCalls
}

// Drawables returns the number of drawables acquired.
func (r *SoftwareRenderer) Drawables() int {
	return r.drawables
}

// pixelSpan is the half-open pixel rectangle an instance's unit quad covers.
type pixelSpan struct {
	x0, y0, x1, y1 int
}

// drawInstanced is the CPU equivalent of one instanced draw of count
// records from the instance buffer.
func (r *SoftwareRenderer) drawInstanced(img *image.RGBA, vp Viewport, count int) error {
	r.drawCalls++
	if count == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}

	block, ok := r.buffer.Block().(*HostBlock)
	if !ok {
		return fmt.Errorf("render: software renderer needs a host block, got %T", r.buffer.Block())
	}
	if err := r.decode(block.Bytes(), count); err != nil {
		return err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	r.spans = r.spans[:0]
	for i := range r.instances {
		r.spans = append(r.spans, coverage(&r.instances[i], vp, width, height))
	}

	bands := min(r.bands, height)
	if bands <= 1 {
		r.rasterBand(img, 0, height)
		return nil
	}

	bandHeight := (height + bands - 1) / bands
	var g errgroup.Group
	for y0 := 0; y0 < height; y0 += bandHeight {
		y1 := min(y0+bandHeight, height)
		g.Go(func() error {
			r.rasterBand(img, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

func (r *SoftwareRenderer) decode(b []byte, count int) error {
	if len(b) < count*InstanceSize {
		return fmt.Errorf("render: instance block holds %d bytes, need %d", len(b), count*InstanceSize)
	}
	if cap(r.instances) < count {
		r.instances = make([]QuadInstance, count)
	}
	r.instances = r.instances[:count]
	for i := range r.instances {
		inst, err := DecodeInstance(b[i*InstanceSize:])
		if err != nil {
			return err
		}
		r.instances[i] = inst
	}
	return nil
}

// coverage runs the vertex stage for one instance and returns the pixels
// whose centres fall inside the transformed quad, clamped to the image.
func coverage(inst *QuadInstance, vp Viewport, width, height int) pixelSpan {
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, unit := range UnitQuadVertices {
		p := vp.ToFramebuffer(vp.ToClip(InstanceVertex(inst, unit)))
		minX, maxX = math32.Min(minX, p.X), math32.Max(maxX, p.X)
		minY, maxY = math32.Min(minY, p.Y), math32.Max(maxY, p.Y)
	}

	// Pixel i is covered when its centre i+0.5 lies in [min, max).
	span := pixelSpan{
		x0: clampInt(int(math32.Ceil(minX-0.5)), 0, width),
		y0: clampInt(int(math32.Ceil(minY-0.5)), 0, height),
		x1: clampInt(int(math32.Ceil(maxX-0.5)), 0, width),
		y1: clampInt(int(math32.Ceil(maxY-0.5)), 0, height),
	}
	return span
}

// rasterBand evaluates every instance over rows [y0, y1).
func (r *SoftwareRenderer) rasterBand(img *image.RGBA, y0, y1 int) {
	origin := img.Bounds().Min
	for i := range r.instances {
		span := r.spans[i]
		inst := &r.instances[i]
		ys, ye := max(span.y0, y0), min(span.y1, y1)
		for y := ys; y < ye; y++ {
			row := img.PixOffset(origin.X, origin.Y+y)
			py := float32(y) + 0.5
			for x := span.x0; x < span.x1; x++ {
				c, ok := Evaluate(inst, float32(x)+0.5, py)
				if !ok {
					continue
				}
				blendOver(img.Pix[row+x*4:row+x*4+4], c)
			}
		}
	}
}

// blendOver composites the straight-alpha color c over a premultiplied
// RGBA8 pixel: out = src*srcAlpha + dst*(1-srcAlpha).
func blendOver(px []byte, c scene.Color) {
	sa := clamp01(c.A)
	if sa == 0 {
		return
	}
	sr, sg, sb := clamp01(c.R)*sa, clamp01(c.G)*sa, clamp01(c.B)*sa
	if sa == 1 {
		px[0], px[1], px[2], px[3] = unorm8(sr), unorm8(sg), unorm8(sb), 255
		return
	}
	inv := 1 - sa
	px[0] = unorm8(sr + float32(px[0])/255*inv)
	px[1] = unorm8(sg + float32(px[1])/255*inv)
	px[2] = unorm8(sb + float32(px[2])/255*inv)
	px[3] = unorm8(sa + float32(px[3])/255*inv)
}

// fillImage sets every pixel of img to c.
func fillImage(img *image.RGBA, c scene.Color) {
	a := clamp01(c.A)
	p := [4]byte{unorm8(clamp01(c.R) * a), unorm8(clamp01(c.G) * a), unorm8(clamp01(c.B) * a), unorm8(a)}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.PixOffset(bounds.Min.X, y)
		for x := 0; x < bounds.Dx(); x++ {
			copy(img.Pix[row+x*4:row+x*4+4], p[:])
		}
	}
}

func clamp01(v float32) float32 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}

func unorm8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ Renderer = (*SoftwareRenderer)(nil)
