package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/scene"
)

// TextureDrawable is a drawable backed by a GPU texture view.
type TextureDrawable interface {
	render.Drawable

	// View returns the color attachment to render into.
	View() hal.TextureView
}

// Renderer draws scenes with one instanced draw per frame.
//
// All pipeline state is created once in NewRenderer. Per frame the quads
// are packed into the instance buffer, the viewport uniform is rewritten
// if the drawable size changed, and a single render pass clears the
// drawable to opaque black and draws the unit quad once per record.
//
// Render returns once the frame is submitted. Buffer writes go straight to
// memory the previous frame may still read, so a frame that is still
// executing is waited for before the next one writes.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	unitQuad      hal.Buffer
	uniform       hal.Buffer
	bindGroup     hal.BindGroup

	pending   *inflight
	alloc     *bufferAllocator
	instances *render.InstanceBuffer

	viewport  render.Viewport
	frames    int
	drawCalls int
}

// NewRenderer builds the quad pipeline for drawables of the given format.
// An undefined format selects the device's surface format, falling back to
// BGRA8Unorm. Any failure releases what was already created.
func NewRenderer(dev *Device, format gputypes.TextureFormat) (*Renderer, error) {
	if dev == nil || dev.device == nil {
		return nil, ErrNoDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = dev.SurfaceFormat
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	r := &Renderer{
		device:  dev.device,
		queue:   dev.queue,
		format:  format,
		pending: newInflight(dev.device, dev.queue),
	}
	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	gesso.Logger().Debug("wgpu: quad pipeline created", "format", format)
	return r, nil
}

func (r *Renderer) init() error {
	spirv, err := CompileProgram()
	if err != nil {
		return err
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gesso_quad_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "gesso_viewport_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "gesso_quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "gesso_quad_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	r.unitQuad, err = createAndUploadBuffer(r.device, r.queue, "gesso_unit_quad",
		render.UnitQuadBytes(), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}

	r.uniform, err = createAndUploadBuffer(r.device, r.queue, "gesso_viewport",
		r.viewport.Bytes(), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "gesso_viewport_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniform.NativeHandle(), Offset: 0, Size: render.ViewportUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	r.bindGroup = bindGroup

	r.alloc = newInstanceAllocator(r.device, r.queue)
	r.alloc.retire = r.pending.retire
	r.instances, err = render.NewInstanceBuffer(r.alloc)
	if err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	return nil
}

// Render draws s onto surf. See render.Renderer for the protocol. The
// drawable must implement TextureDrawable.
func (r *Renderer) Render(s *scene.Scene, surf render.Surface) error {
	if surf == nil {
		return render.ErrNilSurface
	}
	if s == nil || s.IsEmpty() {
		return nil
	}
	if r.pipeline == nil {
		return fmt.Errorf("wgpu: renderer has been destroyed")
	}

	if err := r.pending.wait(); err != nil {
		return err
	}
	if _, err := r.instances.Upload(s.Quads()); err != nil {
		return err
	}

	drawable, ok := surf.NextDrawable()
	if !ok {
		return nil
	}
	td, ok := drawable.(TextureDrawable)
	if !ok {
		return fmt.Errorf("%w: %T", render.ErrUnsupportedDrawable, drawable)
	}

	w, h := surf.DrawableSize()
	if vp := (render.Viewport{Width: w, Height: h}); vp != r.viewport {
		if err := r.queue.WriteBuffer(r.uniform, 0, vp.Bytes()); err != nil {
			return fmt.Errorf("wgpu: write viewport uniform: %w", err)
		}
		r.viewport = vp
	}

	if err := r.encodeAndSubmit(td.View(), r.instances.Len()); err != nil {
		return err
	}
	r.frames++

	return drawable.Present()
}

// encodeAndSubmit records the frame's single render pass and submits it
// without waiting.
func (r *Renderer) encodeAndSubmit(view hal.TextureView, count int) error {
	block, ok := r.instances.Block().(*bufferBlock)
	if !ok || block.Buffer() == nil {
		return fmt.Errorf("wgpu: instance buffer is not a live GPU buffer")
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gesso_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gesso_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "gesso_quad_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1}, // opaque black
			},
		},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.SetVertexBuffer(unitQuadSlot, r.unitQuad, 0)
	rp.SetVertexBuffer(instanceSlot, block.Buffer(), 0)
	rp.Draw(unitQuadVertexCount, uint32(count), 0, 0) //nolint:gosec // count <= capacity fits uint32
	rp.End()
	r.drawCalls++

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	_, err = r.pending.submit(cmdBuf)
	return err
}

// Format returns the color format the pipeline renders to.
func (r *Renderer) Format() gputypes.TextureFormat {
	return r.format
}

// Capacity returns the instance buffer capacity in records.
func (r *Renderer) Capacity() int {
	if r.instances == nil {
		return 0
	}
	return r.instances.Capacity()
}

// Reallocations returns how many times the instance buffer has grown.
func (r *Renderer) Reallocations() int {
	if r.instances == nil {
		return 0
	}
	return r.instances.Reallocations()
}

// DrawCalls returns the number of instanced draws recorded.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

// Frames returns the number of frames submitted and presented.
func (r *Renderer) Frames() int {
	return r.frames
}

// InFlight reports whether a submitted frame may still be executing.
func (r *Renderer) InFlight() bool {
	return r.pending != nil && r.pending.busy()
}

// Destroy releases all GPU resources in reverse creation order. The
// device itself is not destroyed. In-flight frames are waited for first.
// Destroy is idempotent.
func (r *Renderer) Destroy() {
	if r.pending != nil {
		_ = r.pending.wait()
	}
	if r.instances != nil {
		r.instances.Release()
		r.instances = nil
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniform != nil {
		r.device.DestroyBuffer(r.uniform)
		r.uniform = nil
	}
	if r.unitQuad != nil {
		r.device.DestroyBuffer(r.unitQuad)
		r.unitQuad = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

var _ render.Renderer = (*Renderer)(nil)
