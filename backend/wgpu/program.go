package wgpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/gesso/render"
)

//go:embed shaders/quad.wgsl
var quadShaderWGSL string

// ErrShaderCompile is returned when the quad program fails to compile.
var ErrShaderCompile = errors.New("wgpu: shader compilation failed")

// Entry points of the quad program.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// Vertex buffer slots.
const (
	unitQuadSlot = 0
	instanceSlot = 1
)

// unitQuadVertexCount is the vertex count of the shared triangle strip.
const unitQuadVertexCount = uint32(len(render.UnitQuadVertices))

// ShaderSource returns the WGSL source of the quad program.
func ShaderSource() string {
	return quadShaderWGSL
}

// CompileProgram compiles the quad program to SPIR-V words.
func CompileProgram() ([]uint32, error) {
	spirvBytes, err := naga.Compile(quadShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d is not word aligned", ErrShaderCompile, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}

// quadVertexLayout returns the two vertex buffer layouts: the unit quad at
// vertex rate and the instance records at instance rate.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: 8,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // unit
			},
		},
		{
			ArrayStride: render.InstanceSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},  // bounds
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // background
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3}, // border_color
				{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 4}, // border_widths
				{Format: gputypes.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 5}, // corner_radii
				{Format: gputypes.VertexFormatFloat32x4, Offset: 80, ShaderLocation: 6}, // clip_bounds
				{Format: gputypes.VertexFormatFloat32, Offset: 96, ShaderLocation: 7},   // has_clip
			},
		},
	}
}
