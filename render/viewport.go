// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gesso/scene"
)

// UnitQuadVertices is the shared instanced geometry: a unit square drawn as
// a four-vertex triangle strip.
var UnitQuadVertices = [4]scene.Point{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// UnitQuadBytes returns UnitQuadVertices as little-endian float32 pairs.
func UnitQuadBytes() []byte {
	buf := make([]byte, 0, len(UnitQuadVertices)*8)
	for _, v := range UnitQuadVertices {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.X))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.Y))
	}
	return buf
}

// ViewportUniformSize is the byte size of the per-frame uniform.
// Layout: viewport (vec2<f32>) + padding (vec2<f32>) = 16 bytes.
const ViewportUniformSize = 16

// Viewport is the per-frame uniform: the drawable size in device pixels.
type Viewport struct {
	Width, Height float32
}

// Bytes returns the uniform buffer contents.
func (v Viewport) Bytes() []byte {
	buf := make([]byte, ViewportUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Width))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Height))
	return buf
}

// InstanceVertex places a unit-quad vertex on an instance:
// bounds.xy + unit * bounds.zw.
func InstanceVertex(inst *QuadInstance, unit scene.Point) scene.Point {
	return scene.Point{
		X: inst.Bounds[0] + unit.X*inst.Bounds[2],
		Y: inst.Bounds[1] + unit.Y*inst.Bounds[3],
	}
}

// ToClip maps a top-down device-pixel position into normalized device
// coordinates: (pos/viewport)*2 - 1 with Y negated. This negation is the
// only flip between scene space and clip space.
func (v Viewport) ToClip(pos scene.Point) scene.Point {
	return scene.Point{
		X: pos.X/v.Width*2 - 1,
		Y: -(pos.Y/v.Height*2 - 1),
	}
}

// ToFramebuffer applies the fixed-function viewport transform that every
// GPU rasterizer performs: normalized device coordinates (+Y up) to
// framebuffer pixels (row 0 at the top).
func (v Viewport) ToFramebuffer(clip scene.Point) scene.Point {
	return scene.Point{
		X: (clip.X + 1) * 0.5 * v.Width,
		Y: (1 - clip.Y) * 0.5 * v.Height,
	}
}
