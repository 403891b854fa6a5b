// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gesso/scene"
)

// InstanceSize is the byte size of one packed QuadInstance.
//
// Layout (little-endian float32, tightly packed):
//
//	bounds        (vec4<f32>) = 16 bytes  (offset 0)
//	background    (vec4<f32>) = 16 bytes  (offset 16)
//	border_color  (vec4<f32>) = 16 bytes  (offset 32)
//	border_widths (vec4<f32>) = 16 bytes  (offset 48)
//	corner_radii  (vec4<f32>) = 16 bytes  (offset 64)
//	clip_bounds   (vec4<f32>) = 16 bytes  (offset 80)
//	has_clip      (f32)       =  4 bytes  (offset 96)
//	padding       (3 x f32)   = 12 bytes  (offset 100)
//
// Total = 112 bytes per instance.
const InstanceSize = 112

// InstanceAlign is the required alignment of each record.
const InstanceAlign = 16

// instanceFloats is InstanceSize expressed in float32 words.
const instanceFloats = InstanceSize / 4

// QuadInstance is the GPU-visible form of a scene.Quad. It is derived from
// the scene every frame and never authored directly.
type QuadInstance struct {
	Bounds       [4]float32 // x, y, width, height
	Background   [4]float32 // r, g, b, a
	BorderColor  [4]float32 // r, g, b, a
	BorderWidths [4]float32 // top, right, bottom, left
	CornerRadii  [4]float32 // top-left, top-right, bottom-right, bottom-left
	ClipBounds   [4]float32 // x, y, width, height; zero when HasClip is 0
	HasClip      float32    // 1 if the clip is active, 0 otherwise
	Padding      [3]float32
}

// InstanceFromQuad flattens q into its packed record form.
func InstanceFromQuad(q *scene.Quad) QuadInstance {
	inst := QuadInstance{
		Bounds:       [4]float32{q.Bounds.Origin.X, q.Bounds.Origin.Y, q.Bounds.Size.Width, q.Bounds.Size.Height},
		Background:   q.Background.Array(),
		BorderColor:  q.BorderColor.Array(),
		BorderWidths: [4]float32{q.BorderWidths.Top, q.BorderWidths.Right, q.BorderWidths.Bottom, q.BorderWidths.Left},
		CornerRadii:  [4]float32{q.CornerRadii.TopLeft, q.CornerRadii.TopRight, q.CornerRadii.BottomRight, q.CornerRadii.BottomLeft},
	}
	if q.Clipped {
		inst.ClipBounds = [4]float32{q.Clip.Origin.X, q.Clip.Origin.Y, q.Clip.Size.Width, q.Clip.Size.Height}
		inst.HasClip = 1
	}
	return inst
}

// Quad reconstructs the scene quad this record was built from.
func (inst *QuadInstance) Quad() scene.Quad {
	q := scene.Quad{
		Bounds:       scene.NewRect(inst.Bounds[0], inst.Bounds[1], inst.Bounds[2], inst.Bounds[3]),
		Background:   scene.RGBA(inst.Background[0], inst.Background[1], inst.Background[2], inst.Background[3]),
		BorderColor:  scene.RGBA(inst.BorderColor[0], inst.BorderColor[1], inst.BorderColor[2], inst.BorderColor[3]),
		BorderWidths: scene.Edges{Top: inst.BorderWidths[0], Right: inst.BorderWidths[1], Bottom: inst.BorderWidths[2], Left: inst.BorderWidths[3]},
		CornerRadii:  scene.Corners{TopLeft: inst.CornerRadii[0], TopRight: inst.CornerRadii[1], BottomRight: inst.CornerRadii[2], BottomLeft: inst.CornerRadii[3]},
	}
	if inst.HasClip != 0 {
		q = q.WithClip(scene.NewRect(inst.ClipBounds[0], inst.ClipBounds[1], inst.ClipBounds[2], inst.ClipBounds[3]))
	}
	return q
}

// floats returns the record as its 28 float32 words in wire order.
func (inst *QuadInstance) floats() [instanceFloats]float32 {
	var f [instanceFloats]float32
	copy(f[0:4], inst.Bounds[:])
	copy(f[4:8], inst.Background[:])
	copy(f[8:12], inst.BorderColor[:])
	copy(f[12:16], inst.BorderWidths[:])
	copy(f[16:20], inst.CornerRadii[:])
	copy(f[20:24], inst.ClipBounds[:])
	f[24] = inst.HasClip
	copy(f[25:28], inst.Padding[:])
	return f
}

// AppendBytes appends the little-endian wire form of inst to dst.
func (inst *QuadInstance) AppendBytes(dst []byte) []byte {
	for _, v := range inst.floats() {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// DecodeInstance reads one record from the first InstanceSize bytes of b.
func DecodeInstance(b []byte) (QuadInstance, error) {
	if len(b) < InstanceSize {
		return QuadInstance{}, fmt.Errorf("render: instance record needs %d bytes, got %d", InstanceSize, len(b))
	}
	var f [instanceFloats]float32
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	var inst QuadInstance
	copy(inst.Bounds[:], f[0:4])
	copy(inst.Background[:], f[4:8])
	copy(inst.BorderColor[:], f[8:12])
	copy(inst.BorderWidths[:], f[12:16])
	copy(inst.CornerRadii[:], f[16:20])
	copy(inst.ClipBounds[:], f[20:24])
	inst.HasClip = f[24]
	copy(inst.Padding[:], f[25:28])
	return inst, nil
}

// DecodeInstances reads n consecutive records from b.
func DecodeInstances(b []byte, n int) ([]QuadInstance, error) {
	if len(b) < n*InstanceSize {
		return nil, fmt.Errorf("render: %d instance records need %d bytes, got %d", n, n*InstanceSize, len(b))
	}
	out := make([]QuadInstance, n)
	for i := range out {
		inst, err := DecodeInstance(b[i*InstanceSize:])
		if err != nil {
			return nil, err
		}
		out[i] = inst
	}
	return out, nil
}

// PackInstances appends one packed record per quad, in scene order, to dst.
func PackInstances(dst []byte, quads []scene.Quad) []byte {
	for i := range quads {
		inst := InstanceFromQuad(&quads[i])
		dst = inst.AppendBytes(dst)
	}
	return dst
}
