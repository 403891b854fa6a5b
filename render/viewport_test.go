// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gesso/scene"
)

func TestViewportToClip(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	tests := []struct {
		pos, want scene.Point
	}{
		{scene.Pt(0, 0), scene.Pt(-1, 1)},
		{scene.Pt(800, 600), scene.Pt(1, -1)},
		{scene.Pt(400, 300), scene.Pt(0, 0)},
		{scene.Pt(0, 600), scene.Pt(-1, -1)},
	}
	for _, tt := range tests {
		if got := vp.ToClip(tt.pos); got != tt.want {
			t.Errorf("ToClip(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

// TestViewportRoundTrip checks that scene space survives the vertex stage
// and the rasterizer's viewport transform unchanged: top-down in, top-down
// out, so exactly one flip happens in between.
func TestViewportRoundTrip(t *testing.T) {
	vp := Viewport{Width: 640, Height: 480}
	for _, p := range []scene.Point{scene.Pt(0, 0), scene.Pt(10, 470), scene.Pt(320, 1), scene.Pt(640, 480)} {
		got := vp.ToFramebuffer(vp.ToClip(p))
		if math.Abs(float64(got.X-p.X)) > 1e-3 || math.Abs(float64(got.Y-p.Y)) > 1e-3 {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
}

func TestInstanceVertex(t *testing.T) {
	inst := &QuadInstance{Bounds: [4]float32{10, 20, 30, 40}}
	want := []scene.Point{scene.Pt(10, 20), scene.Pt(40, 20), scene.Pt(10, 60), scene.Pt(40, 60)}
	for i, unit := range UnitQuadVertices {
		if got := InstanceVertex(inst, unit); got != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestUnitQuadBytes(t *testing.T) {
	b := UnitQuadBytes()
	if len(b) != 32 {
		t.Fatalf("len = %d, want 32", len(b))
	}
	// Second vertex is (1, 0).
	if x := math.Float32frombits(binary.LittleEndian.Uint32(b[8:])); x != 1 {
		t.Errorf("vertex 1 x = %v, want 1", x)
	}
}

func TestViewportBytes(t *testing.T) {
	b := Viewport{Width: 800, Height: 600}.Bytes()
	if len(b) != ViewportUniformSize {
		t.Fatalf("len = %d, want %d", len(b), ViewportUniformSize)
	}
	w := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
	h := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	if w != 800 || h != 600 {
		t.Errorf("uniform = (%v, %v), want (800, 600)", w, h)
	}
}
