// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/gesso/scene"
)

func instanceOf(q scene.Quad) *QuadInstance {
	inst := InstanceFromQuad(&q)
	return &inst
}

var red = scene.RGB(1, 0, 0)

func TestEvaluateSquareCoversBounds(t *testing.T) {
	inst := instanceOf(scene.NewQuad(scene.NewRect(10, 20, 30, 40), red))

	for y := float32(20.5); y < 60; y++ {
		for x := float32(10.5); x < 40; x++ {
			c, ok := Evaluate(inst, x, y)
			if !ok || c != red {
				t.Fatalf("Evaluate(%v, %v) = %v, %v; want red", x, y, c, ok)
			}
		}
	}
	for _, p := range [][2]float32{{9.5, 30}, {40.5, 30}, {20, 19.5}, {20, 60.5}} {
		if _, ok := Evaluate(inst, p[0], p[1]); ok {
			t.Errorf("Evaluate(%v, %v) should discard", p[0], p[1])
		}
	}
}

func TestEvaluateRoundedCorner(t *testing.T) {
	inst := instanceOf(scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).
		WithCornerRadii(scene.AllCorners(20)))

	tests := []struct {
		name   string
		x, y   float32
		inside bool
	}{
		{"top-left corner", 0.5, 0.5, false},
		{"top-right corner", 99.5, 0.5, false},
		{"bottom-right corner", 99.5, 99.5, false},
		{"bottom-left corner", 0.5, 99.5, false},
		{"center", 50, 50, true},
		{"top edge middle", 50, 0.5, true},
		{"arc interior", 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Evaluate(inst, tt.x, tt.y)
			if ok != tt.inside {
				t.Errorf("Evaluate(%v, %v) drawn = %v, want %v", tt.x, tt.y, ok, tt.inside)
			}
		})
	}
}

func TestEvaluatePerCornerRadius(t *testing.T) {
	inst := instanceOf(scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).
		WithCornerRadii(scene.Corners{TopLeft: 0, TopRight: 40, BottomRight: 0, BottomLeft: 0}))

	if _, ok := Evaluate(inst, 0.5, 0.5); !ok {
		t.Error("square top-left corner should be drawn")
	}
	if _, ok := Evaluate(inst, 99.5, 0.5); ok {
		t.Error("rounded top-right corner should be discarded")
	}
	if _, ok := Evaluate(inst, 99.5, 99.5); !ok {
		t.Error("square bottom-right corner should be drawn")
	}
}

func TestEvaluateRadiusContainment(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		w := 1 + rng.Float32()*200
		h := 1 + rng.Float32()*200
		q := scene.NewQuad(scene.NewRect(5, 7, w, h), red).WithCornerRadii(scene.Corners{
			TopLeft:     rng.Float32() * 150,
			TopRight:    rng.Float32() * 150,
			BottomRight: rng.Float32() * 150,
			BottomLeft:  rng.Float32() * 150,
		})
		inst := instanceOf(q)

		for range 50 {
			x := rng.Float32()*(w+40) - 15
			y := rng.Float32()*(h+40) - 13
			if _, ok := Evaluate(inst, x, y); ok && !q.Bounds.Contains(scene.Pt(x, y)) {
				t.Fatalf("quad %v radii %v drew (%v, %v) outside its bounds", q.Bounds, q.CornerRadii, x, y)
			}
		}
	}
}

func TestEvaluateClip(t *testing.T) {
	q := scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).WithClip(scene.NewRect(25, 25, 50, 50))
	inst := instanceOf(q)

	if _, ok := Evaluate(inst, 10, 10); ok {
		t.Error("pixel outside the clip should be discarded")
	}
	if _, ok := Evaluate(inst, 50, 50); !ok {
		t.Error("pixel inside the clip should be drawn")
	}
	if _, ok := Evaluate(inst, 75, 75); !ok {
		t.Error("clip edges are inclusive")
	}
}

func TestEvaluateClipContainment(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 300 {
		w, h := 1+rng.Float32()*150, 1+rng.Float32()*150
		bounds := scene.NewRect(rng.Float32()*50, rng.Float32()*50, w, h)
		clip := scene.NewRect(rng.Float32()*100, rng.Float32()*100, rng.Float32()*80, rng.Float32()*80)
		q := scene.NewQuad(bounds, red).
			WithCornerRadii(scene.Corners{
				TopLeft:     rng.Float32() * w,
				TopRight:    rng.Float32() * w,
				BottomRight: rng.Float32() * h,
				BottomLeft:  rng.Float32() * h,
			}).
			WithBorder(scene.RGB(0, 0, 1), scene.Edges{
				Top:    rng.Float32() * 20,
				Right:  rng.Float32() * 20,
				Bottom: rng.Float32() * 20,
				Left:   rng.Float32() * 20,
			}).
			WithClip(clip)
		inst := instanceOf(q)

		for range 200 {
			x, y := rng.Float32()*220-10, rng.Float32()*220-10
			if _, ok := Evaluate(inst, x, y); ok && !clip.Contains(scene.Pt(x, y)) {
				t.Fatalf("quad %v radii %v border %v drew (%v, %v) outside clip %v",
					bounds, q.CornerRadii, q.BorderWidths, x, y, clip)
			}
		}
	}
}

func TestEvaluateBorder(t *testing.T) {
	blue := scene.RGB(0, 0, 1)
	inst := instanceOf(scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).
		WithBorder(blue, scene.AllEdges(5)))

	if c, ok := Evaluate(inst, 2, 50); !ok || c != blue {
		t.Errorf("border pixel = %v, %v; want blue", c, ok)
	}
	if c, ok := Evaluate(inst, 50, 50); !ok || c != red {
		t.Errorf("interior pixel = %v, %v; want red", c, ok)
	}
}

func TestEvaluateBorderUsesWidestEdge(t *testing.T) {
	blue := scene.RGB(0, 0, 1)
	inst := instanceOf(scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).
		WithBorder(blue, scene.Edges{Top: 10}))

	// The left edge has width 0 but is painted with the widest width.
	if c, _ := Evaluate(inst, 5, 50); c != blue {
		t.Errorf("left band = %v, want blue", c)
	}
}

func TestEvaluateTransparentBorderIgnored(t *testing.T) {
	inst := instanceOf(scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).
		WithBorder(scene.RGBA(0, 0, 1, 0), scene.AllEdges(10)))

	if c, ok := Evaluate(inst, 2, 50); !ok || c != red {
		t.Errorf("pixel = %v, %v; want background", c, ok)
	}
}

func TestSelectCornerRadius(t *testing.T) {
	radii := [4]float32{1, 2, 3, 4}
	tests := []struct {
		name   string
		lx, ly float32
		want   float32
	}{
		{"top-left", 10, 10, 1},
		{"top-right", 90, 10, 2},
		{"bottom-right", 90, 90, 3},
		{"bottom-left", 10, 90, 4},
	}
	for _, tt := range tests {
		if got := SelectCornerRadius(radii, tt.lx, tt.ly, 100, 100); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}

	if got := SelectCornerRadius([4]float32{80, 80, 80, 80}, 1, 1, 100, 40); got != 20 {
		t.Errorf("oversized radius = %v, want clamp to 20", got)
	}
}

func TestRoundedRectDistance(t *testing.T) {
	tests := []struct {
		name       string
		lx, ly     float32
		w, h, r    float32
		wantSign   int
		wantApprox float32
	}{
		{"center", 50, 50, 100, 100, 0, -1, -50},
		{"edge", 0, 50, 100, 100, 0, 0, 0},
		{"outside", -10, 50, 100, 100, 0, 1, 10},
		{"corner outside arc", 0, 0, 100, 100, 10, 1, 10*1.4142135 - 10},
	}
	for _, tt := range tests {
		d := RoundedRectDistance(tt.lx, tt.ly, tt.w, tt.h, tt.r)
		if diff := d - tt.wantApprox; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("%s: distance = %v, want %v", tt.name, d, tt.wantApprox)
		}
		switch {
		case tt.wantSign < 0 && d >= 0, tt.wantSign > 0 && d <= 0:
			t.Errorf("%s: distance %v has wrong sign", tt.name, d)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	inst := instanceOf(scene.NewQuad(scene.NewRect(0, 0, 100, 100), red).
		WithCornerRadii(scene.AllCorners(12)).
		WithBorder(scene.White, scene.AllEdges(2)))

	b.ReportAllocs()
	for b.Loop() {
		for y := float32(0.5); y < 100; y += 10 {
			for x := float32(0.5); x < 100; x += 10 {
				Evaluate(inst, x, y)
			}
		}
	}
}
