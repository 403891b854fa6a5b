// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gesso/scene"
)

// Evaluate runs the per-pixel shape program for one instance at the
// absolute device-pixel position (px, py). It returns the color written to
// the pixel and true, or false when the pixel is discarded.
//
// The steps match fs_main in shaders/quad.wgsl of the wgpu backend:
//
//  1. With an active clip, positions outside the clip rectangle (edges
//     inclusive) are discarded.
//  2. The quad is split into quadrants at its center; each quadrant uses
//     its own corner radius, clamped to half the shorter side.
//  3. The rounded-rectangle signed distance is computed in quad-local
//     coordinates (negative inside).
//  4. Positive distance is discarded.
//  5. Within the widest of the four border widths, a visible border color
//     wins over the background.
//
// All arithmetic is float32.
func Evaluate(inst *QuadInstance, px, py float32) (scene.Color, bool) {
	if inst.HasClip != 0 {
		cx, cy := inst.ClipBounds[0], inst.ClipBounds[1]
		if px < cx || px > cx+inst.ClipBounds[2] || py < cy || py > cy+inst.ClipBounds[3] {
			return scene.Color{}, false
		}
	}

	w, h := inst.Bounds[2], inst.Bounds[3]
	lx, ly := px-inst.Bounds[0], py-inst.Bounds[1]

	r := SelectCornerRadius(inst.CornerRadii, lx, ly, w, h)
	d := RoundedRectDistance(lx, ly, w, h, r)
	if d > 0 {
		return scene.Color{}, false
	}

	// A single width for all four edges: distinct per-edge widths are
	// approximated by the widest one.
	maxBorder := math32.Max(
		math32.Max(inst.BorderWidths[0], inst.BorderWidths[1]),
		math32.Max(inst.BorderWidths[2], inst.BorderWidths[3]),
	)
	if d > -maxBorder && inst.BorderColor[3] != 0 {
		return colorOf(inst.BorderColor), true
	}
	return colorOf(inst.Background), true
}

// SelectCornerRadius picks the radius of the quadrant containing the
// quad-local point (lx, ly) and clamps it to half the shorter side.
// radii are ordered top-left, top-right, bottom-right, bottom-left.
func SelectCornerRadius(radii [4]float32, lx, ly, w, h float32) float32 {
	var r float32
	left := lx < w*0.5
	top := ly < h*0.5
	switch {
	case top && left:
		r = radii[0]
	case top:
		r = radii[1]
	case left:
		r = radii[3]
	default:
		r = radii[2]
	}
	return math32.Min(r, math32.Min(w, h)*0.5)
}

// RoundedRectDistance returns the signed distance from the quad-local point
// (lx, ly) to the boundary of a w x h rectangle whose corners are rounded
// with radius r. The result is negative inside, zero on the boundary and
// positive outside.
func RoundedRectDistance(lx, ly, w, h, r float32) float32 {
	hx, hy := w*0.5, h*0.5
	qx := math32.Abs(lx-hx) - (hx - r)
	qy := math32.Abs(ly-hy) - (hy - r)

	ox := math32.Max(qx, 0)
	oy := math32.Max(qy, 0)
	outside := math32.Sqrt(ox*ox + oy*oy)
	inside := math32.Min(math32.Max(qx, qy), 0)
	return inside + outside - r
}

func colorOf(c [4]float32) scene.Color {
	return scene.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
