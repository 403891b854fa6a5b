// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gesso/scene"

// DebugRenderer counts frames and quads without drawing anything. It never
// touches the surface, so a nil surface is accepted.
type DebugRenderer struct {
	FramesRendered int
	LastQuadCount  int
}

// Render records the scene's quad count.
func (r *DebugRenderer) Render(s *scene.Scene, _ Surface) error {
	r.FramesRendered++
	r.LastQuadCount = 0
	if s != nil {
		r.LastQuadCount = s.QuadCount()
	}
	return nil
}

var _ Renderer = (*DebugRenderer)(nil)
