// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render converts scenes of quads into frames.
//
// This package holds everything that is shared between backends: the
// Renderer and Surface contracts, the packed instance record that crosses
// into GPU-visible memory, the instance buffer growth policy, the viewport
// mapping, and the per-pixel shape evaluator.
//
// # Core Interfaces
//
//   - Renderer: draws a Scene onto a Surface
//   - Surface: hands out one Drawable per frame
//   - Allocator/Block: GPU-visible (or host) memory behind an InstanceBuffer
//
// # Renderer Implementations
//
//   - SoftwareRenderer: CPU rendering, banded per-pixel evaluation
//   - DebugRenderer: counts frames and quads without drawing
//   - backend/wgpu.Renderer: wgpu/hal instanced rendering
//
// # Frame Protocol
//
//	scene.Quads() ──► InstanceBuffer.Upload ──► Surface.NextDrawable
//	                  (grow to 2^n, pack)         (skip frame if none)
//	                                                   │
//	                                                   ▼
//	                          clear black ──► one instanced draw ──► Present
//
// The shape evaluator (Evaluate) is the same algorithm the WGSL fragment
// stage runs: clip test, per-quadrant corner radius, rounded-rectangle
// signed distance, border band.
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
package render
