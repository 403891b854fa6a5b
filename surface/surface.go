// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/gesso/render"
)

// Surface is a render.Surface that can also be read back and released.
//
// Surfaces are NOT thread-safe. Each surface should be used from the
// goroutine that drives the frame loop, or external synchronization must
// be used.
type Surface interface {
	render.Surface

	// Snapshot returns a copy of the most recently presented frame.
	// This may be slow for GPU surfaces as it requires readback.
	Snapshot() (*image.RGBA, error)

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Surface errors.
var (
	// ErrClosed is returned when using a closed surface.
	ErrClosed = errors.New("surface: surface is closed")

	// ErrUnsupportedFormat is returned by Save for an unknown file extension.
	ErrUnsupportedFormat = errors.New("surface: unsupported image format")
)
