// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/scene"
)

// InitialInstanceCapacity is the number of records an InstanceBuffer holds
// when it is created.
const InitialInstanceCapacity = 1024

// Buffer errors.
var (
	// ErrBufferReleased is returned when using a released InstanceBuffer.
	ErrBufferReleased = errors.New("render: instance buffer has been released")

	// ErrNilAllocator is returned when creating an InstanceBuffer without an allocator.
	ErrNilAllocator = errors.New("render: allocator is nil")

	// ErrWriteOutOfRange is returned when a block write exceeds its size.
	ErrWriteOutOfRange = errors.New("render: write out of range")
)

// Allocator creates memory blocks for instance data. A GPU backend returns
// blocks backed by vertex buffers; HostAllocator returns plain byte slices.
type Allocator interface {
	// Allocate returns a block of at least size bytes.
	Allocate(size uint64) (Block, error)
}

// Block is one allocation made by an Allocator.
type Block interface {
	// Size returns the block size in bytes.
	Size() uint64

	// Write copies data into the block starting at offset.
	Write(offset uint64, data []byte) error

	// Release frees the block. The block must not be used afterwards.
	Release()
}

// InstanceBuffer owns the memory that packed quad records are uploaded to.
//
// Capacity starts at InitialInstanceCapacity records. When a frame needs
// more, the old block is released and a new one with the next power-of-two
// capacity is allocated. Capacity never shrinks. Every Upload rewrites the
// whole active range, so no per-record dirty state is tracked.
type InstanceBuffer struct {
	alloc    Allocator
	block    Block
	capacity int
	length   int
	reallocs int
	staging  []byte
}

// NewInstanceBuffer allocates a buffer with InitialInstanceCapacity records.
func NewInstanceBuffer(alloc Allocator) (*InstanceBuffer, error) {
	if alloc == nil {
		return nil, ErrNilAllocator
	}
	block, err := alloc.Allocate(uint64(InitialInstanceCapacity) * InstanceSize)
	if err != nil {
		return nil, fmt.Errorf("render: allocate instance buffer: %w", err)
	}
	return &InstanceBuffer{
		alloc:    alloc,
		block:    block,
		capacity: InitialInstanceCapacity,
	}, nil
}

// Capacity returns the number of records the current block can hold.
func (b *InstanceBuffer) Capacity() int {
	return b.capacity
}

// Len returns the number of records written by the last Upload.
func (b *InstanceBuffer) Len() int {
	return b.length
}

// Reallocations returns how many times the buffer has grown.
func (b *InstanceBuffer) Reallocations() int {
	return b.reallocs
}

// Block returns the current backing block, or nil after Release.
func (b *InstanceBuffer) Block() Block {
	return b.block
}

// Ensure grows the buffer so it can hold required records. It reports
// whether a reallocation happened. Old contents are discarded on growth.
func (b *InstanceBuffer) Ensure(required int) (bool, error) {
	if b.block == nil {
		return false, ErrBufferReleased
	}
	if required <= b.capacity {
		return false, nil
	}

	newCap := NextPowerOfTwo(required)
	block, err := b.alloc.Allocate(uint64(newCap) * InstanceSize)
	if err != nil {
		return false, fmt.Errorf("render: grow instance buffer to %d records: %w", newCap, err)
	}
	gesso.Logger().Debug("instance buffer grown",
		"old_capacity", b.capacity, "new_capacity", newCap, "required", required)

	b.block.Release()
	b.block = block
	b.capacity = newCap
	b.length = 0
	b.reallocs++
	return true, nil
}

// Upload packs quads in order and writes them to the start of the block in
// a single write. It reports whether the buffer had to grow first.
func (b *InstanceBuffer) Upload(quads []scene.Quad) (bool, error) {
	grew, err := b.Ensure(len(quads))
	if err != nil {
		return false, err
	}

	b.staging = PackInstances(b.staging[:0], quads)
	if len(b.staging) > 0 {
		if err := b.block.Write(0, b.staging); err != nil {
			return grew, fmt.Errorf("render: upload %d instances: %w", len(quads), err)
		}
	}
	b.length = len(quads)
	return grew, nil
}

// Release frees the backing block. Release is idempotent.
func (b *InstanceBuffer) Release() {
	if b.block != nil {
		b.block.Release()
		b.block = nil
	}
	b.length = 0
}

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for
// n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// HostAllocator allocates blocks in ordinary process memory. The software
// renderer uses it, and tests use it to observe the growth policy.
type HostAllocator struct {
	// Allocations counts every Allocate call.
	Allocations int
}

// Allocate returns a zeroed HostBlock of size bytes.
func (a *HostAllocator) Allocate(size uint64) (Block, error) {
	a.Allocations++
	return &HostBlock{data: make([]byte, size)}, nil
}

// HostBlock is a Block backed by a byte slice.
type HostBlock struct {
	data     []byte
	released bool
}

// Size returns the block size in bytes.
func (h *HostBlock) Size() uint64 {
	return uint64(len(h.data))
}

// Write copies data into the block at offset.
func (h *HostBlock) Write(offset uint64, data []byte) error {
	if h.released {
		return ErrBufferReleased
	}
	if offset+uint64(len(data)) > uint64(len(h.data)) {
		return ErrWriteOutOfRange
	}
	copy(h.data[offset:], data)
	return nil
}

// Bytes returns the block contents.
func (h *HostBlock) Bytes() []byte {
	return h.data
}

// Released reports whether Release has been called.
func (h *HostBlock) Released() bool {
	return h.released
}

// Release drops the backing slice.
func (h *HostBlock) Release() {
	h.released = true
	h.data = nil
}
