package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gesso/render"
)

// bufferAllocator allocates instance blocks as HAL vertex buffers.
type bufferAllocator struct {
	device hal.Device
	queue  hal.Queue
	label  string
	usage  gputypes.BufferUsage

	// retire, when set, takes over destruction of released buffers.
	retire func(hal.Buffer)

	// allocations counts every successful Allocate call.
	allocations int
}

func newInstanceAllocator(device hal.Device, queue hal.Queue) *bufferAllocator {
	return &bufferAllocator{
		device: device,
		queue:  queue,
		label:  "gesso_instances",
		usage:  gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	}
}

// Allocate creates a GPU buffer of size bytes.
func (a *bufferAllocator) Allocate(size uint64) (render.Block, error) {
	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: a.label,
		Size:  size,
		Usage: a.usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer (%d bytes): %w", a.label, size, err)
	}
	a.allocations++
	return &bufferBlock{alloc: a, buf: buf, size: size}, nil
}

// bufferBlock is a render.Block backed by a HAL buffer. Writes go through
// the queue.
type bufferBlock struct {
	alloc *bufferAllocator
	buf   hal.Buffer
	size  uint64
}

func (b *bufferBlock) Size() uint64 {
	return b.size
}

func (b *bufferBlock) Write(offset uint64, data []byte) error {
	if b.buf == nil {
		return render.ErrBufferReleased
	}
	if offset+uint64(len(data)) > b.size {
		return render.ErrWriteOutOfRange
	}
	if err := b.alloc.queue.WriteBuffer(b.buf, offset, data); err != nil {
		return fmt.Errorf("write %s buffer: %w", b.alloc.label, err)
	}
	return nil
}

func (b *bufferBlock) Release() {
	if b.buf == nil {
		return
	}
	if b.alloc.retire != nil {
		b.alloc.retire(b.buf)
	} else {
		b.alloc.device.DestroyBuffer(b.buf)
	}
	b.buf = nil
}

// Buffer returns the HAL buffer, or nil after Release.
func (b *bufferBlock) Buffer() hal.Buffer {
	return b.buf
}

// createAndUploadBuffer creates a GPU buffer holding data.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}
