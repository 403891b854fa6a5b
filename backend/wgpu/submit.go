package wgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gesso"
)

// submission is one command buffer the GPU may still be executing, with
// the buffers that were replaced while it was in flight.
type submission struct {
	index   uint64
	cmdBuf  hal.CommandBuffer
	retired []hal.Buffer
}

// inflight frees command buffers and retired buffers once the queue
// reports their submission complete. Submitting never waits.
type inflight struct {
	device  hal.Device
	queue   hal.Queue
	pending []submission

	// idleWaits counts blocking waits for the device to go idle.
	idleWaits int
}

func newInflight(device hal.Device, queue hal.Queue) *inflight {
	return &inflight{device: device, queue: queue}
}

// submit hands cmdBuf to the queue and returns its submission index. The
// command buffer is owned by the tracker from here on.
func (f *inflight) submit(cmdBuf hal.CommandBuffer) (uint64, error) {
	idx, err := f.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		f.device.FreeCommandBuffer(cmdBuf)
		return 0, fmt.Errorf("wgpu: submit: %w", err)
	}
	f.pending = append(f.pending, submission{index: idx, cmdBuf: cmdBuf})
	f.maintain()
	return idx, nil
}

// retire destroys buf after every submission made so far has completed.
func (f *inflight) retire(buf hal.Buffer) {
	f.maintain()
	if n := len(f.pending); n > 0 {
		f.pending[n-1].retired = append(f.pending[n-1].retired, buf)
		return
	}
	f.device.DestroyBuffer(buf)
}

// maintain frees everything belonging to completed submissions.
func (f *inflight) maintain() {
	f.release(f.queue.PollCompleted())
}

func (f *inflight) release(completed uint64) {
	n := 0
	for ; n < len(f.pending) && f.pending[n].index <= completed; n++ {
		sub := &f.pending[n]
		f.device.FreeCommandBuffer(sub.cmdBuf)
		for _, buf := range sub.retired {
			f.device.DestroyBuffer(buf)
		}
	}
	f.pending = append(f.pending[:0], f.pending[n:]...)
}

// busy reports whether a submission is still executing.
func (f *inflight) busy() bool {
	f.maintain()
	return len(f.pending) > 0
}

// wait blocks until the device is idle, then frees everything.
func (f *inflight) wait() error {
	if !f.busy() {
		return nil
	}
	f.idleWaits++
	err := f.device.WaitIdle()
	if err != nil {
		err = fmt.Errorf("wgpu: wait for GPU: %w", err)
		gesso.Logger().Warn("wgpu: releasing in-flight resources", "error", err)
	}
	f.release(^uint64(0))
	return err
}

// submitAndWait submits one command buffer and blocks until the queue
// reports it complete. The command buffer is freed before returning.
func submitAndWait(device hal.Device, queue hal.Queue, cmdBuf hal.CommandBuffer) error {
	f := newInflight(device, queue)
	idx, err := f.submit(cmdBuf)
	if err != nil {
		return err
	}
	if err := f.wait(); err != nil {
		return err
	}
	if done := queue.PollCompleted(); done < idx {
		return fmt.Errorf("wgpu: submission %d not complete after idle wait (completed %d)", idx, done)
	}
	return nil
}
