package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the Vulkan backend

	"github.com/gogpu/gesso"
)

// Device errors.
var (
	// ErrNoDevice is returned when no device or provider was supplied.
	ErrNoDevice = errors.New("wgpu: no GPU device")

	// ErrNoAdapter is returned when the backend reports no adapters.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrNotHAL is returned when a provider does not expose HAL objects.
	ErrNotHAL = errors.New("wgpu: provider does not expose HAL device and queue")
)

// Device is a HAL device and its queue.
//
// A Device opened with OpenDevice owns its instance and device and destroys
// them in Destroy. Devices obtained from a provider or from
// NewDeviceFromHAL are borrowed and left alone.
type Device struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance
	owned    bool

	// Name is the adapter name, when known.
	Name string

	// SurfaceFormat is the provider's preferred format, or
	// TextureFormatUndefined.
	SurfaceFormat gputypes.TextureFormat
}

// OpenDevice creates a standalone device on the Vulkan backend, preferring
// discrete and integrated GPUs over software adapters.
func OpenDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoDevice)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	gesso.Logger().Info("wgpu: device opened", "adapter", selected.Info.Name)
	return &Device{
		device:   openDev.Device,
		queue:    openDev.Queue,
		instance: instance,
		owned:    true,
		Name:     selected.Info.Name,
	}, nil
}

// DeviceFromProvider borrows the device of a host application. The
// provider must also implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func DeviceFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, ErrNoDevice
	}

	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNotHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNotHAL, hp.HalQueue())
	}

	gesso.Logger().Debug("wgpu: using shared device")
	return &Device{
		device:        device,
		queue:         queue,
		SurfaceFormat: provider.SurfaceFormat(),
	}, nil
}

// NewDeviceFromHAL wraps an existing device and queue without taking
// ownership.
func NewDeviceFromHAL(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// HAL returns the underlying device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) {
	return d.device, d.queue
}

// Owned reports whether Destroy releases the device.
func (d *Device) Owned() bool {
	return d.owned
}

// Destroy releases an owned device and its instance. Borrowed devices are
// not touched. Destroy is idempotent.
func (d *Device) Destroy() {
	if !d.owned {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.owned = false
}
