// Package wgpu implements the quad renderer on the gogpu/wgpu hardware
// abstraction layer.
//
// The renderer compiles one WGSL program (shaders/quad.wgsl) with naga,
// keeps quad records in a vertex buffer at instance step rate, and draws
// every quad of a frame with a single instanced draw of a four-vertex
// triangle strip.
//
// Devices come from one of three places:
//
//   - OpenDevice creates a standalone device on the Vulkan backend
//   - DeviceFromProvider shares a host application's device through
//     gpucontext.DeviceProvider
//   - NewDeviceFromHAL wraps an existing hal.Device and hal.Queue
//
// Example:
//
//	dev, err := wgpu.OpenDevice()
//	if err != nil {
//	    return err
//	}
//	defer dev.Destroy()
//
//	r, err := wgpu.NewRenderer(dev, gputypes.TextureFormatRGBA8Unorm)
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//
//	surf, err := wgpu.NewTextureSurface(dev, 800, 600, gputypes.TextureFormatRGBA8Unorm)
//	if err != nil {
//	    return err
//	}
//	defer surf.Close()
//
//	if err := r.Render(sc, surf); err != nil {
//	    return err
//	}
//	img, err := surf.Snapshot()
package wgpu
