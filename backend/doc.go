// Package backend pairs a surface with the renderer that can draw into it.
//
// A backend is opened by name or by priority and owns both halves:
//
//	b, err := backend.OpenDefault(backend.Options{Width: 800, Height: 600})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	if err := b.Renderer().Render(s, b.Surface()); err != nil {
//		log.Fatal(err)
//	}
//	img, _ := b.Surface().Snapshot()
//
// The software backend is registered by this package. The GPU backend is
// registered when its package is imported:
//
//	import _ "github.com/gogpu/gesso/backend/wgpu"
package backend
