package scene

// Scene is the ordered set of quads submitted for one frame.
//
// Insertion order is paint order: a quad pushed later is drawn over earlier
// quads at the same pixel. A typical frame calls Clear, then PushQuad for
// each primitive, then hands the scene to a renderer, which reads it
// without modifying it.
//
// Scene is not safe for concurrent use. It is owned by the goroutine that
// drives the frame loop.
//
// Example:
//
//	s := scene.New()
//	for frame := 0; ; frame++ {
//	    s.Clear()
//	    s.PushQuad(scene.NewQuad(scene.NewRect(10, 10, 100, 40), scene.RGB(0.2, 0.4, 0.8)))
//	    if err := renderer.Render(s, surf); err != nil {
//	        return err
//	    }
//	}
type Scene struct {
	quads []Quad

	// version is incremented on each modification for cache invalidation
	version uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Clear removes all quads. The backing storage is kept for the next frame.
func (s *Scene) Clear() {
	s.quads = s.quads[:0]
	s.version++
}

// PushQuad appends q. No validation is performed.
func (s *Scene) PushQuad(q Quad) {
	s.quads = append(s.quads, q)
	s.version++
}

// Quads returns the quads in paint order. The slice aliases the scene's
// storage and is valid only until the next Clear or PushQuad.
func (s *Scene) Quads() []Quad {
	return s.quads
}

// QuadCount returns the number of quads.
func (s *Scene) QuadCount() int {
	return len(s.quads)
}

// IsEmpty reports whether the scene has no quads.
func (s *Scene) IsEmpty() bool {
	return len(s.quads) == 0
}

// Version returns a counter that changes whenever the scene is modified.
func (s *Scene) Version() uint64 {
	return s.version
}
