package debug

import (
	"slices"

	"github.com/gogpu/gesso/scene"
)

// Overlay is a quad injected by a debug client. Overlays persist across
// frames until removed.
type Overlay struct {
	ID           uint64    `json:"id"`
	X            float32   `json:"x"`
	Y            float32   `json:"y"`
	W            float32   `json:"w"`
	H            float32   `json:"h"`
	Color        ColorInfo `json:"color"`
	BorderColor  ColorInfo `json:"border_color"`
	BorderWidth  float32   `json:"border_width"`
	CornerRadius float32   `json:"corner_radius"`
}

// Quad converts the overlay to a scene quad with uniform border widths and
// corner radii.
func (o *Overlay) Quad() scene.Quad {
	return scene.NewQuad(scene.NewRect(o.X, o.Y, o.W, o.H), o.Color.Color()).
		WithBorder(o.BorderColor.Color(), scene.AllEdges(o.BorderWidth)).
		WithCornerRadii(scene.AllCorners(o.CornerRadius))
}

// overlaySet holds overlays in insertion order. IDs start at 0 and are
// never reused.
type overlaySet struct {
	quads  []Overlay
	nextID uint64
}

func (s *overlaySet) add(o Overlay) uint64 {
	o.ID = s.nextID
	s.nextID++
	s.quads = append(s.quads, o)
	return o.ID
}

func (s *overlaySet) remove(id uint64) bool {
	n := len(s.quads)
	s.quads = slices.DeleteFunc(s.quads, func(o Overlay) bool { return o.ID == id })
	return len(s.quads) < n
}

func (s *overlaySet) clear() int {
	n := len(s.quads)
	s.quads = s.quads[:0]
	return n
}

func (s *overlaySet) list() []Overlay {
	out := make([]Overlay, len(s.quads))
	copy(out, s.quads)
	return out
}
