package scene

// Quad is one axis-aligned rounded rectangle: geometry, paint, and an
// optional clip. Quads are values; a Scene stores copies and never
// modifies them after insertion.
//
// Nothing is validated. Negative sizes, channels outside [0, 1], and radii
// larger than half the shorter side are passed through unchanged; radii are
// clamped only when the shape is evaluated.
type Quad struct {
	// Bounds is the rectangle in device pixels.
	Bounds Rect

	// Background fills the interior.
	Background Color

	// BorderColor paints the border band. Alpha 0 disables the border.
	BorderColor Color

	// BorderWidths are per-side widths (top, right, bottom, left).
	BorderWidths Edges

	// CornerRadii are per-corner radii (top-left, top-right, bottom-right,
	// bottom-left).
	CornerRadii Corners

	// Clip restricts drawing to this device-pixel rectangle when Clipped
	// is set.
	Clip    Rect
	Clipped bool
}

// NewQuad returns a quad with the given bounds and background, no border,
// square corners and no clip.
func NewQuad(bounds Rect, background Color) Quad {
	return Quad{
		Bounds:      bounds,
		Background:  background,
		BorderColor: Transparent,
	}
}

// WithBorder returns a copy of q with the given border color and widths.
func (q Quad) WithBorder(c Color, widths Edges) Quad {
	q.BorderColor = c
	q.BorderWidths = widths
	return q
}

// WithCornerRadii returns a copy of q with the given corner radii.
func (q Quad) WithCornerRadii(radii Corners) Quad {
	q.CornerRadii = radii
	return q
}

// WithClip returns a copy of q clipped to r.
func (q Quad) WithClip(r Rect) Quad {
	q.Clip = r
	q.Clipped = true
	return q
}

// HasClip reports whether the quad carries a clip rectangle.
func (q Quad) HasClip() bool {
	return q.Clipped
}
