package scene

import "github.com/chewxy/math32"

// Point is a position in device pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair in device pixels.
type Size struct {
	Width, Height float32
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float32) Size {
	return Size{Width: w, Height: h}
}

// MinSide returns the shorter of the two dimensions.
func (s Size) MinSide() float32 {
	return math32.Min(s.Width, s.Height)
}

// Rect is an axis-aligned rectangle described by its top-left origin and size.
// Negative sizes are representable; nothing in this package rejects them.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect creates a rectangle from origin and size components.
func NewRect(x, y, width, height float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// X returns the left edge.
func (r Rect) X() float32 { return r.Origin.X }

// Y returns the top edge.
func (r Rect) Y() float32 { return r.Origin.Y }

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Size.Width }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Size.Height }

// Min returns the top-left corner.
func (r Rect) Min() Point { return r.Origin }

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y + r.Size.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width*0.5, Y: r.Origin.Y + r.Size.Height*0.5}
}

// Contains reports whether p lies inside r. Both edges are inclusive.
func (r Rect) Contains(p Point) bool {
	maxP := r.Max()
	return p.X >= r.Origin.X && p.X <= maxP.X && p.Y >= r.Origin.Y && p.Y <= maxP.Y
}

// Intersect returns the overlap of r and o. The result has zero size when
// the rectangles do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math32.Max(r.Origin.X, o.Origin.X)
	y0 := math32.Max(r.Origin.Y, o.Origin.Y)
	x1 := math32.Min(r.Max().X, o.Max().X)
	y1 := math32.Min(r.Max().Y, o.Max().Y)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Edges holds per-side values in CSS order: top, right, bottom, left.
type Edges struct {
	Top, Right, Bottom, Left float32
}

// AllEdges returns Edges with every side set to v.
func AllEdges(v float32) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// SymmetricEdges returns Edges with vertical applied to top/bottom and
// horizontal applied to left/right.
func SymmetricEdges(vertical, horizontal float32) Edges {
	return Edges{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// Horizontal returns left + right.
func (e Edges) Horizontal() float32 { return e.Left + e.Right }

// Vertical returns top + bottom.
func (e Edges) Vertical() float32 { return e.Top + e.Bottom }

// Max returns the largest of the four values.
func (e Edges) Max() float32 {
	return math32.Max(math32.Max(e.Top, e.Right), math32.Max(e.Bottom, e.Left))
}

// Corners holds per-corner values, clockwise from the top-left.
type Corners struct {
	TopLeft, TopRight, BottomRight, BottomLeft float32
}

// AllCorners returns Corners with every corner set to v.
func AllCorners(v float32) Corners {
	return Corners{TopLeft: v, TopRight: v, BottomRight: v, BottomLeft: v}
}

// TopBottomCorners applies top to both upper corners and bottom to both
// lower corners.
func TopBottomCorners(top, bottom float32) Corners {
	return Corners{TopLeft: top, TopRight: top, BottomRight: bottom, BottomLeft: bottom}
}

// ScaleFactor converts logical pixels to device pixels.
type ScaleFactor float32

// ScalePoint converts a logical point to device pixels.
func (s ScaleFactor) ScalePoint(p Point) Point {
	f := float32(s)
	return Point{X: p.X * f, Y: p.Y * f}
}

// ScaleSize converts a logical size to device pixels.
func (s ScaleFactor) ScaleSize(sz Size) Size {
	f := float32(s)
	return Size{Width: sz.Width * f, Height: sz.Height * f}
}

// ScaleRect converts a logical rectangle to device pixels.
func (s ScaleFactor) ScaleRect(r Rect) Rect {
	return Rect{Origin: s.ScalePoint(r.Origin), Size: s.ScaleSize(r.Size)}
}

// UnscalePoint converts a device point back to logical pixels.
func (s ScaleFactor) UnscalePoint(p Point) Point {
	f := float32(s)
	return Point{X: p.X / f, Y: p.Y / f}
}

// UnscaleSize converts a device size back to logical pixels.
func (s ScaleFactor) UnscaleSize(sz Size) Size {
	f := float32(s)
	return Size{Width: sz.Width / f, Height: sz.Height / f}
}

// UnscaleRect converts a device rectangle back to logical pixels.
func (s ScaleFactor) UnscaleRect(r Rect) Rect {
	return Rect{Origin: s.UnscalePoint(r.Origin), Size: s.UnscaleSize(r.Size)}
}

// Axis is a direction in 2D space.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Invert returns the perpendicular axis.
func (a Axis) Invert() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// String returns the axis name.
func (a Axis) String() string {
	if a == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}
