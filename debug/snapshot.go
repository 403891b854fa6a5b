package debug

import "github.com/gogpu/gesso/scene"

// Snapshot is a copy of a scene taken after a frame, plus the viewport it
// was drawn into.
type Snapshot struct {
	Quads        []QuadInfo `json:"quads"`
	ViewportSize [2]float32 `json:"viewport_size"`
	ScaleFactor  float32    `json:"scale_factor"`
}

// Stats is the scene.stats result.
type Stats struct {
	QuadCount    int        `json:"quad_count"`
	ViewportSize [2]float32 `json:"viewport_size"`
	ScaleFactor  float32    `json:"scale_factor"`
}

// QuadInfo describes one quad.
type QuadInfo struct {
	Bounds       BoundsInfo  `json:"bounds"`
	Color        ColorInfo   `json:"color"`
	BorderColor  ColorInfo   `json:"border_color"`
	BorderWidths EdgesInfo   `json:"border_widths"`
	CornerRadii  CornersInfo `json:"corner_radii"`
	HasClip      bool        `json:"has_clip"`
	ClipBounds   *BoundsInfo `json:"clip_bounds"`
}

// BoundsInfo is a rectangle.
type BoundsInfo struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// ColorInfo is a straight-alpha color.
type ColorInfo struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// EdgesInfo holds per-side values.
type EdgesInfo struct {
	Top    float32 `json:"top"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
	Left   float32 `json:"left"`
}

// CornersInfo holds per-corner values.
type CornersInfo struct {
	TopLeft     float32 `json:"top_left"`
	TopRight    float32 `json:"top_right"`
	BottomRight float32 `json:"bottom_right"`
	BottomLeft  float32 `json:"bottom_left"`
}

// NewSnapshot copies the quads of s.
func NewSnapshot(s *scene.Scene, width, height, scale float32) Snapshot {
	quads := s.Quads()
	snap := Snapshot{
		Quads:        make([]QuadInfo, len(quads)),
		ViewportSize: [2]float32{width, height},
		ScaleFactor:  scale,
	}
	for i := range quads {
		snap.Quads[i] = quadInfo(&quads[i])
	}
	return snap
}

// Stats summarizes the snapshot.
func (s *Snapshot) Stats() Stats {
	return Stats{
		QuadCount:    len(s.Quads),
		ViewportSize: s.ViewportSize,
		ScaleFactor:  s.ScaleFactor,
	}
}

// Scene rebuilds a scene from the snapshot.
func (s *Snapshot) Scene() *scene.Scene {
	sc := scene.New()
	for i := range s.Quads {
		sc.PushQuad(s.Quads[i].Quad())
	}
	return sc
}

func quadInfo(q *scene.Quad) QuadInfo {
	info := QuadInfo{
		Bounds:      boundsInfo(q.Bounds),
		Color:       colorInfo(q.Background),
		BorderColor: colorInfo(q.BorderColor),
		BorderWidths: EdgesInfo{
			Top:    q.BorderWidths.Top,
			Right:  q.BorderWidths.Right,
			Bottom: q.BorderWidths.Bottom,
			Left:   q.BorderWidths.Left,
		},
		CornerRadii: CornersInfo{
			TopLeft:     q.CornerRadii.TopLeft,
			TopRight:    q.CornerRadii.TopRight,
			BottomRight: q.CornerRadii.BottomRight,
			BottomLeft:  q.CornerRadii.BottomLeft,
		},
		HasClip: q.Clipped,
	}
	if q.Clipped {
		clip := boundsInfo(q.Clip)
		info.ClipBounds = &clip
	}
	return info
}

// Quad converts back to a scene quad.
func (q *QuadInfo) Quad() scene.Quad {
	out := scene.NewQuad(q.Bounds.Rect(), q.Color.Color()).
		WithBorder(q.BorderColor.Color(), scene.Edges{
			Top:    q.BorderWidths.Top,
			Right:  q.BorderWidths.Right,
			Bottom: q.BorderWidths.Bottom,
			Left:   q.BorderWidths.Left,
		}).
		WithCornerRadii(scene.Corners{
			TopLeft:     q.CornerRadii.TopLeft,
			TopRight:    q.CornerRadii.TopRight,
			BottomRight: q.CornerRadii.BottomRight,
			BottomLeft:  q.CornerRadii.BottomLeft,
		})
	if q.ClipBounds != nil {
		out = out.WithClip(q.ClipBounds.Rect())
	}
	return out
}

func boundsInfo(r scene.Rect) BoundsInfo {
	return BoundsInfo{X: r.X(), Y: r.Y(), W: r.Width(), H: r.Height()}
}

// Rect converts to a scene rectangle.
func (b BoundsInfo) Rect() scene.Rect {
	return scene.NewRect(b.X, b.Y, b.W, b.H)
}

func colorInfo(c scene.Color) ColorInfo {
	return ColorInfo{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Color converts to a scene color.
func (c ColorInfo) Color() scene.Color {
	return scene.RGBA(c.R, c.G, c.B, c.A)
}
