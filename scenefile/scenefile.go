package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gesso/scene"
)

// Default frame size for documents that omit it.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Errors.
var (
	// ErrInvalidColor is returned for a color that is not a known name, a
	// hex string, or a list of three or four numbers.
	ErrInvalidColor = errors.New("scenefile: invalid color")

	// ErrInvalidSides is returned for widths or radii that are neither a
	// number nor a list of four numbers.
	ErrInvalidSides = errors.New("scenefile: expected a number or a list of 4 numbers")

	// ErrInvalidRect is returned for a rectangle that is not [x, y, w, h].
	ErrInvalidRect = errors.New("scenefile: expected [x, y, width, height]")
)

// Document is a parsed scene file.
type Document struct {
	Width  int         `yaml:"width,omitempty"`
	Height int         `yaml:"height,omitempty"`
	Clear  *Color      `yaml:"clear,omitempty"`
	Quads  []QuadEntry `yaml:"quads"`
}

// QuadEntry is one quad in a document.
type QuadEntry struct {
	Bounds     Rect    `yaml:"bounds"`
	Background Color   `yaml:"background"`
	Border     *Border `yaml:"border,omitempty"`
	Radii      Sides   `yaml:"radii,omitempty"`
	Clip       *Rect   `yaml:"clip,omitempty"`
}

// Border is a quad's border paint.
type Border struct {
	Color  Color `yaml:"color"`
	Widths Sides `yaml:"widths"`
}

// Load parses a document from r. Unknown keys are rejected.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scenefile: empty document")
		}
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, fmt.Errorf("scenefile: negative frame size %dx%d", doc.Width, doc.Height)
	}
	if doc.Width == 0 {
		doc.Width = DefaultWidth
	}
	if doc.Height == 0 {
		doc.Height = DefaultHeight
	}
	return &doc, nil
}

// LoadFile parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-selected scene file
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	doc, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Scene builds a scene holding the document's quads in order.
func (d *Document) Scene() *scene.Scene {
	s := scene.New()
	d.AppendTo(s)
	return s
}

// AppendTo pushes the document's quads onto s.
func (d *Document) AppendTo(s *scene.Scene) {
	for i := range d.Quads {
		s.PushQuad(d.Quads[i].Quad())
	}
}

// ClearColor returns the document's clear color, or opaque black.
func (d *Document) ClearColor() scene.Color {
	if d.Clear == nil {
		return scene.Black
	}
	return scene.Color(*d.Clear)
}

// Quad converts the entry to a scene quad.
func (e *QuadEntry) Quad() scene.Quad {
	q := scene.NewQuad(e.Bounds.Rect(), scene.Color(e.Background))
	if e.Border != nil {
		q = q.WithBorder(scene.Color(e.Border.Color), e.Border.Widths.Edges())
	}
	q = q.WithCornerRadii(e.Radii.Corners())
	if e.Clip != nil {
		q = q.WithClip(e.Clip.Rect())
	}
	return q
}

// FromScene builds a document from s for a width x height frame.
func FromScene(s *scene.Scene, width, height int) *Document {
	doc := &Document{Width: width, Height: height}
	for _, q := range s.Quads() {
		e := QuadEntry{
			Bounds:     RectOf(q.Bounds),
			Background: Color(q.Background),
			Radii:      Sides{q.CornerRadii.TopLeft, q.CornerRadii.TopRight, q.CornerRadii.BottomRight, q.CornerRadii.BottomLeft},
		}
		if q.BorderColor.A != 0 || q.BorderWidths.Max() != 0 {
			e.Border = &Border{
				Color:  Color(q.BorderColor),
				Widths: Sides{q.BorderWidths.Top, q.BorderWidths.Right, q.BorderWidths.Bottom, q.BorderWidths.Left},
			}
		}
		if q.Clipped {
			clip := RectOf(q.Clip)
			e.Clip = &clip
		}
		doc.Quads = append(doc.Quads, e)
	}
	return doc
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	return enc.Close()
}

// Color is a scene.Color with YAML support.
type Color scene.Color

// ParseColor parses a color name or hex string.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := scene.ParseHex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return Color(c), nil
	}
	if strings.EqualFold(s, "transparent") {
		return Color(scene.Transparent), nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, s)
	}
	return Color(scene.FromColor(named)), nil
}

// UnmarshalYAML accepts a name, a hex string, or [r, g, b] / [r, g, b, a].
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var v []float32
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w: %w", n.Line, ErrInvalidColor, err)
		}
		switch len(v) {
		case 3:
			*c = Color{R: v[0], G: v[1], B: v[2], A: 1}
		case 4:
			*c = Color{R: v[0], G: v[1], B: v[2], A: v[3]}
		default:
			return fmt.Errorf("line %d: %w: %d components", n.Line, ErrInvalidColor, len(v))
		}
		return nil
	default:
		return fmt.Errorf("line %d: %w", n.Line, ErrInvalidColor)
	}
}

// MarshalYAML writes the color as a #rrggbbaa string.
func (c Color) MarshalYAML() (any, error) {
	n := scene.Color(c).NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// Sides is four per-edge or per-corner values.
type Sides [4]float32

// UnmarshalYAML accepts a single number or a list of four.
func (s *Sides) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v float32
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, ErrInvalidSides)
		}
		*s = Sides{v, v, v, v}
		return nil
	case yaml.SequenceNode:
		var v []float32
		if err := n.Decode(&v); err != nil || len(v) != 4 {
			return fmt.Errorf("line %d: %w", n.Line, ErrInvalidSides)
		}
		*s = Sides(v)
		return nil
	default:
		return fmt.Errorf("line %d: %w", n.Line, ErrInvalidSides)
	}
}

// MarshalYAML writes equal sides as a single number.
func (s Sides) MarshalYAML() (any, error) {
	if s[0] == s[1] && s[1] == s[2] && s[2] == s[3] {
		return s[0], nil
	}
	return [4]float32(s), nil
}

// IsZero reports whether all four values are zero.
func (s Sides) IsZero() bool {
	return s == Sides{}
}

// Edges interprets the values as top, right, bottom, left.
func (s Sides) Edges() scene.Edges {
	return scene.Edges{Top: s[0], Right: s[1], Bottom: s[2], Left: s[3]}
}

// Corners interprets the values as top-left, top-right, bottom-right,
// bottom-left.
func (s Sides) Corners() scene.Corners {
	return scene.Corners{TopLeft: s[0], TopRight: s[1], BottomRight: s[2], BottomLeft: s[3]}
}

// Rect is [x, y, width, height].
type Rect [4]float32

// RectOf converts a scene rectangle.
func RectOf(r scene.Rect) Rect {
	return Rect{r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height}
}

// UnmarshalYAML accepts a list of four numbers.
func (r *Rect) UnmarshalYAML(n *yaml.Node) error {
	var v []float32
	if n.Kind != yaml.SequenceNode || n.Decode(&v) != nil || len(v) != 4 {
		return fmt.Errorf("line %d: %w", n.Line, ErrInvalidRect)
	}
	*r = Rect(v)
	return nil
}

// MarshalYAML writes the rectangle as a flow list.
func (r Rect) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range r {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(v)})
	}
	return n, nil
}

// Rect converts to a scene rectangle.
func (r Rect) Rect() scene.Rect {
	return scene.NewRect(r[0], r[1], r[2], r[3])
}
