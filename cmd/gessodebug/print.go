package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogpu/gesso/debug"
)

type printer struct {
	out    io.Writer
	errOut io.Writer
	json   bool
}

func (p printer) print(method string, result json.RawMessage) error {
	if !p.json {
		switch method {
		case debug.MethodStats:
			var s debug.Stats
			if err := json.Unmarshal(result, &s); err == nil {
				formatStats(p.out, s)
				return nil
			}
		case debug.MethodList:
			var list []debug.Overlay
			if err := json.Unmarshal(result, &list); err == nil {
				formatOverlays(p.out, list)
				return nil
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := p.out.Write(buf.Bytes())
	return err
}

func formatStats(w io.Writer, s debug.Stats) {
	fmt.Fprintln(w, "Scene")
	fmt.Fprintf(w, "  quads:         %d\n", s.QuadCount)
	fmt.Fprintf(w, "  viewport:      %g x %g\n", s.ViewportSize[0], s.ViewportSize[1])
	fmt.Fprintf(w, "  scale factor:  %g\n", s.ScaleFactor)
}

func formatOverlays(w io.Writer, list []debug.Overlay) {
	if len(list) == 0 {
		fmt.Fprintln(w, "no overlays")
		return
	}
	for _, o := range list {
		fmt.Fprintf(w, "%4d  %g,%g %gx%g  rgba(%.2f %.2f %.2f %.2f)",
			o.ID, o.X, o.Y, o.W, o.H, o.Color.R, o.Color.G, o.Color.B, o.Color.A)
		if o.BorderWidth > 0 {
			fmt.Fprintf(w, "  border %g", o.BorderWidth)
		}
		if o.CornerRadius > 0 {
			fmt.Fprintf(w, "  radius %g", o.CornerRadius)
		}
		fmt.Fprintln(w)
	}
}
