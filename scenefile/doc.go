// Package scenefile reads and writes scenes as YAML documents.
//
// A document names the frame size, the clear color, and the quads in paint
// order:
//
//	width: 800
//	height: 600
//	clear: black
//	quads:
//	  - bounds: [100, 100, 200, 200]
//	    background: red
//	    border: {color: "#ffffff", widths: 4}
//	    radii: [12, 12, 0, 0]
//	    clip: [0, 0, 200, 600]
//
// Colors are SVG color names, hex strings (#rgb, #rrggbb, #rrggbbaa) or
// lists of three or four floats in [0, 1]. Border widths and radii are a
// single number or a list of four (top, right, bottom, left for widths;
// top-left, top-right, bottom-right, bottom-left for radii).
package scenefile
