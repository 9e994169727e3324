// Package render turns bead graphs into images.
//
// The [nodelink] subpackage produces Graphviz DOT and SVG. [ToPDF] and
// [ToPNG] convert that SVG with the external rsvg-convert tool (librsvg).
//
//	dot := nodelink.ToDOT(items, nodelink.Options{Critical: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(svg, 2.0)
package render
