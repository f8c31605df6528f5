// Package render draws the placement graph of a document.
//
// # Overview
//
// The graph has two kinds of nodes. Objects are drawn as rounded boxes and
// placements as ellipses. Edges connect each object to the placement it
// holds, each placement to its relative-to parent, and the relating object
// of every relation to its related object.
//
//	dot := render.ToDOT(doc, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [Render] dispatches on a [Format] and reports each run to the render hooks
// registered in [observability].
//
// # Formats
//
//   - [FormatDOT]: Graphviz source from [ToDOT]
//   - [FormatSVG]: rendered in-process by [github.com/goccy/go-graphviz]
//   - [FormatJSON]: objects and placements with world origins, from [RenderJSON]
//   - [FormatPDF], [FormatPNG]: the SVG passed through rsvg-convert (librsvg)
package render
