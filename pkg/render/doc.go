// Package render turns a [diagram.Diagram] into Graphviz source and hands it
// to Graphviz for layout and drawing.
//
// # Overview
//
// Layout and rasterisation are not done here. This package only:
//
//   - Emits deterministic DOT source with [ToDOT]
//   - Runs Graphviz in-process through [github.com/goccy/go-graphviz] with [Render]
//   - Converts SVG to PDF through rsvg-convert with [ToPDF]
//   - Emits a Mermaid flowchart with [ToMermaid] for docs and wikis
//   - Writes the result to disk with [WriteFile]
//
// # Usage
//
//	dot := render.ToDOT(d)
//	png, err := render.Render(ctx, dot, render.FormatPNG)
//	if err != nil {
//	    return err
//	}
//	err = render.WriteFile(d.OutputPath(), png)
//
// # Styling
//
// The DOT defaults mirror the common "diagrams as code" look: left-to-right
// ranks, orthogonal edges, Sans-Serif labels, grey edges and pale rounded
// cluster boxes. Attributes set in [diagram.Options] override the defaults.
// Each node category gets its own fill and border colour and, for clients and
// databases, its own shape.
//
// # Output Files
//
// [WriteFile] requires the target directory to exist. Data goes to a
// temporary file in that directory which is then renamed over the target, so
// a failed run never leaves a truncated image behind and a repeated run
// simply replaces the previous file.
//
// [diagram.Diagram]: github.com/matzehuels/archdiagram/pkg/diagram.Diagram
// [diagram.Options]: github.com/matzehuels/archdiagram/pkg/diagram.Options
package render
