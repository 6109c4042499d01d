package render

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatJPG = "jpg"
	FormatPDF = "pdf"
	FormatDOT = "dot" // laid-out DOT with coordinates
)

// graphvizFormats maps output formats rendered directly by Graphviz.
var graphvizFormats = map[string]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatSVG: graphviz.SVG,
	FormatJPG: graphviz.JPG,
	FormatDOT: graphviz.XDOT,
}

// Formats returns all supported output formats, sorted.
func Formats() []string {
	out := []string{FormatPDF}
	for f := range graphvizFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ValidateFormat checks that format can be rendered.
func ValidateFormat(format string) error {
	if format == FormatPDF {
		return nil
	}
	if _, ok := graphvizFormats[format]; !ok {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// Render lays out DOT source with Graphviz and returns the drawing in the
// requested format. PDF output goes through SVG and [ToPDF].
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatPDF {
		svg, err := Render(ctx, dot, FormatSVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeDependencyMissing, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphvizFormats[format], &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render %s", format)
	}
	if buf.Len() == 0 {
		return nil, apperrors.New(apperrors.ErrCodeRenderFailed, "render %s: empty output", format)
	}
	return buf.Bytes(), nil
}
