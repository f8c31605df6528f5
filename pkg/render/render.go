package render

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/observability"
)

// Format is an output format for [Render].
type Format string

const (
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatDOT, FormatSVG, FormatJSON, FormatPDF, FormatPNG}
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool { return slices.Contains(Formats(), f) }

// Render draws g in the given format.
func Render(ctx context.Context, g Graph, format Format, opts Options) (out []byte, err error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, string(format))
	defer func() {
		observability.Render().OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	}()

	switch format {
	case FormatDOT:
		return []byte(ToDOT(g, opts)), nil
	case FormatJSON:
		return RenderJSON(g, opts)
	case FormatSVG, FormatPDF, FormatPNG:
		svg, err := RenderSVG(ctx, ToDOT(g, opts))
		if err != nil {
			return nil, err
		}
		if format == FormatSVG {
			return svg, nil
		}
		return rasterize(ctx, svg, format)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported render format %q", format)
	}
}
