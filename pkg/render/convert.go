package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/placegraph/pkg/errors"
)

// rsvgTool converts the graphviz SVG into the binary formats.
const rsvgTool = "rsvg-convert"

// rsvgArgs are the rsvg-convert flags per binary format. PNG output is drawn
// at twice the SVG size so small graphs stay legible.
var rsvgArgs = map[Format][]string{
	FormatPDF: {"--format", "pdf"},
	FormatPNG: {"--format", "png", "--zoom", "2"},
}

// rasterize turns an SVG rendering into format. It fails with UNSUPPORTED
// when rsvg-convert (librsvg) is not on PATH.
func rasterize(ctx context.Context, svg []byte, format Format) ([]byte, error) {
	args, ok := rsvgArgs[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a binary graph format", format)
	}
	if _, err := exec.LookPath(rsvgTool); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s output needs %s from librsvg", format, rsvgTool)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, rsvgTool, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", rsvgTool, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
