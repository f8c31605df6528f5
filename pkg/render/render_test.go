package render

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/placegraph/pkg/document"
	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/observability"
	"github.com/matzehuels/placegraph/pkg/units"
)

// sampleDoc builds a storey at z=3 holding a wall at x=2, plus an orphan
// placement.
func sampleDoc(t *testing.T) (*document.Document, model.Object, model.Object) {
	t.Helper()
	doc := document.New(units.Metre)
	storey, err := doc.CreateObject(model.ClassBuildingStorey, "Level 1")
	if err != nil {
		t.Fatalf("CreateObject() error: %v", err)
	}
	wall, err := doc.CreateObject(model.ClassWall, "W1")
	if err != nil {
		t.Fatalf("CreateObject() error: %v", err)
	}
	if err := doc.Relate(model.RelContainment, storey.ID, wall.ID); err != nil {
		t.Fatalf("Relate() error: %v", err)
	}
	sp, _ := doc.CreatePlacement(geom.At(0, 0, 3), model.None)
	wp, _ := doc.CreatePlacement(geom.At(2, 0, 0), sp.ID)
	if err := doc.SetObjectPlacement(storey.ID, sp.ID); err != nil {
		t.Fatalf("SetObjectPlacement() error: %v", err)
	}
	if err := doc.SetObjectPlacement(wall.ID, wp.ID); err != nil {
		t.Fatalf("SetObjectPlacement() error: %v", err)
	}
	if _, err := doc.CreatePlacement(geom.Identity(), model.None); err != nil {
		t.Fatalf("CreatePlacement() error: %v", err)
	}
	storey, _ = doc.Object(storey.ID)
	wall, _ = doc.Object(wall.ID)
	return doc, storey, wall
}

func TestToDOT(t *testing.T) {
	doc, storey, wall := sampleDoc(t)
	dot := ToDOT(doc, Options{})

	for _, want := range []string{
		"digraph placements {",
		`"` + objectNode(storey.ID) + `" -> "` + placementNode(storey.Placement) + `"`,
		`"` + placementNode(wall.Placement) + `" -> "` + placementNode(storey.Placement) + `" [label="rel"]`,
		`"` + objectNode(wall.ID) + `" -> "` + objectNode(storey.ID) + `" [label="contained_in"`,
		"fillcolor=mistyrose",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, wall.GlobalID) {
		t.Errorf("ToDOT() without Detailed should not include GlobalIds")
	}
	if got := strings.Count(dot, "mistyrose"); got != 1 {
		t.Errorf("orphan placements = %d, want 1", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	doc, _, wall := sampleDoc(t)
	dot := ToDOT(doc, Options{Detailed: true})
	if !strings.Contains(dot, wall.GlobalID) {
		t.Errorf("ToDOT(Detailed) missing GlobalId %s", wall.GlobalID)
	}
	if !strings.Contains(dot, `at (2, 0, 0)`) {
		t.Errorf("ToDOT(Detailed) missing local origin\n%s", dot)
	}
}

func TestNodeNames(t *testing.T) {
	if got := objectNode(12); got != "o12" {
		t.Errorf("objectNode(12) = %q, want o12", got)
	}
	if got := placementNode(3); got != "p3" {
		t.Errorf("placementNode(3) = %q, want p3", got)
	}
}

func TestRenderJSON(t *testing.T) {
	doc, storey, wall := sampleDoc(t)
	data, err := RenderJSON(doc, Options{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Objects) != 2 {
		t.Fatalf("Objects count = %d, want 2", len(out.Objects))
	}
	if len(out.Placements) != 3 {
		t.Errorf("Placements count = %d, want 3", len(out.Placements))
	}
	if len(out.Relations) != 1 || out.Relations[0].Kind != "contained_in" {
		t.Errorf("Relations = %+v, want one contained_in", out.Relations)
	}

	for _, o := range out.Objects {
		if o.World == nil {
			t.Errorf("object %d has no world origin", o.ID)
			continue
		}
		var want [3]float64
		switch model.ID(o.ID) {
		case storey.ID:
			want = [3]float64{0, 0, 3}
		case wall.ID:
			want = [3]float64{2, 0, 3}
		}
		if *o.World != want {
			t.Errorf("object %d world = %v, want %v", o.ID, *o.World, want)
		}
		if o.GlobalID != "" {
			t.Errorf("object %d GlobalID = %q without Detailed", o.ID, o.GlobalID)
		}
	}

	orphans := 0
	for _, p := range out.Placements {
		if p.Orphan {
			orphans++
		}
		if p.Primary != nil {
			t.Errorf("placement %d has axes without Detailed", p.ID)
		}
	}
	if orphans != 1 {
		t.Errorf("orphans = %d, want 1", orphans)
	}
}

func TestRenderJSONDetailed(t *testing.T) {
	doc, _, _ := sampleDoc(t)
	data, err := RenderJSON(doc, Options{Detailed: true})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	for _, p := range out.Placements {
		if p.Primary == nil || *p.Primary != [3]float64{1, 0, 0} {
			t.Errorf("placement %d Primary = %v, want [1 0 0]", p.ID, p.Primary)
		}
	}
	for _, o := range out.Objects {
		if len(o.GlobalID) != 22 {
			t.Errorf("object %d GlobalID = %q, want 22 chars", o.ID, o.GlobalID)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites root tag",
			in:   `<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatValid(t *testing.T) {
	for _, f := range Formats() {
		if !f.Valid() {
			t.Errorf("Format(%q).Valid() = false, want true", f)
		}
	}
	if Format("gif").Valid() {
		t.Error("Format(gif).Valid() = true, want false")
	}
}

type recordingRenderHooks struct {
	observability.NoopRenderHooks
	started   []string
	completed []string
	sizes     []int
	errs      []error
}

func (h *recordingRenderHooks) OnRenderStart(_ context.Context, format string) {
	h.started = append(h.started, format)
}

func (h *recordingRenderHooks) OnRenderComplete(_ context.Context, format string, size int, _ time.Duration, err error) {
	h.completed = append(h.completed, format)
	h.sizes = append(h.sizes, size)
	h.errs = append(h.errs, err)
}

func TestRenderHooks(t *testing.T) {
	hooks := &recordingRenderHooks{}
	observability.SetRenderHooks(hooks)
	t.Cleanup(observability.Reset)

	doc, _, _ := sampleDoc(t)
	ctx := context.Background()

	out, err := Render(ctx, doc, FormatDOT, Options{})
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("digraph")) {
		t.Errorf("Render(dot) = %q, want DOT source", out[:min(len(out), 20)])
	}

	_, err = Render(ctx, doc, Format("gif"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(gif) error = %v, want INVALID_INPUT", err)
	}

	if len(hooks.started) != 2 || len(hooks.completed) != 2 {
		t.Fatalf("hook calls = %d/%d, want 2/2", len(hooks.started), len(hooks.completed))
	}
	if hooks.sizes[0] != len(out) || hooks.errs[0] != nil {
		t.Errorf("first completion = (%d, %v), want (%d, nil)", hooks.sizes[0], hooks.errs[0], len(out))
	}
	if hooks.errs[1] == nil {
		t.Error("second completion error = nil, want error")
	}
}

func TestRenderSVG(t *testing.T) {
	doc, _, _ := sampleDoc(t)
	svg, err := RenderSVG(context.Background(), ToDOT(doc, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("RenderSVG() root tag not normalized")
	}
}

func TestRasterize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)

	if _, err := rasterize(context.Background(), svg, FormatSVG); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("rasterize(svg) error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}

	t.Setenv("PATH", t.TempDir())
	for _, format := range []Format{FormatPDF, FormatPNG} {
		if _, err := rasterize(context.Background(), svg, format); !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("rasterize(%s) without %s error = %v, want %v", format, rsvgTool, err, errors.ErrCodeUnsupported)
		}
	}
}
