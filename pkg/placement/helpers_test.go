package placement

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/document"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/units"
)

const eps = 1e-9

type fixture struct {
	t   *testing.T
	ctx context.Context
	doc *document.Document
	eng *Engine
}

func newFixture(t *testing.T, unit units.LengthUnit) *fixture {
	t.Helper()
	doc := document.New(unit)
	return &fixture{
		t:   t,
		ctx: context.Background(),
		doc: doc,
		eng: New(doc, Options{Logger: log.New(io.Discard)}),
	}
}

func (f *fixture) object(class model.Class, name string) model.ID {
	f.t.Helper()
	o, err := f.doc.CreateObject(class, name)
	if err != nil {
		f.t.Fatalf("CreateObject(%s) error = %v", class, err)
	}
	return o.ID
}

func (f *fixture) relate(kind model.RelationKind, relating, related model.ID) {
	f.t.Helper()
	if err := f.doc.Relate(kind, relating, related); err != nil {
		f.t.Fatalf("Relate(%s) error = %v", kind, err)
	}
}

// place sets the world translation of obj in raw units.
func (f *fixture) place(obj model.ID, x, y, z float64) *Result {
	f.t.Helper()
	return f.edit(Request{Object: obj, Matrix: mgl64.Translate3D(x, y, z)})
}

func (f *fixture) edit(req Request) *Result {
	f.t.Helper()
	res, err := f.eng.EditPlacement(f.ctx, req)
	if err != nil {
		f.t.Fatalf("EditPlacement(%v) error = %v", req.Object, err)
	}
	f.checkIntegrity()
	return res
}

func (f *fixture) checkIntegrity() {
	f.t.Helper()
	if err := f.doc.Validate(); err != nil {
		f.t.Fatalf("document invalid after edit: %v", err)
	}
}

func (f *fixture) obj(id model.ID) model.Object {
	f.t.Helper()
	o, ok := f.doc.Object(id)
	if !ok {
		f.t.Fatalf("object %v not found", id)
	}
	return o
}

func (f *fixture) placementOf(id model.ID) model.Placement {
	f.t.Helper()
	p, ok := f.doc.Placement(f.obj(id).Placement)
	if !ok {
		f.t.Fatalf("placement of %v not found", id)
	}
	return p
}

func (f *fixture) world(id model.ID) mgl64.Mat4 {
	return ObjectWorld(f.doc, id)
}

func (f *fixture) wantOrigin(id model.ID, x, y, z float64) {
	f.t.Helper()
	want := mgl64.Translate3D(x, y, z)
	if got := f.world(id); !geom.ApproxEqual(got, want, eps) {
		f.t.Errorf("world origin of %v = %s, want %s", id, geom.FormatVec3(geom.Origin(got)), geom.FormatVec3(mgl64.Vec3{x, y, z}))
	}
}

func (f *fixture) wantLocal(id model.ID, x, y, z float64) {
	f.t.Helper()
	got := f.placementOf(id).Local
	if !got.ApproxEqual(geom.At(x, y, z), eps) {
		f.t.Errorf("local of %v = %v, want origin %s", id, got, geom.FormatVec3(mgl64.Vec3{x, y, z}))
	}
}

func (f *fixture) resolvable(p model.ID) bool {
	_, ok := f.doc.Placement(p)
	return ok
}

func nearVec(a, b mgl64.Vec3) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}
