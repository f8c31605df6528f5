package placement

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/observability"
	"github.com/matzehuels/placegraph/pkg/units"
)

func TestEditPlacementIdempotent(t *testing.T) {
	f := newFixture(t, units.Metre)
	wall := f.object(model.ClassWall, "W")
	m := mgl64.Translate3D(1.5, -2, 3.25)

	first := f.edit(Request{Object: wall, Matrix: m})
	second := f.edit(Request{Object: wall, Matrix: m})

	if first.Placement.Local != second.Placement.Local {
		t.Errorf("Local = %v then %v, want equal", first.Placement.Local, second.Placement.Local)
	}
	if got := f.world(wall); got != m {
		t.Errorf("world = %v, want exactly %v", got, m)
	}
	if !second.Writes[0].Reused {
		t.Error("second edit did not reuse the exclusive placement")
	}
}

func TestEditPlacementUnsupportedObject(t *testing.T) {
	f := newFixture(t, units.Metre)
	project := f.object(model.ClassProject, "P")
	wall := f.object(model.ClassWall, "W")
	f.place(wall, 1, 1, 1)
	before := f.doc.Placements()

	res, err := f.eng.EditPlacement(f.ctx, NewRequest(project, mgl64.Translate3D(1, 2, 3)))
	if err != nil || res != nil {
		t.Fatalf("EditPlacement(project) = %v, %v, want nil, nil", res, err)
	}
	if f.obj(project).HasPlacement() {
		t.Error("project gained a placement")
	}
	if after := f.doc.Placements(); !slices.Equal(after, before) {
		t.Errorf("placements changed: %v -> %v", before, after)
	}
}

func TestEditPlacementNotFound(t *testing.T) {
	f := newFixture(t, units.Metre)
	_, err := f.eng.EditPlacement(f.ctx, NewRequest(12345, mgl64.Ident4()))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("EditPlacement() error = %v, want %v", err, errors.ErrCodeNotFound)
	}
}

func TestEditPlacementInvalidTransform(t *testing.T) {
	f := newFixture(t, units.Metre)
	wall := f.object(model.ClassWall, "W")
	f.place(wall, 1, 2, 3)
	before := f.doc.Placements()

	tests := []struct {
		name string
		m    mgl64.Mat4
	}{
		{"scale", mgl64.Scale3D(2, 1, 1)},
		{"reflection", mgl64.Scale3D(1, -1, 1)},
		{"projective row", mgl64.Mat4{1, 0, 0, 0.5, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.eng.EditPlacement(f.ctx, Request{Object: wall, Matrix: tt.m})
			if !errors.Is(err, errors.ErrCodeInvalidTransform) {
				t.Errorf("EditPlacement() error = %v, want %v", err, errors.ErrCodeInvalidTransform)
			}
			if after := f.doc.Placements(); !slices.Equal(after, before) {
				t.Errorf("placements changed after rejected edit")
			}
		})
	}
}

func TestEditPlacementUnitConversion(t *testing.T) {
	f := newFixture(t, units.Millimetre)
	a := f.object(model.ClassWall, "A")
	b := f.object(model.ClassWall, "B")

	if req := NewRequest(a, mgl64.Ident4()); !req.IsSI {
		t.Error("NewRequest().IsSI = false, want true")
	}
	f.edit(NewRequest(a, mgl64.Translate3D(1000, 2000, 3000)))
	f.edit(Request{Object: b, Matrix: mgl64.Translate3D(1, 2, 3)})

	if la, lb := f.placementOf(a).Local, f.placementOf(b).Local; !la.ApproxEqual(lb, 1e-12) {
		t.Errorf("stored local = %v and %v, want equal", la, lb)
	}
	if got := f.eng.WorldOf(a, true); !geom.ApproxEqual(got, mgl64.Translate3D(1000, 2000, 3000), 1e-9) {
		t.Errorf("WorldOf(si) = %v, want translation (1000, 2000, 3000)", got)
	}
}

func TestEditPlacementReplacesOldPlacement(t *testing.T) {
	f := newFixture(t, units.Metre)
	storey := f.object(model.ClassBuildingStorey, "L1")
	wall := f.object(model.ClassWall, "W")
	f.place(storey, 0, 0, 10)
	old := f.place(wall, 1, 2, 3).Placement.ID

	f.relate(model.RelContainment, storey, wall)
	res := f.place(wall, 1, 2, 13)

	if f.resolvable(old) {
		t.Errorf("old placement %v still resolvable", old)
	}
	if !f.resolvable(res.Placement.ID) {
		t.Errorf("new placement %v not resolvable", res.Placement.ID)
	}
	if res.Placement.RelTo != f.obj(storey).Placement {
		t.Errorf("RelTo = %v, want storey placement %v", res.Placement.RelTo, f.obj(storey).Placement)
	}
	if !slices.Equal(res.Collected(), []model.ID{old}) {
		t.Errorf("Collected() = %v, want [%v]", res.Collected(), old)
	}
	f.wantLocal(wall, 1, 2, 3)
}

func TestEditPlacementSharedPlacement(t *testing.T) {
	f := newFixture(t, units.Metre)
	a := f.object(model.ClassWall, "A")
	b := f.object(model.ClassWall, "B")
	shared := f.place(a, 1, 2, 3).Placement.ID
	if err := f.doc.SetObjectPlacement(b, shared); err != nil {
		t.Fatal(err)
	}

	res := f.place(a, 4, 5, 6)

	if res.Placement.ID == shared || f.obj(b).Placement != shared {
		t.Errorf("A = %v, B = %v, want A on a fresh placement and B on %v", res.Placement.ID, f.obj(b).Placement, shared)
	}
	f.wantOrigin(a, 4, 5, 6)
	f.wantOrigin(b, 1, 2, 3)
}

func TestEditPlacementSharedWithParent(t *testing.T) {
	f := newFixture(t, units.Metre)
	building := f.object(model.ClassBuilding, "B")
	wall := f.object(model.ClassWall, "W")
	f.relate(model.RelContainment, building, wall)
	shared := f.place(building, 1, 2, 3).Placement.ID
	if err := f.doc.SetObjectPlacement(wall, shared); err != nil {
		t.Fatal(err)
	}

	res := f.place(wall, 4, 5, 6)

	if res.Placement.ID == shared {
		t.Error("wall still shares the building placement")
	}
	if res.Placement.RelTo != shared {
		t.Errorf("RelTo = %v, want building placement %v", res.Placement.RelTo, shared)
	}
	f.wantOrigin(wall, 4, 5, 6)
	f.wantOrigin(building, 1, 2, 3)
}

func TestEditPlacementSharedWithChild(t *testing.T) {
	f := newFixture(t, units.Metre)
	building := f.object(model.ClassBuilding, "B")
	wall := f.object(model.ClassWall, "W")
	slab := f.object(model.ClassSlab, "S")
	f.relate(model.RelContainment, building, wall)
	f.relate(model.RelContainment, building, slab)
	shared := f.place(building, 1, 1, 1).Placement.ID
	f.place(slab, 2, 2, 2)
	if err := f.doc.SetObjectPlacement(wall, shared); err != nil {
		t.Fatal(err)
	}

	res := f.edit(Request{Object: building, Matrix: mgl64.Translate3D(5, 5, 5)})

	if got := f.placementOf(slab).RelTo; got != res.Placement.ID {
		t.Errorf("slab RelTo = %v, want new building placement %v", got, res.Placement.ID)
	}
	if f.obj(wall).Placement != shared {
		t.Errorf("wall placement = %v, want %v", f.obj(wall).Placement, shared)
	}
	f.wantOrigin(building, 5, 5, 5)
	f.wantOrigin(slab, 6, 6, 6)
	f.wantOrigin(wall, 1, 1, 1)

	f.place(wall, 9, 9, 9)

	if got := f.placementOf(slab).RelTo; got != res.Placement.ID {
		t.Errorf("after moving wall, slab RelTo = %v, want %v", got, res.Placement.ID)
	}
	f.wantOrigin(wall, 9, 9, 9)
	f.wantOrigin(slab, 6, 6, 6)
	f.wantOrigin(building, 5, 5, 5)
}

func TestEditPlacementRelativeToResolvedParent(t *testing.T) {
	tests := []struct {
		name   string
		parent model.Class
		child  model.Class
		kind   model.RelationKind
	}{
		{"spatial container", model.ClassBuilding, model.ClassWall, model.RelContainment},
		{"aggregate", model.ClassElementAssembly, model.ClassBeam, model.RelAggregation},
		{"nest parent", model.ClassFlowSegment, model.ClassDistributionPort, model.RelNesting},
		{"voided element", model.ClassWall, model.ClassOpeningElement, model.RelVoids},
		{"opening", model.ClassOpeningElement, model.ClassDoor, model.RelFills},
		{"projected element", model.ClassSlab, model.ClassProjectionElement, model.RelProjects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, units.Metre)
			parent := f.object(tt.parent, "parent")
			child := f.object(tt.child, "child")
			f.relate(tt.kind, parent, child)

			f.place(parent, 1, 1, 1)
			f.place(child, 1, 2, 3)

			if got := f.placementOf(child).RelTo; got != f.obj(parent).Placement {
				t.Errorf("RelTo = %v, want %v", got, f.obj(parent).Placement)
			}
			f.wantLocal(child, 0, 1, 2)
			f.wantOrigin(child, 1, 2, 3)
		})
	}
}

func TestEditPlacementOptionalDependents(t *testing.T) {
	setup := func(t *testing.T) (*fixture, model.ID, model.ID, model.ID) {
		f := newFixture(t, units.Metre)
		building := f.object(model.ClassBuilding, "B")
		wall := f.object(model.ClassWall, "W")
		f.relate(model.RelContainment, building, wall)
		f.place(building, 1, 1, 1)
		wp := f.place(wall, 1, 2, 3).Placement.ID
		return f, building, wall, wp
	}

	t.Run("propagate shifts by delta", func(t *testing.T) {
		f, building, wall, _ := setup(t)
		res := f.edit(Request{Object: building, Matrix: mgl64.Translate3D(1, 2, 3), Propagate: true})

		f.wantOrigin(building, 1, 2, 3)
		f.wantOrigin(wall, 1, 3, 5)
		f.wantLocal(wall, 0, 1, 2)
		if got := f.placementOf(wall).RelTo; got != f.obj(building).Placement {
			t.Errorf("wall RelTo = %v, want %v", got, f.obj(building).Placement)
		}
		if len(res.Writes) != 2 || res.Writes[1].Role != RoleOptional {
			t.Errorf("Writes = %v, want edited then optional", res.Writes)
		}
	})

	t.Run("no propagation leaves local untouched", func(t *testing.T) {
		f, building, wall, wp := setup(t)
		res := f.edit(Request{Object: building, Matrix: mgl64.Translate3D(1, 2, 3)})

		if f.obj(wall).Placement != wp {
			t.Errorf("wall placement = %v, want unchanged %v", f.obj(wall).Placement, wp)
		}
		f.wantLocal(wall, 0, 1, 2)
		if len(res.Writes) != 1 {
			t.Errorf("Writes = %v, want only the edited object", res.Writes)
		}
		if got := res.Writes[0].Reanchored; !slices.Equal(got, []model.ID{wp}) {
			t.Errorf("Reanchored = %v, want [%v]", got, wp)
		}
	})

	t.Run("propagate rebases absolute dependents", func(t *testing.T) {
		f := newFixture(t, units.Metre)
		building := f.object(model.ClassBuilding, "B")
		wall := f.object(model.ClassWall, "W")
		f.place(building, 1, 1, 1)
		f.place(wall, 1, 2, 3)
		f.relate(model.RelContainment, building, wall)

		f.edit(Request{Object: building, Matrix: mgl64.Translate3D(1, 2, 3), Propagate: true})

		f.wantOrigin(wall, 1, 3, 5)
		if got := f.placementOf(wall).RelTo; got != f.obj(building).Placement {
			t.Errorf("wall RelTo = %v, want %v", got, f.obj(building).Placement)
		}
	})

	t.Run("absolute dependents stay put without propagation", func(t *testing.T) {
		f := newFixture(t, units.Metre)
		building := f.object(model.ClassBuilding, "B")
		wall := f.object(model.ClassWall, "W")
		f.place(building, 1, 1, 1)
		wp := f.place(wall, 1, 2, 3).Placement.ID
		f.relate(model.RelContainment, building, wall)

		f.edit(Request{Object: building, Matrix: mgl64.Translate3D(1, 2, 3)})

		f.wantOrigin(wall, 1, 2, 3)
		if f.obj(wall).Placement != wp {
			t.Error("wall placement replaced")
		}
	})
}

func TestEditPlacementPropagatesRecursively(t *testing.T) {
	f := newFixture(t, units.Metre)
	building := f.object(model.ClassBuilding, "B")
	storey := f.object(model.ClassBuildingStorey, "L1")
	wall := f.object(model.ClassWall, "W")
	f.relate(model.RelAggregation, building, storey)
	f.relate(model.RelContainment, storey, wall)
	f.place(building, 0, 0, 0)
	f.place(storey, 0, 0, 3)
	f.place(wall, 2, 0, 3)

	rot := mgl64.Translate3D(10, 0, 0).Mul4(mgl64.HomogRotate3DZ(1.0))
	res := f.edit(Request{Object: building, Matrix: rot, Propagate: true})

	if len(res.Writes) != 3 {
		t.Fatalf("len(Writes) = %d, want 3", len(res.Writes))
	}
	for i, want := range []model.ID{building, storey, wall} {
		if res.Writes[i].Object != want {
			t.Errorf("Writes[%d].Object = %v, want %v", i, res.Writes[i].Object, want)
		}
	}
	wantWall := rot.Mul4(mgl64.Translate3D(2, 0, 3))
	if got := f.world(wall); !geom.ApproxEqual(got, wantWall, eps) {
		t.Errorf("wall world = %v, want %v", got, wantWall)
	}
	f.wantLocal(storey, 0, 0, 3)
	f.wantLocal(wall, 2, 0, 0)
}

func TestEditPlacementPortsAlwaysKeepWorld(t *testing.T) {
	for _, propagate := range []bool{false, true} {
		f := newFixture(t, units.Metre)
		seg := f.object(model.ClassFlowSegment, "S")
		port := f.object(model.ClassDistributionPort, "P")
		f.relate(model.RelNesting, seg, port)
		old := f.place(seg, 1, 1, 1).Placement.ID
		f.place(port, 1, 2, 3)

		res := f.edit(Request{Object: seg, Matrix: mgl64.Translate3D(1, 2, 3), Propagate: propagate})

		f.wantOrigin(port, 1, 2, 3)
		f.wantLocal(port, 0, 0, 0)
		if got := f.placementOf(port).RelTo; got != f.obj(seg).Placement {
			t.Errorf("propagate=%v: port RelTo = %v, want %v", propagate, got, f.obj(seg).Placement)
		}
		if f.resolvable(old) {
			t.Errorf("propagate=%v: old segment placement still resolvable", propagate)
		}
		if res.Writes[1].Role != RoleAlways {
			t.Errorf("propagate=%v: port role = %v, want %v", propagate, res.Writes[1].Role, RoleAlways)
		}
	}
}

func TestEditPlacementFeaturesKeepWorldButNotSubchildren(t *testing.T) {
	f := newFixture(t, units.Metre)
	wall := f.object(model.ClassWall, "W")
	opening := f.object(model.ClassOpeningElement, "O")
	door := f.object(model.ClassDoor, "D")
	f.relate(model.RelVoids, wall, opening)
	f.relate(model.RelFills, opening, door)

	old := f.place(wall, 1, 1, 1).Placement.ID
	f.place(opening, 1, 2, 3)
	f.place(door, 7, 8, 9)

	f.edit(NewRequest(wall, mgl64.Translate3D(1, 2, 3)))

	f.wantOrigin(wall, 1, 2, 3)
	f.wantOrigin(opening, 1, 2, 3)
	f.wantOrigin(door, 7, 8, 9)
	f.wantLocal(door, 6, 6, 6)
	if got := f.placementOf(opening).RelTo; got != f.obj(wall).Placement {
		t.Errorf("opening RelTo = %v, want %v", got, f.obj(wall).Placement)
	}
	if got := f.placementOf(door).RelTo; got != f.obj(opening).Placement {
		t.Errorf("door RelTo = %v, want %v", got, f.obj(opening).Placement)
	}
	if f.resolvable(old) {
		t.Error("old wall placement still resolvable")
	}
}

func TestEditPlacementDoesNotTouchSubchildren(t *testing.T) {
	f := newFixture(t, units.Metre)
	building := f.object(model.ClassBuilding, "B")
	storey := f.object(model.ClassBuildingStorey, "L1")
	wall := f.object(model.ClassWall, "W")
	f.relate(model.RelAggregation, building, storey)
	f.relate(model.RelContainment, storey, wall)

	bp := f.place(building, 1, 1, 1).Placement.ID
	sp := f.place(storey, 1, 1, 1).Placement.ID
	wp := f.place(wall, 1, 1, 1).Placement.ID
	wallLocal := f.placementOf(wall).Local

	f.place(building, 1, 2, 3)

	if f.resolvable(bp) {
		t.Error("old building placement still resolvable")
	}
	if f.obj(storey).Placement != sp {
		t.Error("storey placement replaced without propagation")
	}
	if f.obj(wall).Placement != wp || f.placementOf(wall).Local != wallLocal {
		t.Error("wall placement touched")
	}
	if got := f.placementOf(wall).RelTo; got != sp {
		t.Errorf("wall RelTo = %v, want %v", got, sp)
	}
}

func TestEditPlacementRelativeToOverride(t *testing.T) {
	f := newFixture(t, units.Metre)
	storey := f.object(model.ClassBuildingStorey, "L1")
	column := f.object(model.ClassColumn, "C")
	beam := f.object(model.ClassBeam, "B")
	f.relate(model.RelContainment, storey, beam)
	f.place(storey, 0, 0, 3)
	f.place(column, 5, 0, 0)

	res := f.edit(Request{Object: beam, Matrix: mgl64.Translate3D(5, 0, 4), RelativeTo: column})

	if res.Placement.RelTo != f.obj(column).Placement {
		t.Errorf("RelTo = %v, want column placement %v", res.Placement.RelTo, f.obj(column).Placement)
	}
	f.wantLocal(beam, 0, 0, 4)
	f.wantOrigin(beam, 5, 0, 4)
}

func TestEditPlacementKeepsManualRelativeTo(t *testing.T) {
	f := newFixture(t, units.Metre)
	column := f.object(model.ClassColumn, "C")
	beam := f.object(model.ClassBeam, "B")
	cp := f.place(column, 5, 0, 0).Placement.ID
	f.edit(Request{Object: beam, Matrix: mgl64.Translate3D(5, 0, 4), RelativeTo: column})

	res := f.place(beam, 6, 0, 4)

	if res.Placement.RelTo != cp {
		t.Errorf("RelTo = %v, want manual parent %v", res.Placement.RelTo, cp)
	}
	if !res.Writes[0].Reused {
		t.Error("exclusive placement with unchanged parent was not reused")
	}
	f.wantLocal(beam, 1, 0, 4)
}

func TestEditPlacementCycles(t *testing.T) {
	t.Run("relation cycle", func(t *testing.T) {
		f := newFixture(t, units.Metre)
		a := f.object(model.ClassElementAssembly, "A")
		b := f.object(model.ClassElementAssembly, "B")
		f.place(a, 1, 0, 0)
		f.relate(model.RelAggregation, a, b)
		f.relate(model.RelAggregation, b, a)
		before := f.doc.Placements()

		_, err := f.eng.EditPlacement(f.ctx, Request{Object: a, Matrix: mgl64.Translate3D(2, 0, 0)})
		if !errors.Is(err, errors.ErrCodeCycle) {
			t.Fatalf("EditPlacement() error = %v, want %v", err, errors.ErrCodeCycle)
		}
		if !slices.Equal(f.doc.Placements(), before) {
			t.Error("placements changed after rejected edit")
		}
	})

	t.Run("override onto descendant", func(t *testing.T) {
		f := newFixture(t, units.Metre)
		storey := f.object(model.ClassBuildingStorey, "L1")
		wall := f.object(model.ClassWall, "W")
		f.relate(model.RelContainment, storey, wall)
		f.place(storey, 0, 0, 0)
		f.place(wall, 1, 0, 0)
		before := f.doc.Placements()

		_, err := f.eng.EditPlacement(f.ctx, Request{Object: storey, Matrix: mgl64.Ident4(), RelativeTo: wall})
		if !errors.Is(err, errors.ErrCodeCycle) {
			t.Fatalf("EditPlacement() error = %v, want %v", err, errors.ErrCodeCycle)
		}
		if !slices.Equal(f.doc.Placements(), before) {
			t.Error("placements changed after rejected edit")
		}
	})

	t.Run("override onto self", func(t *testing.T) {
		f := newFixture(t, units.Metre)
		wall := f.object(model.ClassWall, "W")
		_, err := f.eng.EditPlacement(f.ctx, Request{Object: wall, Matrix: mgl64.Ident4(), RelativeTo: wall})
		if !errors.Is(err, errors.ErrCodeCycle) {
			t.Errorf("EditPlacement() error = %v, want %v", err, errors.ErrCodeCycle)
		}
	})

	t.Run("placement chain through object", func(t *testing.T) {
		f := newFixture(t, units.Metre)
		column := f.object(model.ClassColumn, "C")
		beam := f.object(model.ClassBeam, "B")
		f.place(beam, 1, 0, 0)
		f.edit(Request{Object: column, Matrix: mgl64.Translate3D(1, 0, 5), RelativeTo: beam})
		f.place(beam, 2, 0, 0)

		_, err := f.eng.EditPlacement(f.ctx, Request{Object: beam, Matrix: mgl64.Ident4(), RelativeTo: column})
		if !errors.Is(err, errors.ErrCodeCycle) {
			t.Errorf("EditPlacement() error = %v, want %v", err, errors.ErrCodeCycle)
		}
		f.checkIntegrity()
	})
}

func TestEditPlacementNoOrphans(t *testing.T) {
	f := newFixture(t, units.Millimetre)
	site := f.object(model.ClassSite, "Site")
	building := f.object(model.ClassBuilding, "B")
	storey := f.object(model.ClassBuildingStorey, "L1")
	wall := f.object(model.ClassWall, "W")
	opening := f.object(model.ClassOpeningElement, "O")
	door := f.object(model.ClassDoor, "D")
	seg := f.object(model.ClassFlowSegment, "S")
	port := f.object(model.ClassDistributionPort, "P")
	f.relate(model.RelAggregation, site, building)
	f.relate(model.RelAggregation, building, storey)
	f.relate(model.RelContainment, storey, wall)
	f.relate(model.RelContainment, storey, seg)
	f.relate(model.RelVoids, wall, opening)
	f.relate(model.RelFills, opening, door)
	f.relate(model.RelNesting, seg, port)

	objects := []model.ID{site, building, storey, wall, opening, door, seg, port}
	for i := 0; i < 40; i++ {
		obj := objects[(i*5)%len(objects)]
		x := float64(i%7) * 250
		m := mgl64.Translate3D(x, float64(i)*100, 0).Mul4(mgl64.HomogRotate3DZ(float64(i%4) * 0.5))
		res := f.edit(Request{Object: obj, Matrix: m, IsSI: i%2 == 0, Propagate: i%3 == 0})
		if res == nil {
			t.Fatalf("edit %d of %v returned nil", i, obj)
		}
		if orphans := f.doc.Orphans(); len(orphans) != 0 {
			t.Fatalf("edit %d left orphans %v", i, orphans)
		}
	}
}

type recordingEditHooks struct {
	observability.NoopEditHooks
	started, completed int
	lastWrites         int
}

func (h *recordingEditHooks) OnEditStart(context.Context, int64) { h.started++ }

func (h *recordingEditHooks) OnEditComplete(_ context.Context, _ int64, writes int, _ time.Duration, _ error) {
	h.completed++
	h.lastWrites = writes
}

func TestEditPlacementHooks(t *testing.T) {
	edit := &recordingEditHooks{}
	graph := &countingGraphHooks{}
	observability.SetEditHooks(edit)
	observability.SetGraphHooks(graph)
	defer observability.Reset()

	f := newFixture(t, units.Metre)
	building := f.object(model.ClassBuilding, "B")
	wall := f.object(model.ClassWall, "W")
	f.relate(model.RelContainment, building, wall)
	f.place(building, 0, 0, 0)
	f.place(wall, 1, 0, 0)
	f.place(building, 0, 0, 1)

	if edit.started != 3 || edit.completed != 3 {
		t.Errorf("edit hooks = %d/%d, want 3/3", edit.started, edit.completed)
	}
	if edit.lastWrites != 1 {
		t.Errorf("last writes = %d, want 1", edit.lastWrites)
	}
	if graph.written != 3 || graph.reanchored != 1 || len(graph.collected) != 1 {
		t.Errorf("graph hooks = %+v, want 3 writes, 1 re-anchor, 1 collection", graph)
	}
}
