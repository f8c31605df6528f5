package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/document"
	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/placement"
	"github.com/matzehuels/placegraph/pkg/units"
)

// sampleObject describes one object of the sample model. World transforms
// are in metres.
type sampleObject struct {
	name   string
	class  model.Class
	kind   model.RelationKind
	parent string
	world  mgl64.Mat4
}

// sampleObjects lists the sample model with parents before children.
var sampleObjects = []sampleObject{
	{name: "Demo Project", class: model.ClassProject},
	{name: "Site", class: model.ClassSite, kind: model.RelAggregation, parent: "Demo Project", world: mgl64.Ident4()},
	{name: "Block A", class: model.ClassBuilding, kind: model.RelAggregation, parent: "Site", world: mgl64.Translate3D(10, 5, 0)},
	{name: "Level 1", class: model.ClassBuildingStorey, kind: model.RelAggregation, parent: "Block A", world: mgl64.Translate3D(10, 5, 0)},
	{name: "Level 2", class: model.ClassBuildingStorey, kind: model.RelAggregation, parent: "Block A", world: mgl64.Translate3D(10, 5, 3)},
	{name: "Kitchen", class: model.ClassSpace, kind: model.RelAggregation, parent: "Level 1", world: mgl64.Translate3D(12, 7, 0)},
	{name: "W1", class: model.ClassWall, kind: model.RelContainment, parent: "Level 1", world: mgl64.Translate3D(11, 5, 0).Mul4(mgl64.HomogRotate3DZ(math.Pi / 2))},
	{name: "O1", class: model.ClassOpeningElement, kind: model.RelVoids, parent: "W1", world: mgl64.Translate3D(11, 6, 0.9).Mul4(mgl64.HomogRotate3DZ(math.Pi / 2))},
	{name: "Win1", class: model.ClassWindow, kind: model.RelFills, parent: "O1", world: mgl64.Translate3D(11, 6, 0.9).Mul4(mgl64.HomogRotate3DZ(math.Pi / 2))},
	{name: "S1", class: model.ClassSlab, kind: model.RelContainment, parent: "Level 2", world: mgl64.Translate3D(10, 5, 3)},
	{name: "Duct", class: model.ClassFlowSegment, kind: model.RelContainment, parent: "Level 2", world: mgl64.Translate3D(12, 5, 5.5)},
	{name: "Duct Inlet", class: model.ClassDistributionPort, kind: model.RelNesting, parent: "Duct", world: mgl64.Translate3D(12, 5, 5.5)},
}

// buildSample creates the sample model in a document of the given unit.
func buildSample(ctx context.Context, unit units.LengthUnit, logger *log.Logger) (*document.Document, error) {
	doc := document.New(unit)
	ids := make(map[string]model.ID, len(sampleObjects))
	for _, s := range sampleObjects {
		obj, err := doc.CreateObject(s.class, s.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", s.name, err)
		}
		ids[s.name] = obj.ID
		if s.parent == "" {
			continue
		}
		if err := doc.Relate(s.kind, ids[s.parent], obj.ID); err != nil {
			return nil, fmt.Errorf("relate %s to %s: %w", s.name, s.parent, err)
		}
	}

	eng := placement.New(doc, placement.Options{Logger: logger})
	for _, s := range sampleObjects {
		if !s.class.Placeable() {
			continue
		}
		req := placement.NewRequest(ids[s.name], s.world)
		req.IsSI = false // sample worlds are used as given
		if _, err := eng.EditPlacement(ctx, req); err != nil {
			return nil, fmt.Errorf("place %s: %w", s.name, err)
		}
	}
	return doc, nil
}

// lookupObject finds an object by name or by "#id".
func lookupObject(doc *document.Document, ref string) (model.Object, error) {
	if o, ok := doc.ObjectByName(ref); ok {
		return o, nil
	}
	var id int64
	if _, err := fmt.Sscanf(ref, "#%d", &id); err == nil {
		if o, ok := doc.Object(model.ID(id)); ok {
			return o, nil
		}
	}
	return model.Object{}, errors.New(errors.ErrCodeNotFound, "no object named %q", ref)
}
