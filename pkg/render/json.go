package render

import (
	"encoding/json"

	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/placement"
)

type jsonOutput struct {
	Objects    []jsonObject    `json:"objects"`
	Placements []jsonPlacement `json:"placements"`
	Relations  []jsonRelation  `json:"relations,omitempty"`
}

type jsonObject struct {
	ID        int64       `json:"id"`
	GlobalID  string      `json:"global_id,omitempty"`
	Class     string      `json:"class"`
	Name      string      `json:"name,omitempty"`
	Placement int64       `json:"placement,omitempty"`
	World     *[3]float64 `json:"world,omitempty"`
}

type jsonPlacement struct {
	ID        int64       `json:"id"`
	RelTo     int64       `json:"rel_to,omitempty"`
	Origin    [3]float64  `json:"origin"`
	Primary   *[3]float64 `json:"primary,omitempty"`
	Secondary *[3]float64 `json:"secondary,omitempty"`
	Orphan    bool        `json:"orphan,omitempty"`
}

type jsonRelation struct {
	Kind     string `json:"kind"`
	Relating int64  `json:"relating"`
	Related  int64  `json:"related"`
}

// RenderJSON exports the placement graph as indented JSON. Object world
// origins are in metres.
func RenderJSON(g Graph, opts Options) ([]byte, error) {
	out := jsonOutput{
		Objects:    []jsonObject{},
		Placements: []jsonPlacement{},
	}
	for _, o := range g.Objects() {
		jo := jsonObject{
			ID:        int64(o.ID),
			Class:     string(o.Class),
			Name:      o.Name,
			Placement: int64(o.Placement),
		}
		if opts.Detailed {
			jo.GlobalID = o.GlobalID
		}
		if o.HasPlacement() {
			w := [3]float64(geom.Origin(placement.World(g, o.Placement)))
			jo.World = &w
		}
		out.Objects = append(out.Objects, jo)
	}
	for _, p := range g.Placements() {
		jp := jsonPlacement{
			ID:     int64(p.ID),
			RelTo:  int64(p.RelTo),
			Origin: [3]float64(p.Local.Origin),
			Orphan: len(g.ReferencesTo(p.ID)) == 0,
		}
		if opts.Detailed {
			full := geom.Decompose(geom.Compose(p.Local))
			primary, secondary := [3]float64(full.Primary), [3]float64(full.Secondary)
			jp.Primary, jp.Secondary = &primary, &secondary
		}
		out.Placements = append(out.Placements, jp)
	}
	for _, r := range g.Relations() {
		out.Relations = append(out.Relations, jsonRelation{
			Kind:     r.Kind.String(),
			Relating: int64(r.Relating),
			Related:  int64(r.Related),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
