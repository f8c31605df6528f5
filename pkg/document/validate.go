package document

import (
	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
)

// Validate checks the structural integrity of the document.
//
// It verifies three constraints:
//
//  1. Every object placement and relative-to link resolves (DANGLING_REFERENCE)
//  2. Relative-to chains are acyclic (CYCLE)
//  3. Every placement is reachable from some object's placement chain (ORPHAN)
//
// Cycle detection runs in O(N) time using depth-first search.
func (d *Document) Validate() error {
	if err := d.validateReferences(); err != nil {
		return err
	}
	if err := d.detectCycles(); err != nil {
		return err
	}
	if orphans := d.Orphans(); len(orphans) > 0 {
		return errors.New(errors.ErrCodeOrphan, "unreachable placements %v", orphans)
	}
	return nil
}

func (d *Document) validateReferences() error {
	for _, o := range d.Objects() {
		if o.Placement.IsZero() {
			continue
		}
		if _, ok := d.placements[o.Placement]; !ok {
			return errors.New(errors.ErrCodeDangling, "%s references missing placement %s", o, o.Placement)
		}
	}
	for _, p := range d.Placements() {
		if p.RelTo.IsZero() {
			continue
		}
		if _, ok := d.placements[p.RelTo]; !ok {
			return errors.New(errors.ErrCodeDangling, "placement %s is relative to missing %s", p.ID, p.RelTo)
		}
	}
	for _, r := range d.Relations() {
		_, okA := d.objects[r.Relating]
		_, okB := d.objects[r.Related]
		if !okA || !okB {
			return errors.New(errors.ErrCodeDangling, "relation %s has a missing endpoint", r)
		}
	}
	return nil
}

func (d *Document) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[model.ID]int, len(d.placements))
	var cycleAt model.ID

	var dfs func(id model.ID)
	dfs = func(id model.ID) {
		color[id] = gray
		if parent := d.placements[id].RelTo; !parent.IsZero() {
			switch color[parent] {
			case white:
				dfs(parent)
			case gray:
				cycleAt = parent
				return
			}
		}
		color[id] = black
	}

	for _, p := range d.Placements() {
		if color[p.ID] == white {
			dfs(p.ID)
			if !cycleAt.IsZero() {
				return errors.New(errors.ErrCodeCycle, "relative-to cycle through placement %s", cycleAt)
			}
		}
	}
	return nil
}

// Orphans returns the placements that are not the placement, or a
// relative-to ancestor of the placement, of any object.
func (d *Document) Orphans() []model.ID {
	live := make(idSet, len(d.placements))
	for _, o := range d.objects {
		for cur := o.Placement; !cur.IsZero(); cur = d.placements[cur].RelTo {
			if _, seen := live[cur]; seen {
				break
			}
			live[cur] = struct{}{}
		}
	}
	orphans := make(idSet)
	for id := range d.placements {
		if _, ok := live[id]; !ok {
			orphans[id] = struct{}{}
		}
	}
	return orphans.sorted()
}
