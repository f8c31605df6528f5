package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/matzehuels/placegraph/pkg/document"
	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/placement"
)

// demoOpts holds the command-line flags for the demo command.
type demoOpts struct {
	object     string  // name or #id of the object to edit
	at         string  // new world origin "x,y,z"
	rotate     float64 // rotation about Z in degrees
	matrix     string  // full matrix, overrides at and rotate
	si         bool    // values are in project units
	propagate  bool    // shift optional dependents
	relativeTo string  // explicit parent object
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	opts := demoOpts{object: "Level 1", at: "10,5,0.5", si: true}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Edit a placement in the sample building model",
		Long: `Build the sample building model, move one object and show every placement
write the edit implies.

The sample model has a site, one building with two storeys, a space, a wall
with a window in an opening, a slab and a duct with a port. Translations are
read in the configured project unit unless --si=false is given, in which case
they are taken as metres.`,
		Example: `  placegraph demo --object "Level 1" --at 10,5,0.5 --propagate
  placegraph demo --object W1 --at 11,5,0 --rotate 45
  placegraph demo --object S1 --at 10,5,3 --relative-to W1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("propagate") {
				opts.propagate = c.Config.Propagate
			}
			return c.runDemo(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.object, "object", opts.object, "object to edit (name or #id)")
	cmd.Flags().StringVar(&opts.at, "at", opts.at, "new world origin x,y,z")
	cmd.Flags().Float64Var(&opts.rotate, "rotate", 0, "rotation about the Z axis in degrees")
	cmd.Flags().StringVar(&opts.matrix, "matrix", "", "full 4x4 world matrix, 16 or 12 values row-major (overrides --at and --rotate)")
	cmd.Flags().BoolVar(&opts.si, "si", opts.si, "read translations in the project unit")
	cmd.Flags().BoolVar(&opts.propagate, "propagate", false, "move contained, aggregated and nested dependents along (default from config)")
	cmd.Flags().StringVar(&opts.relativeTo, "relative-to", "", "place relative to this object instead of the resolved parent")

	return cmd
}

func (c *CLI) runDemo(ctx context.Context, w io.Writer, opts demoOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := buildSample(ctx, c.Config.LengthUnit(), logger)
	if err != nil {
		return fmt.Errorf("build sample: %w", err)
	}
	obj, err := lookupObject(doc, opts.object)
	if err != nil {
		return err
	}
	m, err := demoMatrix(opts)
	if err != nil {
		return err
	}

	req := placement.NewRequest(obj.ID, m)
	req.IsSI = opts.si
	req.Propagate = opts.propagate
	if opts.relativeTo != "" {
		parent, err := lookupObject(doc, opts.relativeTo)
		if err != nil {
			return err
		}
		req.RelativeTo = parent.ID
	}

	eng := c.engineFor(doc)
	printTitle(w, "Before")
	printObjects(w, doc, eng)

	res, err := eng.EditPlacement(ctx, req)
	if err != nil {
		return err
	}
	if res == nil {
		printWarning(w, "%s cannot hold a placement; nothing written", obj)
		return nil
	}
	prog.done("Edited " + obj.Name)

	printTitle(w, "Writes")
	printWrites(w, doc, res)
	printTitle(w, "After")
	printObjects(w, doc, eng)

	if err := doc.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "document integrity")
	}
	printSuccess(w, "%d objects, %d placements, no orphans", doc.ObjectCount(), doc.PlacementCount())
	if collected := res.Collected(); len(collected) > 0 {
		printDetail(w, "collected %s", joinIDs(collected))
	}
	return nil
}

// demoMatrix builds the requested world matrix.
func demoMatrix(opts demoOpts) (mgl64.Mat4, error) {
	if opts.matrix != "" {
		return geom.ParseMatrix(opts.matrix)
	}
	origin, err := geom.ParseVec3(opts.at)
	if err != nil {
		return mgl64.Mat4{}, fmt.Errorf("--at: %w", err)
	}
	rot := mgl64.HomogRotate3DZ(mgl64.DegToRad(opts.rotate))
	return mgl64.Translate3D(origin[0], origin[1], origin[2]).Mul4(rot), nil
}

// printObjects prints every placeable object with its placement and world
// origin in project units.
func printObjects(w io.Writer, doc *document.Document, eng *placement.Engine) {
	var rows [][]string
	for _, o := range doc.Objects() {
		if !o.Class.Placeable() {
			continue
		}
		rel := model.None
		if p, ok := doc.Placement(o.Placement); ok {
			rel = p.RelTo
		}
		parent := eng.Resolver().ResolveParent(o)
		parentName := "-"
		if po, ok := doc.Object(parent.Object); ok {
			parentName = po.Name + " (" + parent.Kind.String() + ")"
		}
		rows = append(rows, []string{
			o.ID.String(),
			o.Name,
			string(o.Class),
			parentName,
			o.Placement.String(),
			rel.String(),
			geom.FormatVec3(geom.Origin(eng.WorldOf(o.ID, true))),
		})
	}
	printTable(w, []string{"ID", "Name", "Class", "Parent", "Placement", "Rel", "World origin"}, rows)
}

// printWrites prints one row per placement write.
func printWrites(w io.Writer, doc *document.Document, res *placement.Result) {
	var rows [][]string
	for _, wr := range res.Writes {
		name := wr.Object.String()
		if o, ok := doc.Object(wr.Object); ok {
			name = o.Name
		}
		action := "created"
		if wr.Reused {
			action = "reused"
		}
		rows = append(rows, []string{
			name,
			wr.Role.String(),
			action,
			wr.Previous.String() + " " + iconArrow + " " + wr.Placement.ID.String(),
			joinIDs(wr.Reanchored),
			joinIDs(wr.Collected),
		})
	}
	printTable(w, []string{"Object", "Role", "Action", "Placement", "Re-anchored", "Collected"}, rows)
}

func joinIDs(ids []model.ID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
