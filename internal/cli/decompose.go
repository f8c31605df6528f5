package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/units"
)

// decomposeCommand creates the decompose command.
func (c *CLI) decomposeCommand() *cobra.Command {
	var unit string
	var si bool

	cmd := &cobra.Command{
		Use:   "decompose <matrix>",
		Short: "Validate a 4x4 matrix and split it into origin and axes",
		Long: `Validate a rigid 4x4 transform given as 16 (or 12) row-major values and
print its origin and axes. With --si the translation is read in the given
unit and also shown in metres.`,
		Example: `  placegraph decompose "1 0 0 2500  0 1 0 0  0 0 1 3000  0 0 0 1" --unit mm`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := c.Config.LengthUnit()
			if unit != "" {
				parsed, err := units.Parse(unit)
				if err != nil {
					return err
				}
				u = parsed
			}
			return c.runDecompose(cmd.OutOrStdout(), strings.Join(args, " "), u, si)
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "length unit of the translation (default from config)")
	cmd.Flags().BoolVar(&si, "si", true, "convert the translation from the unit to metres")

	return cmd
}

func (c *CLI) runDecompose(w io.Writer, text string, unit units.LengthUnit, si bool) error {
	m, err := geom.ParseMatrix(text)
	if err != nil {
		return err
	}
	adapter := geom.NewAdapter(unit.Scale(), c.Config.Tolerance)
	normalized, err := adapter.Normalize(m, si)
	if err != nil {
		return err
	}

	t := geom.Decompose(m)
	printSuccess(w, "valid rigid transform")
	printKeyValue(w, "origin", geom.FormatVec3(t.Origin)+" "+unit.String())
	printKeyValue(w, "x axis", geom.FormatVec3(t.Primary))
	printKeyValue(w, "y axis", geom.FormatVec3(t.Secondary))
	printKeyValue(w, "z axis", geom.FormatVec3(t.Third()))
	if si {
		printKeyValue(w, "origin (m)", geom.FormatVec3(geom.Origin(normalized)))
	}
	return nil
}
