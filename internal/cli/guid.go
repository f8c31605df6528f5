package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placegraph/pkg/guid"
)

// guidCommand creates the guid command for IFC GlobalId conversion.
func (c *CLI) guidCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guid",
		Short: "Generate and convert IFC GlobalIds",
	}

	cmd.AddCommand(c.guidNewCommand())
	cmd.AddCommand(c.guidCompressCommand())
	cmd.AddCommand(c.guidExpandCommand())

	return cmd
}

// guidNewCommand creates the "guid new" subcommand.
func (c *CLI) guidNewCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate random GlobalIds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			for range count {
				fmt.Fprintln(cmd.OutOrStdout(), guid.New())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of GlobalIds")
	return cmd
}

// guidCompressCommand creates the "guid compress" subcommand.
func (c *CLI) guidCompressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compress <uuid>...",
		Short: "Convert hex UUIDs to GlobalIds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				id, err := guid.Compress(a)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

// guidExpandCommand creates the "guid expand" subcommand.
func (c *CLI) guidExpandCommand() *cobra.Command {
	var split bool
	cmd := &cobra.Command{
		Use:   "expand <globalid>...",
		Short: "Convert GlobalIds to hex UUIDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				h, err := guid.Expand(a)
				if err != nil {
					return err
				}
				if split {
					h = guid.Split(h)
				}
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "print with dashes (8-4-4-4-12)")
	return cmd
}
