package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placegraph/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file, stdout when empty
	format   string // dot, svg, json, pdf or png
	detailed bool   // include GlobalIds and local transforms
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the sample placement graph",
		Long: `Render the placement graph of the sample building model: objects, their
placements, relative-to links and relations.`,
		Example: `  placegraph graph -f svg -o placements.svg
  placegraph graph -f json --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = string(c.Config.RenderFormat())
			}
			if !cmd.Flags().Changed("detailed") {
				opts.detailed = c.Config.Render.Detailed
			}
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, json, pdf, png (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include GlobalIds and local transforms")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range render.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, w io.Writer, opts graphOpts) error {
	format := render.Format(opts.format)
	if !format.Valid() {
		return fmt.Errorf("invalid format: %s (must be dot, svg, json, pdf or png)", opts.format)
	}

	logger := loggerFromContext(ctx)
	doc, err := buildSample(ctx, c.Config.LengthUnit(), logger)
	if err != nil {
		return fmt.Errorf("build sample: %w", err)
	}

	prog := newProgress(logger)
	data, err := render.Render(ctx, doc, format, render.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d objects as %s", doc.ObjectCount(), format))

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(w, "Wrote %s graph", format)
	printFile(w, opts.output)
	return nil
}
