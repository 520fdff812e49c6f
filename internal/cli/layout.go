package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/pipeline"
	"github.com/matzehuels/gridtower/pkg/render"
)

// layoutCommand creates the layout command for inspecting a single packing.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  genFlags
		index  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Pack one batch of grids and write the layout as JSON",
		Long: `Pack one batch of grids and write the layout as JSON.

The JSON lists every grid with its position, tile size, cell colors and, for
grids the packer had to shrink, the originally requested size. Use "-o -" to
write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Logger)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, index, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&index, "index", "i", 0, "dataset index of the batch")
	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file, or - for stdout")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, index int, output string) error {
	opts.Formats = []string{pipeline.FormatJSON}
	runner, err := pipeline.NewRunner(opts)
	if err != nil {
		return err
	}

	p, stats, err := runner.Pack(ctx, index)
	if err != nil {
		return err
	}
	data, err := render.RenderLayoutJSON(p, runner.Options().Layout)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}
	if err := errors.ValidatePath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	printSuccess("Layout complete")
	printFile(output)
	printDatumStats(stats, len(p.Grids))
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s sample --index %d --seed %d", appName, index, runner.Options().Seed))
	return nil
}
