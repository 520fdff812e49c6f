package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/pipeline"
)

// sampleCommand creates the sample command for previewing a single datum.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		flags  genFlags
		index  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Render one image and print its questions and answers",
		Long: `Render one image and print its questions and answers.

The image is identical to the one 'generate' produces at the same --seed and
--index, which makes sample a quick way to inspect a dataset entry. The output
format follows the file extension (.png or .svg).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Logger)
			if err != nil {
				return err
			}
			return c.runSample(cmd.Context(), opts, index, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&index, "index", "i", 0, "dataset index of the image")
	cmd.Flags().StringVarP(&output, "output", "o", "sample.png", "output image (.png or .svg)")

	return cmd
}

func (c *CLI) runSample(ctx context.Context, opts pipeline.Options, index int, output string) error {
	if err := errors.ValidatePath(output); err != nil {
		return err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	if format != pipeline.FormatPNG && format != pipeline.FormatSVG {
		return errors.New(errors.ErrCodeInvalidFormat, "output %s must end in .png or .svg", output)
	}
	opts.Formats = []string{format}

	runner, err := pipeline.NewRunner(opts)
	if err != nil {
		return err
	}
	d, err := runner.GenerateDatum(ctx, index)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, d.Artifacts[format], 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	printSuccess("Sample %d", index)
	printFile(output)
	printDatumStats(d.Stats, len(d.Grids()))
	printNewline()
	printQA(d.Parts)
	return nil
}
