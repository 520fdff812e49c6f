package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtower/pkg/dataset"
	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/observability"
	"github.com/matzehuels/gridtower/pkg/pipeline"
)

// generateCommand creates the generate command for producing a dataset.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags       genFlags
		count       int
		output      string
		workers     int
		formats     string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset of grid images with questions and answers",
		Long: `Generate a dataset of grid images with questions and answers.

Every image shows between --min-grids and --max-grids randomly colored grids
packed onto the canvas without overlap. Each image gets one composed question
covering several facts about its grids, together with the joined answer.

The output directory receives images/<id>.png and a dataset.json index with
one chat-style record per image. Images are numbered by seed, so the same seed
reproduces the same dataset regardless of --workers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Logger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(formats)
			}
			return c.runGenerate(cmd.Context(), opts, count, output, metricsFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of images to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "dataset", "output directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel workers (default: number of CPUs)")
	cmd.Flags().StringVarP(&formats, "format", "f", "png", "output formats: png, svg, json (comma-separated)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")

	return cmd
}

// runGenerate drives the runner into a dataset writer.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, count int, output, metricsFile string) error {
	if count < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "count must be at least 1, got %d", count)
	}

	runner, err := pipeline.NewRunner(opts)
	if err != nil {
		return err
	}
	w, err := dataset.NewWriter(output)
	if err != nil {
		return err
	}

	var hooks *observability.PrometheusHooks
	if metricsFile != "" {
		hooks = observability.NewPrometheusHooks(prometheus.NewRegistry())
		observability.SetGenerationHooks(hooks)
		observability.SetRenderHooks(hooks)
		defer observability.Reset()
	}

	o := runner.Options()
	c.Logger.Debug("generating",
		"count", count,
		"seed", o.Seed,
		"workers", o.Workers,
		"canvas", fmt.Sprintf("%dx%d", o.Layout.CanvasWidth, o.Layout.CanvasHeight),
		"grids", fmt.Sprintf("%d-%d", o.MinGrids, o.MaxGrids))

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating 0/%d images...", count))
	spinner.Start()

	var done atomic.Int64
	stats, err := runner.Generate(ctx, count, func(d *pipeline.Datum) error {
		if err := w.Add(d); err != nil {
			return err
		}
		spinner.SetMessage("Generating %d/%d images...", done.Add(1), count)
		return nil
	})
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if err := w.Close(); err != nil {
		return err
	}
	if hooks != nil {
		if err := hooks.WriteTextfile(metricsFile); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write metrics %s", metricsFile)
		}
	}
	prog.done(fmt.Sprintf("Generated %d images", stats.Generated))

	printSuccess("Dataset complete")
	printFile(filepath.Join(output, dataset.IndexFile))
	if metricsFile != "" {
		printFile(metricsFile)
	}
	printRunStats(stats)
	if stats.Skipped > 0 {
		printWarning("%d images were skipped because their grids could not be packed; rerun with -v for details", stats.Skipped)
	}
	return nil
}
