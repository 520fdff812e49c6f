package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtower/pkg/buildinfo"
	"github.com/matzehuels/gridtower/pkg/config"
	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/palette"
	"github.com/matzehuels/gridtower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "gridtower"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridtower generates visual question-answering datasets of colored grids",
		Long:         `Gridtower draws random colored grids, packs them onto a fixed canvas without overlap, renders the canvas and asks questions about the grids. The result is a chat-style dataset for training and evaluating vision-language models.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// genFlags are the generation settings shared by every command. Flags the
// user set explicitly override values from the config file.
type genFlags struct {
	configPath string
	seed       uint64
	minGrids   int
	maxGrids   int
	width      int
	height     int
	noShrink   bool
	palette    string
	weighting  string
}

func (f *genFlags) register(cmd *cobra.Command) {
	d := pipeline.DefaultOptions()
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "random seed")
	fs.IntVar(&f.minGrids, "min-grids", d.MinGrids, "minimum grids per image")
	fs.IntVar(&f.maxGrids, "max-grids", d.MaxGrids, "maximum grids per image")
	fs.IntVar(&f.width, "width", d.Layout.CanvasWidth, "canvas width in pixels")
	fs.IntVar(&f.height, "height", d.Layout.CanvasHeight, "canvas height in pixels")
	fs.BoolVar(&f.noShrink, "no-shrink", false, "fail a batch instead of shrinking grids that do not fit")
	fs.StringVar(&f.palette, "palette", "default", "color palette: default, arc")
	fs.StringVar(&f.weighting, "size-weighting", "power", "grid size weighting: power, log, uniform")
}

// options resolves the pipeline options: defaults, then the config file, then
// explicitly set flags.
func (f *genFlags) options(cmd *cobra.Command, logger *log.Logger) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return opts, err
		}
		if err := file.Apply(&opts); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("min-grids") {
		opts.MinGrids = f.minGrids
	}
	if changed("max-grids") {
		opts.MaxGrids = f.maxGrids
	}
	if changed("width") {
		opts.Layout.CanvasWidth = f.width
	}
	if changed("height") {
		opts.Layout.CanvasHeight = f.height
	}
	if changed("no-shrink") {
		opts.Layout.ShrinkOnFailure = !f.noShrink
	}
	if changed("palette") {
		pal, err := palette.ByName(f.palette)
		if err != nil {
			return opts, err
		}
		opts.Grid.Palette = pal
	}
	if changed("size-weighting") {
		w, err := parseWeighting(f.weighting)
		if err != nil {
			return opts, err
		}
		opts.Grid.Weighting = w
	}

	opts.Logger = logger
	return opts, nil
}

func parseWeighting(s string) (grid.SizeWeighting, error) {
	switch s {
	case "power":
		return grid.InversePower(1), nil
	case "log":
		return grid.InverseLog(0), nil
	case "uniform":
		return grid.Uniform(), nil
	}
	return nil, errInvalidFlag("size-weighting", s, "power, log, uniform")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func errInvalidFlag(name, value, allowed string) error {
	return errors.New(errors.ErrCodeInvalidInput, "invalid --%s %q (must be one of: %s)", name, value, allowed)
}
