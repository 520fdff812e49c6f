package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/layout"
	"github.com/matzehuels/gridtower/pkg/observability"
	"github.com/matzehuels/gridtower/pkg/render"
)

// Render generates output artifacts in the configured formats.
func (r *Runner) Render(ctx context.Context, p *layout.Placement) (map[string][]byte, error) {
	hooks := observability.Render()
	cfg := r.opts.Layout
	artifacts := make(map[string][]byte, len(r.opts.Formats))

	for _, format := range r.opts.Formats {
		start := time.Now()
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = render.RenderPNG(p.Grids, cfg.CanvasWidth, cfg.CanvasHeight, r.opts.Grid.Palette, r.opts.RenderOptions...)
		case FormatSVG:
			data, err = render.RenderSVG(p.Grids, cfg.CanvasWidth, cfg.CanvasHeight, r.opts.Grid.Palette, r.opts.RenderOptions...)
		case FormatJSON:
			data, err = render.RenderLayoutJSON(p, cfg)
		default:
			err = ValidateFormat(format)
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
