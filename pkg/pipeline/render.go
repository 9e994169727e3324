package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/cache"
	"github.com/matzehuels/beadgraph/pkg/render"
	"github.com/matzehuels/beadgraph/pkg/render/nodelink"
)

// RenderOptions selects what [Runner.Render] produces.
type RenderOptions struct {
	Format   string
	Nodelink nodelink.Options
}

// Render draws the raw JSON bead array as DOT, SVG, PNG or PDF, with
// caching. The input is validated like any analysis input.
func (r *Runner) Render(ctx context.Context, raw []byte, opts RenderOptions) ([]byte, bool, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}
	items, err := bead.Decode(raw)
	if err != nil {
		return nil, false, err
	}

	key := r.Keyer.RenderKey(cache.Hash(raw), cache.RenderKeyOpts{
		Format:     opts.Format,
		Critical:   opts.Nodelink.Critical,
		ShowClosed: !opts.Nodelink.HideClosed,
		RankDir:    opts.Nodelink.RankDir,
		Reduce:     opts.Nodelink.Reduce,
		Detailed:   opts.Nodelink.Detailed,
	})
	if !r.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			return data, true, nil
		}
	}

	data, err := renderItems(ctx, items, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "format", opts.Format, "err", err)
	}
	return data, false, nil
}

func renderItems(ctx context.Context, items []bead.Item, opts RenderOptions) ([]byte, error) {
	dot := nodelink.ToDOT(items, opts.Nodelink)
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	switch opts.Format {
	case FormatPNG:
		return render.ToPNG(svg, 2.0)
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return svg, nil
}
