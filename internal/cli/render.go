package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/pipeline"
	"github.com/matzehuels/beadgraph/pkg/render/nodelink"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	in       inputOpts
	output   string // output path, "-" for stdout
	format   string
	critical bool
	hide     bool
	detailed bool
	rankDir  string
	reduce   bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG, rankDir: "LR"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the dependency graph as DOT, SVG, PNG or PDF",
		Long: `Render draws beads as a node-link diagram. With --critical the critical
path is highlighted and every other bead is labelled with its slack.

PNG and PDF output requires rsvg-convert on PATH.`,
		GroupID: groupTools,
		Args:    opts.in.inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.in.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension, \"-\" for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png or pdf")
	cmd.Flags().BoolVar(&opts.critical, "critical", false, "highlight the critical path and label slack")
	cmd.Flags().BoolVar(&opts.hide, "hide-closed", false, "omit closed beads")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show status, priority and duration in node labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", opts.rankDir, "graph direction: LR, TB, RL or BT")
	cmd.Flags().BoolVar(&opts.reduce, "reduce", false, "hide edges implied by a longer path (transitive reduction)")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	raw, label, err := c.load(ctx, &opts.in, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.in.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Refresh = opts.in.refresh

	prog := newProgress(logger)
	data, hit, err := renderWithSpinner(ctx, runner, raw, pipeline.RenderOptions{
		Format: opts.format,
		Nodelink: nodelink.Options{
			Critical:   opts.critical,
			HideClosed: opts.hide,
			Detailed:   opts.detailed,
			RankDir:    strings.ToUpper(opts.rankDir),
			Reduce:     opts.reduce,
		},
	})
	if err != nil {
		return err
	}
	prog.done("rendered "+label, "format", opts.format, "cached", hit)

	out := outputPath(opts.output, label, opts.format)
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	w := cmd.OutOrStdout()
	printSuccess(w, "Rendered %s", strings.ToUpper(opts.format))
	printFile(w, out)
	return nil
}

func renderWithSpinner(ctx context.Context, r *pipeline.Runner, raw []byte, opts pipeline.RenderOptions) ([]byte, bool, error) {
	if opts.Format == pipeline.FormatDOT {
		return r.Render(ctx, raw, opts)
	}
	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.Format+"...")
	spinner.Start()
	defer spinner.Stop()
	return r.Render(ctx, raw, opts)
}

// outputPath derives the output file from the input label when output is
// unset. Input read from stdin or MongoDB is written to stdout.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	if input == "stdin" || strings.HasPrefix(input, "mongo:") {
		return "-"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}
