package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/dag"
)

// Options configures DOT generation.
type Options struct {
	// Critical highlights the critical path and annotates slack.
	Critical bool
	// HideClosed omits closed beads and their edges.
	HideClosed bool
	// Detailed adds status, priority and duration to labels.
	Detailed bool
	// RankDir is the Graphviz rank direction. Empty means "LR".
	RankDir string
	// Reduce drops edges implied by a longer path. Ignored for cyclic
	// graphs.
	Reduce bool
}

const (
	colorCritical = "#f4a261"
	colorCycle    = "#e63946"
	colorClosed   = "#d9d9d9"
)

// ToDOT converts items to Graphviz DOT.
func ToDOT(items []bead.Item, opts Options) string {
	s := dag.Build(items)
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}

	var (
		cp      dag.CriticalPathResult
		haveCP  bool
		inCycle map[string]bool
	)
	if opts.Critical {
		var err error
		cp, err = s.CriticalPath()
		haveCP = err == nil
		if !haveCP {
			inCycle = make(map[string]bool)
			for _, id := range s.CycleNodes() {
				inCycle[id] = true
			}
		}
	}

	var redundant map[dag.Edge]bool
	if opts.Reduce {
		redundant, _ = s.RedundantEdges()
	}

	hidden := make([]bool, len(items))
	var buf bytes.Buffer
	buf.WriteString("digraph beads {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n\n")

	for i, it := range items {
		if first, _ := s.Index(it.ID); first != i {
			hidden[i] = true
			continue
		}
		if opts.HideClosed && it.IsClosed() {
			hidden[i] = true
			continue
		}

		label := it.ID
		if it.Title != "" && it.Title != it.ID {
			label += "\n" + it.Title
		}
		if opts.Detailed {
			label += fmt.Sprintf("\n%s · p%d · d%d", it.Status, it.Priority, it.EffectiveDuration())
		}
		if haveCP && !cp.IsCritical(it.ID) {
			label += fmt.Sprintf("\nslack %d", cp.Slack[it.ID])
		}

		attrs := []string{fmt.Sprintf("label=%q", label)}
		switch {
		case haveCP && cp.IsCritical(it.ID):
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorCritical), "penwidth=2")
		case inCycle[it.ID]:
			attrs = append(attrs, fmt.Sprintf("color=%q", colorCycle), "penwidth=2")
		case it.IsClosed():
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorClosed), "fontcolor=\"#777777\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", it.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	onPath := make(map[[2]string]bool)
	if haveCP {
		for k := 1; k < len(cp.Path); k++ {
			onPath[[2]string{cp.Path[k-1], cp.Path[k]}] = true
		}
	}
	for u := 0; u < s.Len(); u++ {
		if hidden[u] {
			continue
		}
		for _, v := range s.Out(u) {
			if hidden[v] {
				continue
			}
			from, to := s.ID(u), s.ID(int(v))
			if redundant[dag.Edge{From: int32(u), To: v}] && !onPath[[2]string{from, to}] {
				continue
			}
			if onPath[[2]string{from, to}] {
				fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=2];\n", from, to, colorCritical)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out and renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// that scales to its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
