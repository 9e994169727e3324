// Package nodelink renders a bead graph as a Graphviz node-link diagram.
//
// [ToDOT] emits one box per bead and one arrow per canonical edge
// (blocker to blocked). With [Options.Critical] set, beads on the
// critical path are filled and every other bead is annotated with its
// slack; if the graph is cyclic, beads in a cycle are outlined in red
// instead. Closed beads are greyed out, or dropped with
// [Options.HideClosed]. [Options.Reduce] draws the transitive reduction,
// keeping critical-path edges.
//
// [RenderSVG] lays out and renders DOT in-process with
// [github.com/goccy/go-graphviz], so no Graphviz installation is needed.
package nodelink
