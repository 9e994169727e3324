// Package pkg holds the beadgraph libraries.
//
// # Overview
//
// beadgraph analyses "beads": work items linked by blocks/blocked_by
// edges. The pkg directory is organized by layer:
//
//  1. [bead] - the bead model and its JSON and TOML codecs
//  2. [dag] - the canonical graph snapshot and every algorithm on it
//  3. [engine] - the named operations and their JSON boundary
//  4. [pipeline] - cached analysis and rendering for the CLI and server
//  5. [source], [cache], [render], [server] - inputs, result stores,
//     drawing and HTTP
//
// # Architecture
//
// The typical data flow:
//
//	bead file / stdin / MongoDB
//	         ↓
//	    [source] package (load and normalize to a JSON array)
//	         ↓
//	    [pipeline] package (cache lookup, singleflight)
//	         ↓
//	    [engine] package (decode, validate, dispatch)
//	         ↓
//	    [dag] package (snapshot + topo, cycles, waves, critical path)
//	         ↓
//	    JSON result, DOT/SVG/PNG/PDF drawing
//
// # Quick Start
//
// Run an operation directly:
//
//	items, err := bead.Decode(data)
//	if err != nil {
//	    return err
//	}
//	res, err := dag.CriticalPath(items)
//	if errors.Is(err, dag.ErrGraphHasCycle) {
//	    // report the cycle
//	}
//	fmt.Println(res.Path, res.TotalDuration)
//
// Or through the JSON boundary used by the HTTP server:
//
//	out, err := engine.RunJSON(ctx, engine.OpExecutionWaves, data)
//
// Every engine error carries a machine-readable code from [errors]:
// INVALID_INPUT, CYCLE_DETECTED or SERIALIZATION.
//
// [bead]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/bead
// [dag]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/dag
// [engine]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/engine
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/pipeline
// [source]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/beadgraph/pkg/errors
package pkg
