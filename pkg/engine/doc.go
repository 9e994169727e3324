// Package engine is the host-facing entry point to the bead graph analyses.
//
// Every analysis in [github.com/matzehuels/beadgraph/pkg/dag] is registered
// here under a stable operation name:
//
//	topo_sort          TopoResult
//	has_cycle          bool
//	find_cycle_nodes   []string
//	adjacency          map[string][]string
//	ready              []string
//	execution_waves    [][]string
//	compute_levels     LevelsResult
//	critical_path      CriticalPathResult
//
// [Run] takes decoded beads and returns the typed result. [RunJSON] is the
// string-in, string-out boundary used by the CLI and HTTP server: it
// decodes a JSON bead array, runs the operation and encodes the result.
//
// Failures carry a [errors.Code]: INVALID_INPUT for malformed input,
// CYCLE_DETECTED when a DAG-only operation meets a cycle, SERIALIZATION
// when the result cannot be encoded and UNSUPPORTED for unknown operation
// names. Cycle errors also match [dag.ErrGraphHasCycle] with errors.Is.
//
// Each call is independent and holds no state between calls, so the
// engine is safe for concurrent use. Runs are reported to
// [observability.Engine].
package engine
