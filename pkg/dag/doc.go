// Package dag provides the dependency-graph analyses behind beadgraph:
// topological ordering, cycle detection, readiness, execution waves and
// critical path scheduling over a list of beads.
//
// # Overview
//
// Every analysis starts from a [Snapshot], a dense integer-indexed view
// of the beads built by [Build]. Node i is the i-th bead of the input;
// ids, effective durations, out-edges and in-edges live in parallel
// slices indexed by i. There are no node objects or pointers between
// nodes, and a snapshot is never modified after it is built.
//
// # Edge Reconciliation
//
// Beads carry two redundant views of each edge: u.Blocks names the beads
// u must finish before, and v.BlockedBy names the beads v waits on.
// [Build] unions both views into one canonical out-edge list per node.
// References to ids that are not in the input are dropped silently, and
// an edge named by both views (or named twice) is kept once.
//
// Two operations intentionally look past the canonical graph:
//
//   - [Ready] reads BlockedBy directly and treats unknown blockers as
//     unsatisfied, so a bead waiting on something outside the input stays
//     blocked.
//   - [Adjacency] echoes each bead's Blocks list verbatim.
//
// # Cycles
//
// [TopoSort] never fails; a cyclic input yields a result with HasCycle set,
// an empty order and the ids that Kahn's algorithm could not release.
// [HasCycle] reports whether any directed cycle exists (self-loops
// included) and [FindCycleNodes] reports members of strongly connected
// components with more than one node. A self-loop is therefore a cycle
// for the first two but is not listed by the third.
//
// [ExecutionWaves], [ComputeLevels] and [CriticalPath] require a DAG and
// return [ErrGraphHasCycle] otherwise.
//
// # Critical Path
//
// [CriticalPath] runs the classic forward and backward longest-path
// passes. Earliest start is the latest earliest finish among
// predecessors; latest finish is the smallest latest start among
// successors (or the total duration for sinks). Slack is latest start
// minus earliest start, and a bead is critical when its slack is zero.
// Sums are carried in 64 bits and saturated to uint32 only on output.
//
// # Concurrency
//
// All functions are pure. A [Snapshot] is immutable and safe for
// concurrent readers; package-level functions build their own snapshot
// per call and share no state.
package dag
