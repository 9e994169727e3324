package engine

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"slices"
	"time"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/dag"
	"github.com/matzehuels/beadgraph/pkg/errors"
	"github.com/matzehuels/beadgraph/pkg/observability"
)

// Operation names an analysis.
type Operation string

const (
	OpTopoSort       Operation = "topo_sort"
	OpHasCycle       Operation = "has_cycle"
	OpFindCycleNodes Operation = "find_cycle_nodes"
	OpAdjacency      Operation = "adjacency"
	OpReady          Operation = "ready"
	OpExecutionWaves Operation = "execution_waves"
	OpComputeLevels  Operation = "compute_levels"
	OpCriticalPath   Operation = "critical_path"
)

type spec struct {
	summary string
	acyclic bool // fails with CYCLE_DETECTED on cyclic input
	run     func([]bead.Item) (any, error)
}

var registry = map[Operation]spec{
	OpTopoSort: {
		summary: "Order beads so every bead follows its blockers",
		run:     func(items []bead.Item) (any, error) { return dag.TopoSort(items), nil },
	},
	OpHasCycle: {
		summary: "Report whether the dependency graph has a cycle",
		run:     func(items []bead.Item) (any, error) { return dag.HasCycle(items), nil },
	},
	OpFindCycleNodes: {
		summary: "List beads that are part of a dependency cycle",
		run:     func(items []bead.Item) (any, error) { return dag.FindCycleNodes(items), nil },
	},
	OpAdjacency: {
		summary: "Map each bead to the beads it declares it blocks",
		run:     func(items []bead.Item) (any, error) { return dag.Adjacency(items), nil },
	},
	OpReady: {
		summary: "List open beads whose blockers are all closed",
		run:     func(items []bead.Item) (any, error) { return dag.Ready(items), nil },
	},
	OpExecutionWaves: {
		summary: "Group beads into waves that can run in parallel",
		acyclic: true,
		run:     func(items []bead.Item) (any, error) { return dag.ExecutionWaves(items) },
	},
	OpComputeLevels: {
		summary: "Execution waves plus the widest wave size",
		acyclic: true,
		run:     func(items []bead.Item) (any, error) { return dag.ComputeLevels(items) },
	},
	OpCriticalPath: {
		summary: "Longest-duration chain, total duration and per-bead slack",
		acyclic: true,
		run:     func(items []bead.Item) (any, error) { return dag.CriticalPath(items) },
	},
}

// Info describes a registered operation.
type Info struct {
	Name    Operation `json:"name"`
	Summary string    `json:"summary"`
	Acyclic bool      `json:"requires_acyclic"`
}

// Operations lists every registered operation, sorted by name.
func Operations() []Info {
	out := make([]Info, 0, len(registry))
	for op, s := range registry {
		out = append(out, Info{Name: op, Summary: s.summary, Acyclic: s.acyclic})
	}
	slices.SortFunc(out, func(a, b Info) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// Parse resolves an operation name.
func Parse(name string) (Operation, error) {
	op := Operation(name)
	if _, ok := registry[op]; !ok {
		return "", errors.New(errors.ErrCodeUnsupported, "unknown operation %q", name)
	}
	return op, nil
}

// Run executes op over items and returns its typed result.
//
// Run does not validate items; use [bead.Validate] or [RunJSON] for
// untrusted input.
func Run(ctx context.Context, op Operation, items []bead.Item) (any, error) {
	s, ok := registry[op]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown operation %q", op)
	}

	hooks := observability.Engine()
	hooks.OnOperationStart(ctx, string(op), len(items))
	start := time.Now()

	res, err := s.run(items)
	if stderrors.Is(err, dag.ErrGraphHasCycle) {
		err = errors.Wrap(errors.ErrCodeCycle, err, "%s", op)
	}

	hooks.OnOperationComplete(ctx, string(op), len(items), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunJSON decodes a JSON bead array, runs op and returns the JSON result.
func RunJSON(ctx context.Context, op Operation, data []byte) ([]byte, error) {
	if _, ok := registry[op]; !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown operation %q", op)
	}
	items, err := bead.Decode(data)
	if err != nil {
		return nil, err
	}
	res, err := Run(ctx, op, items)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode %s result", op)
	}
	return out, nil
}
