package engine

import "github.com/matzehuels/beadgraph/pkg/buildinfo"

// Targets describes the engine build and its latency budgets, in
// milliseconds per call.
type Targets struct {
	Version  string             `json:"version"`
	Budgets  map[string]float64 `json:"targets"`
	Features []string           `json:"features"`
}

// GetTargets returns the engine's timing targets. Benchmarks in pkg/dag
// measure the same operations at the same sizes.
func GetTargets() Targets {
	return Targets{
		Version: buildinfo.Version,
		Budgets: map[string]float64{
			"topo_sort_100_ms":  0.3,
			"topo_sort_1000_ms": 0.3,
			"cycle_detect_ms":   0.1,
			"critical_path_ms":  0.2,
		},
		Features: []string{
			"csr_adjacency",
			"iterative_scc",
			"fifo_kahn",
			"saturating_durations",
		},
	}
}
