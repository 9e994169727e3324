package dag

// TopoResult is the outcome of [TopoSort].
type TopoResult struct {
	Sorted     []string `json:"sorted"`
	HasCycle   bool     `json:"has_cycle"`
	CycleNodes []string `json:"cycle_nodes"`
}

// LevelsResult is the outcome of [ComputeLevels].
type LevelsResult struct {
	Levels         [][]string `json:"levels"`
	MaxParallelism int        `json:"max_parallelism"`
}

// CriticalPathResult is the outcome of [CriticalPath].
type CriticalPathResult struct {
	Path          []string          `json:"path"`
	TotalDuration uint32            `json:"total_duration"`
	Slack         map[string]uint32 `json:"slack"`
}

// IsCritical reports whether id has zero slack.
func (r CriticalPathResult) IsCritical(id string) bool {
	s, ok := r.Slack[id]
	return ok && s == 0
}
