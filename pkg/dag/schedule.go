package dag

import "github.com/matzehuels/beadgraph/pkg/bead"

// Ready returns, in input order, the open beads whose every BlockedBy entry
// names a closed bead.
//
// Ready reads BlockedBy directly rather than the canonical graph: a
// blocker id that is not in items counts as unsatisfied.
func Ready(items []bead.Item) []string {
	closed := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.IsClosed() {
			closed[it.ID] = struct{}{}
		}
	}

	ready := []string{}
	for _, it := range items {
		if it.IsClosed() {
			continue
		}
		blocked := false
		for _, id := range it.BlockedBy {
			if _, ok := closed[id]; !ok {
				blocked = true
				break
			}
		}
		if !blocked {
			ready = append(ready, it.ID)
		}
	}
	return ready
}

// ExecutionWaves partitions items into waves that can run in parallel.
//
// A bead with no known BlockedBy entry is in wave 0; any other bead is one
// wave after its latest blocker. Blocks entries order the beads but do not
// push the target into a later wave. Within a wave, ids follow the
// topological order produced by [TopoSort]. Cyclic input yields
// [ErrGraphHasCycle].
func ExecutionWaves(items []bead.Item) ([][]string, error) {
	return Build(items).Waves()
}

// Waves is [ExecutionWaves] over an existing snapshot.
func (s *Snapshot) Waves() ([][]string, error) {
	order, err := s.topoOrder()
	if err != nil {
		return nil, err
	}

	level := make([]int, s.Len())
	waves := [][]string{}
	for _, u := range order {
		lvl := 0
		for _, p := range s.blockedBy[u] {
			if l := level[p] + 1; l > lvl {
				lvl = l
			}
		}
		level[u] = lvl
		if lvl == len(waves) {
			waves = append(waves, nil)
		}
		waves[lvl] = append(waves[lvl], s.ids[u])
	}
	return waves, nil
}

// ComputeLevels returns the same partition as [ExecutionWaves] together
// with the size of the largest wave.
func ComputeLevels(items []bead.Item) (LevelsResult, error) {
	return Build(items).Levels()
}

// Levels is [ComputeLevels] over an existing snapshot.
func (s *Snapshot) Levels() (LevelsResult, error) {
	waves, err := s.Waves()
	if err != nil {
		return LevelsResult{}, err
	}
	res := LevelsResult{Levels: waves}
	for _, w := range waves {
		res.MaxParallelism = max(res.MaxParallelism, len(w))
	}
	return res, nil
}
