package dag

import (
	"errors"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

// ErrGraphHasCycle is returned by operations that require an acyclic graph
// ([ExecutionWaves], [ComputeLevels], [CriticalPath]) when the canonical
// graph contains a directed cycle.
var ErrGraphHasCycle = errors.New("graph contains a cycle")

// Snapshot is the canonical indexed form of a bead list.
//
// Index i refers to the i-th bead of the input. Out(i) lists the
// reconciled out-edges of i: its known Blocks entries in declaration order,
// followed by beads whose BlockedBy names i, in input order, with duplicates
// removed. In(i) lists the same edges from the target's side, ordered by
// source index.
//
// Scheduling passes that only honor declared blockers use the separate
// per-node list of known BlockedBy indices, deduplicated, in declaration
// order.
//
// The zero value is an empty snapshot. Use [Build] to create one.
type Snapshot struct {
	ids       []string
	durations []uint32
	out       [][]int32
	in        [][]int32
	blockedBy [][]int32
	index     map[string]int32
	edges     int
}

// Build produces the canonical snapshot of items in O(n + e).
//
// Unknown ids in Blocks or BlockedBy are skipped. Build never fails: if
// items contain duplicate ids, each bead keeps its own index and id
// lookups resolve to the first occurrence.
func Build(items []bead.Item) *Snapshot {
	n := len(items)
	s := &Snapshot{
		ids:       make([]string, n),
		durations: make([]uint32, n),
		out:       make([][]int32, n),
		in:        make([][]int32, n),
		blockedBy: make([][]int32, n),
		index:     make(map[string]int32, n),
	}

	for i, it := range items {
		s.ids[i] = it.ID
		s.durations[i] = it.EffectiveDuration()
		if _, dup := s.index[it.ID]; !dup {
			s.index[it.ID] = int32(i)
		}
	}

	// Candidate edges are laid out per source in one backing array:
	// Blocks-derived edges first, then BlockedBy-derived ones.
	offsets := make([]int32, n+1)
	for i, it := range items {
		for _, id := range it.Blocks {
			if _, ok := s.index[id]; ok {
				offsets[i+1]++
			}
		}
		for _, id := range it.BlockedBy {
			if u, ok := s.index[id]; ok {
				offsets[u+1]++
			}
		}
	}
	for i := 0; i < n; i++ {
		offsets[i+1] += offsets[i]
	}

	backing := make([]int32, offsets[n])
	fill := make([]int32, n)
	copy(fill, offsets[:n])
	for i, it := range items {
		for _, id := range it.Blocks {
			if v, ok := s.index[id]; ok {
				backing[fill[i]] = v
				fill[i]++
			}
		}
	}
	for v, it := range items {
		for _, id := range it.BlockedBy {
			if u, ok := s.index[id]; ok {
				backing[fill[u]] = int32(v)
				fill[u]++
			}
		}
	}

	// Dedupe each segment in place. stamp[v] holds the last source that
	// emitted an edge to v.
	stamp := make([]int32, n)
	for i := range stamp {
		stamp[i] = -1
	}
	inDeg := make([]int32, n+1)
	for u := 0; u < n; u++ {
		start, end := offsets[u], offsets[u+1]
		w := start
		for k := start; k < end; k++ {
			v := backing[k]
			if stamp[v] == int32(u) {
				continue
			}
			stamp[v] = int32(u)
			backing[w] = v
			w++
			inDeg[v+1]++
		}
		s.out[u] = backing[start:w:w]
		s.edges += int(w - start)
	}

	for i := 0; i < n; i++ {
		inDeg[i+1] += inDeg[i]
	}
	inBacking := make([]int32, s.edges)
	copy(fill, inDeg[:n])
	for u := 0; u < n; u++ {
		for _, v := range s.out[u] {
			inBacking[fill[v]] = int32(u)
			fill[v]++
		}
	}
	for v := 0; v < n; v++ {
		s.in[v] = inBacking[inDeg[v]:inDeg[v+1]:inDeg[v+1]]
	}

	for i := range stamp {
		stamp[i] = -1
	}
	for v, it := range items {
		var preds []int32
		for _, id := range it.BlockedBy {
			u, ok := s.index[id]
			if !ok || stamp[u] == int32(v) {
				continue
			}
			stamp[u] = int32(v)
			preds = append(preds, u)
		}
		s.blockedBy[v] = preds
	}

	return s
}

// Len returns the number of nodes.
func (s *Snapshot) Len() int { return len(s.ids) }

// EdgeCount returns the number of canonical edges.
func (s *Snapshot) EdgeCount() int { return s.edges }

// ID returns the bead id at index i.
func (s *Snapshot) ID(i int) string { return s.ids[i] }

// Duration returns the effective duration of node i.
func (s *Snapshot) Duration(i int) uint32 { return s.durations[i] }

// Out returns the canonical out-edges of node i.
// The returned slice is shared with the snapshot and must not be modified.
func (s *Snapshot) Out(i int) []int32 { return s.out[i] }

// In returns the canonical in-edges of node i.
// The returned slice is shared with the snapshot and must not be modified.
func (s *Snapshot) In(i int) []int32 { return s.in[i] }

// InDegree returns the number of canonical in-edges of node i.
func (s *Snapshot) InDegree(i int) int { return len(s.in[i]) }

// Index returns the index of the first bead with the given id.
func (s *Snapshot) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return int(i), ok
}

// idsOf maps indices back to ids. The result is never nil.
func (s *Snapshot) idsOf(idx []int32) []string {
	ids := make([]string, len(idx))
	for k, i := range idx {
		ids[k] = s.ids[i]
	}
	return ids
}
