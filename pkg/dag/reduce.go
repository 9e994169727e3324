package dag

// Edge is a canonical edge between snapshot indices.
type Edge struct {
	From, To int32
}

// RedundantEdges returns the canonical edges implied by a longer path. An
// edge u→v is redundant when another successor of u reaches v; dropping
// all of them yields the transitive reduction.
//
// Reachability is kept as one bitset per bead, so memory grows with the
// square of the bead count. This is meant for graphs small enough to
// draw. It returns [ErrGraphHasCycle] for cyclic graphs, which have no
// unique reduction.
func (s *Snapshot) RedundantEdges() (map[Edge]bool, error) {
	order, err := s.topoOrder()
	if err != nil {
		return nil, err
	}

	n := s.Len()
	words := (n + 63) / 64
	reach := make([][]uint64, n)
	redundant := make(map[Edge]bool)

	// Reverse topological order: every successor's set is final before
	// its predecessors read it.
	for k := len(order) - 1; k >= 0; k-- {
		u := order[k]
		set := make([]uint64, words)
		for _, w := range s.out[u] {
			for i, bits := range reach[w] {
				set[i] |= bits
			}
		}
		for _, v := range s.out[u] {
			if set[v/64]&(1<<(uint(v)%64)) != 0 {
				redundant[Edge{From: u, To: v}] = true
			}
		}
		for _, w := range s.out[u] {
			set[w/64] |= 1 << (uint(w) % 64)
		}
		reach[u] = set
	}
	return redundant, nil
}
