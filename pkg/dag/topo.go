package dag

import "github.com/matzehuels/beadgraph/pkg/bead"

// TopoSort orders items so that every bead follows the beads it depends on.
//
// TopoSort uses Kahn's algorithm with a FIFO queue seeded in input order,
// so the result is deterministic for a given input. If the graph has a
// cycle, the partial order is discarded: Sorted is empty, HasCycle is true
// and CycleNodes lists, in input order, every bead that was never
// released. That set contains every cycle member and every bead
// downstream of a cycle.
func TopoSort(items []bead.Item) TopoResult {
	return Build(items).TopoSort()
}

// TopoSort is [TopoSort] over an existing snapshot.
func (s *Snapshot) TopoSort() TopoResult {
	order, ok := s.kahn()
	if ok {
		return TopoResult{Sorted: s.idsOf(order), CycleNodes: []string{}}
	}

	released := make([]bool, s.Len())
	for _, i := range order {
		released[i] = true
	}
	stuck := make([]string, 0, s.Len()-len(order))
	for i, done := range released {
		if !done {
			stuck = append(stuck, s.ids[i])
		}
	}
	return TopoResult{Sorted: []string{}, HasCycle: true, CycleNodes: stuck}
}

// kahn returns the indices in Kahn order and whether every node was
// released. The order slice doubles as the FIFO queue.
func (s *Snapshot) kahn() ([]int32, bool) {
	n := s.Len()
	indeg := make([]int32, n)
	order := make([]int32, 0, n)
	for i := 0; i < n; i++ {
		indeg[i] = int32(len(s.in[i]))
		if indeg[i] == 0 {
			order = append(order, int32(i))
		}
	}

	for head := 0; head < len(order); head++ {
		for _, v := range s.out[order[head]] {
			indeg[v]--
			if indeg[v] == 0 {
				order = append(order, v)
			}
		}
	}
	return order, len(order) == n
}

// topoOrder returns a full topological order or ErrGraphHasCycle.
func (s *Snapshot) topoOrder() ([]int32, error) {
	order, ok := s.kahn()
	if !ok {
		return nil, ErrGraphHasCycle
	}
	return order, nil
}
