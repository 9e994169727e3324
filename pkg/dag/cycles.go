package dag

import "github.com/matzehuels/beadgraph/pkg/bead"

// HasCycle reports whether the canonical graph contains a directed cycle,
// including a bead that blocks itself. Inputs with fewer than two beads
// always report false.
func HasCycle(items []bead.Item) bool {
	if len(items) < 2 {
		return false
	}
	return Build(items).HasCycle()
}

// HasCycle is [HasCycle] over an existing snapshot.
func (s *Snapshot) HasCycle() bool {
	if s.Len() < 2 {
		return false
	}
	_, ok := s.kahn()
	return !ok
}

// FindCycleNodes returns the ids of beads that belong to a strongly
// connected component of two or more beads.
//
// Self-loops form single-node components and are not reported. Ids are
// grouped by component in discovery order; no other ordering is promised.
func FindCycleNodes(items []bead.Item) []string {
	if len(items) < 2 {
		return []string{}
	}
	return Build(items).CycleNodes()
}

// CycleNodes is [FindCycleNodes] over an existing snapshot.
func (s *Snapshot) CycleNodes() []string {
	nodes := []string{}
	for _, scc := range s.components() {
		if len(scc) > 1 {
			nodes = append(nodes, s.idsOf(scc)...)
		}
	}
	return nodes
}

// components runs Tarjan's algorithm with an explicit call stack so that
// long dependency chains cannot exhaust the goroutine stack.
func (s *Snapshot) components() [][]int32 {
	n := s.Len()
	if n == 0 {
		return nil
	}

	type frame struct {
		v    int32
		next int
	}

	var (
		order   = make([]int32, n) // discovery index + 1; 0 means unvisited
		low     = make([]int32, n)
		onStack = make([]bool, n)
		stack   = make([]int32, 0, n)
		calls   = make([]frame, 0, 16)
		counter int32
		sccs    [][]int32
	)

	visit := func(v int32) {
		counter++
		order[v], low[v] = counter, counter
		stack = append(stack, v)
		onStack[v] = true
		calls = append(calls, frame{v: v})
	}

	for root := int32(0); root < int32(n); root++ {
		if order[root] != 0 {
			continue
		}
		visit(root)

		for len(calls) > 0 {
			top := len(calls) - 1
			v := calls[top].v
			if out := s.out[v]; calls[top].next < len(out) {
				w := out[calls[top].next]
				calls[top].next++
				switch {
				case order[w] == 0:
					visit(w)
				case onStack[w] && order[w] < low[v]:
					low[v] = order[w]
				}
				continue
			}

			if low[v] == order[v] {
				var scc []int32
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				sccs = append(sccs, scc)
			}

			calls = calls[:top]
			if top > 0 {
				if p := calls[top-1].v; low[v] < low[p] {
					low[p] = low[v]
				}
			}
		}
	}
	return sccs
}
