package dag

import (
	"math"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

// CriticalPath computes earliest and latest schedules for every bead and
// returns the longest-duration chain, the total duration and each bead's
// slack.
//
// An empty input yields an empty result. A cyclic input yields
// [ErrGraphHasCycle].
//
// Earliest starts follow BlockedBy only; latest finishes follow every
// canonical successor.
//
// The returned path starts at the first zero-slack bead (input order) that
// has no zero-slack blocker and repeatedly follows the first
// zero-slack successor that starts exactly when the current bead
// finishes. The durations along the path sum to TotalDuration. When
// several longest chains exist, which one is returned depends on input
// and edge order.
func CriticalPath(items []bead.Item) (CriticalPathResult, error) {
	return Build(items).CriticalPath()
}

// CriticalPath is [CriticalPath] over an existing snapshot.
func (s *Snapshot) CriticalPath() (CriticalPathResult, error) {
	n := s.Len()
	if n == 0 {
		return CriticalPathResult{Path: []string{}, Slack: map[string]uint32{}}, nil
	}

	order, err := s.topoOrder()
	if err != nil {
		return CriticalPathResult{}, err
	}

	es := make([]uint64, n)
	ef := make([]uint64, n)
	var total uint64
	for _, u := range order {
		var start uint64
		for _, p := range s.blockedBy[u] {
			start = max(start, ef[p])
		}
		es[u] = start
		ef[u] = start + uint64(s.durations[u])
		total = max(total, ef[u])
	}

	ls := make([]uint64, n)
	for k := len(order) - 1; k >= 0; k-- {
		u := order[k]
		finish := total
		if succ := s.out[u]; len(succ) > 0 {
			finish = ls[succ[0]]
			for _, v := range succ[1:] {
				finish = min(finish, ls[v])
			}
		}
		ls[u] = satSub(finish, uint64(s.durations[u]))
	}

	res := CriticalPathResult{
		TotalDuration: clamp32(total),
		Slack:         make(map[string]uint32, n),
	}
	critical := make([]bool, n)
	for i := 0; i < n; i++ {
		slack := satSub(ls[i], es[i])
		res.Slack[s.ids[i]] = clamp32(slack)
		critical[i] = slack == 0
	}
	res.Path = s.tracePath(critical, es, ef)
	return res, nil
}

func (s *Snapshot) tracePath(critical []bool, es, ef []uint64) []string {
	start := -1
	for i, c := range critical {
		if !c {
			continue
		}
		hasCriticalPred := false
		for _, p := range s.blockedBy[i] {
			if critical[p] {
				hasCriticalPred = true
				break
			}
		}
		if !hasCriticalPred {
			start = i
			break
		}
	}

	if start < 0 {
		path := []string{}
		for i, c := range critical {
			if c {
				path = append(path, s.ids[i])
			}
		}
		return path
	}

	path := []string{s.ids[start]}
	for u := int32(start); ; {
		next := int32(-1)
		for _, v := range s.out[u] {
			if critical[v] && es[v] == ef[u] {
				next = v
				break
			}
		}
		if next < 0 {
			return path
		}
		path = append(path, s.ids[next])
		u = next
	}
}

func satSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func clamp32(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
