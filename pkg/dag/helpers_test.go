package dag

import (
	"slices"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

// node builds an open bead with the given duration (0 means unset) that
// blocks the listed ids.
func node(id string, dur uint32, blocks ...string) bead.Item {
	it := bead.Item{ID: id, Title: id, Status: bead.StatusOpen, Blocks: blocks}
	if dur > 0 {
		it.Duration = bead.Dur(dur)
	}
	return it
}

// mirror fills BlockedBy from the Blocks lists so both edge views agree.
func mirror(items []bead.Item) []bead.Item {
	out := slices.Clone(items)
	pos := make(map[string]int, len(out))
	for i := range out {
		out[i].BlockedBy = nil
		pos[out[i].ID] = i
	}
	for _, it := range items {
		for _, to := range it.Blocks {
			if j, ok := pos[to]; ok {
				out[j].BlockedBy = append(out[j].BlockedBy, it.ID)
			}
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func chain() []bead.Item {
	return mirror([]bead.Item{
		node("a", 10, "b"),
		node("b", 20, "c"),
		node("c", 15),
	})
}

func diamond() []bead.Item {
	return mirror([]bead.Item{
		node("a", 10, "c"),
		node("b", 30, "c"),
		node("c", 5),
	})
}

func triangle() []bead.Item {
	return mirror([]bead.Item{
		node("a", 0, "b"),
		node("b", 0, "c"),
		node("c", 0, "a"),
	})
}
