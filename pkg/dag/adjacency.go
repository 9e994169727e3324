package dag

import "github.com/matzehuels/beadgraph/pkg/bead"

// Adjacency maps each bead id to its declared Blocks list, verbatim and in
// declaration order. Beads that block nothing map to an empty list.
//
// Unlike [Build], Adjacency does not fold BlockedBy back into the
// out-edges and does not drop unknown ids. If an id appears more than once
// in items, the Blocks lists are concatenated.
func Adjacency(items []bead.Item) map[string][]string {
	adj := make(map[string][]string, len(items))
	for _, it := range items {
		if _, ok := adj[it.ID]; !ok {
			adj[it.ID] = make([]string, 0, len(it.Blocks))
		}
		adj[it.ID] = append(adj[it.ID], it.Blocks...)
	}
	return adj
}
