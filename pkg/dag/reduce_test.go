package dag

import (
	"errors"
	"testing"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

func TestRedundantEdges(t *testing.T) {
	tests := []struct {
		name  string
		items []bead.Item
		want  [][2]string
	}{
		{
			name:  "empty",
			items: nil,
		},
		{
			name:  "chain has none",
			items: chain(),
		},
		{
			name: "shortcut",
			items: mirror([]bead.Item{
				node("a", 0, "b", "c"),
				node("b", 0, "c"),
				node("c", 0),
			}),
			want: [][2]string{{"a", "c"}},
		},
		{
			name: "long shortcut",
			items: mirror([]bead.Item{
				node("a", 0, "b", "d"),
				node("b", 0, "c"),
				node("c", 0, "d"),
				node("d", 0),
			}),
			want: [][2]string{{"a", "d"}},
		},
		{
			name: "diamond keeps both branches",
			items: mirror([]bead.Item{
				node("a", 0, "b", "c"),
				node("b", 0, "d"),
				node("c", 0, "d"),
				node("d", 0),
			}),
		},
		{
			name: "nested shortcuts",
			items: mirror([]bead.Item{
				node("a", 0, "b", "c", "d"),
				node("b", 0, "c", "d"),
				node("c", 0, "d"),
				node("d", 0),
			}),
			want: [][2]string{{"a", "c"}, {"a", "d"}, {"b", "d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Build(tt.items)
			got, err := s.RedundantEdges()
			if err != nil {
				t.Fatalf("RedundantEdges() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d redundant edges, want %d: %v", len(got), len(tt.want), got)
			}
			for _, e := range tt.want {
				from, _ := s.Index(e[0])
				to, _ := s.Index(e[1])
				if !got[Edge{From: int32(from), To: int32(to)}] {
					t.Errorf("edge %s->%s should be redundant", e[0], e[1])
				}
			}
		})
	}
}

func TestRedundantEdgesCycle(t *testing.T) {
	if _, err := Build(triangle()).RedundantEdges(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("RedundantEdges() error = %v, want ErrGraphHasCycle", err)
	}
}

func TestRedundantEdgesWide(t *testing.T) {
	// More than 64 beads exercises multi-word bitsets.
	var items []bead.Item
	const n = 130
	for i := 0; i < n; i++ {
		id := string(rune('A' + i/26)) + string(rune('a'+i%26))
		it := node(id, 0)
		if i+1 < n {
			next := string(rune('A' + (i+1)/26)) + string(rune('a'+(i+1)%26))
			it.Blocks = append(it.Blocks, next)
		}
		items = append(items, it)
	}
	// A shortcut from the first to the last bead spans every word.
	items[0].Blocks = append(items[0].Blocks, items[n-1].ID)
	items = mirror(items)

	got, err := Build(items).RedundantEdges()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[Edge{From: 0, To: n - 1}] {
		t.Errorf("RedundantEdges() = %v, want only the shortcut", got)
	}
}
