package dag

import (
	"errors"
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

func TestCriticalPath(t *testing.T) {
	tests := []struct {
		name      string
		items     []bead.Item
		wantPath  []string
		wantTotal uint32
		wantSlack map[string]uint32
	}{
		{"empty", nil, []string{}, 0, map[string]uint32{}},
		{"single default duration", []bead.Item{node("only", 0)}, []string{"only"}, 1, map[string]uint32{"only": 0}},
		{"chain", chain(), []string{"a", "b", "c"}, 45, map[string]uint32{"a": 0, "b": 0, "c": 0}},
		{"diamond", diamond(), []string{"b", "c"}, 35, map[string]uint32{"a": 20, "b": 0, "c": 0}},
		{
			"independent beads",
			[]bead.Item{node("a", 3), node("b", 8)},
			[]string{"b"}, 8, map[string]uint32{"a": 5, "b": 0},
		},
		{
			"zero durations",
			[]bead.Item{
				{ID: "a", Duration: bead.Dur(0), Blocks: []string{"b"}},
				{ID: "b", Duration: bead.Dur(0)},
			},
			[]string{"a", "b"}, 0, map[string]uint32{"a": 0, "b": 0},
		},
		{
			"slack-free successor must start on time",
			// v is critical through x, but only w starts when u finishes.
			mirror([]bead.Item{
				node("u", 1, "v", "w"),
				node("x", 5, "v"),
				node("w", 5),
				node("v", 1),
			}),
			[]string{"u", "w"}, 6, map[string]uint32{"u": 0, "x": 0, "w": 0, "v": 0},
		},
		{
			"blocks alone does not delay earliest start",
			[]bead.Item{node("a", 10, "b"), node("b", 5)},
			[]string{"a"}, 10, map[string]uint32{"a": 0, "b": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CriticalPath(tt.items)
			if err != nil {
				t.Fatalf("CriticalPath() error: %v", err)
			}
			if !slices.Equal(got.Path, tt.wantPath) || got.Path == nil {
				t.Errorf("Path = %#v, want %v", got.Path, tt.wantPath)
			}
			if got.TotalDuration != tt.wantTotal {
				t.Errorf("TotalDuration = %d, want %d", got.TotalDuration, tt.wantTotal)
			}
			if !maps.Equal(got.Slack, tt.wantSlack) || got.Slack == nil {
				t.Errorf("Slack = %v, want %v", got.Slack, tt.wantSlack)
			}
		})
	}
}

func TestCriticalPath_PathSumsToTotal(t *testing.T) {
	items := mirror([]bead.Item{
		node("design", 2, "api", "ui"),
		node("api", 5, "integrate"),
		node("ui", 3, "integrate"),
		node("infra", 6, "integrate"),
		node("integrate", 4, "ship"),
		node("ship", 1),
	})
	got, err := CriticalPath(items)
	if err != nil {
		t.Fatal(err)
	}

	dur := make(map[string]uint32, len(items))
	for _, it := range items {
		dur[it.ID] = it.EffectiveDuration()
	}
	var sum uint32
	for _, id := range got.Path {
		sum += dur[id]
		if !got.IsCritical(id) {
			t.Errorf("%s on path but slack = %d", id, got.Slack[id])
		}
	}
	if sum != got.TotalDuration {
		t.Errorf("path %v sums to %d, want %d", got.Path, sum, got.TotalDuration)
	}
	if got.TotalDuration != 12 {
		t.Errorf("TotalDuration = %d, want 12", got.TotalDuration)
	}
}

func TestCriticalPath_Saturates(t *testing.T) {
	items := mirror([]bead.Item{
		node("a", math.MaxUint32, "b"),
		node("b", math.MaxUint32),
	})
	got, err := CriticalPath(items)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalDuration != math.MaxUint32 {
		t.Errorf("TotalDuration = %d, want MaxUint32", got.TotalDuration)
	}
	if !slices.Equal(got.Path, []string{"a", "b"}) {
		t.Errorf("Path = %v, want [a b]", got.Path)
	}
}

func TestCriticalPath_Cycle(t *testing.T) {
	_, err := CriticalPath(triangle())
	if !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("CriticalPath() error = %v, want ErrGraphHasCycle", err)
	}
}
