package dag

import (
	"slices"
	"testing"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

func TestBuild_Empty(t *testing.T) {
	s := Build(nil)
	if s.Len() != 0 || s.EdgeCount() != 0 {
		t.Errorf("Build(nil) = %d nodes, %d edges, want 0, 0", s.Len(), s.EdgeCount())
	}
}

func TestBuild_UnionOfEdgeViews(t *testing.T) {
	items := []bead.Item{
		{ID: "a", Blocks: []string{"b"}},
		{ID: "b"},
		{ID: "c", BlockedBy: []string{"a"}},
	}
	s := Build(items)

	if s.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", s.EdgeCount())
	}
	if got := s.idsOf(s.Out(0)); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Out(a) = %v, want [b c]", got)
	}
	if s.InDegree(1) != 1 || s.InDegree(2) != 1 {
		t.Errorf("InDegree(b, c) = %d, %d, want 1, 1", s.InDegree(1), s.InDegree(2))
	}
}

func TestBuild_Dedupes(t *testing.T) {
	items := []bead.Item{
		{ID: "a", Blocks: []string{"b", "b"}},
		{ID: "b", BlockedBy: []string{"a", "a"}},
	}
	s := Build(items)

	if s.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", s.EdgeCount())
	}
	if s.InDegree(1) != 1 {
		t.Errorf("InDegree(b) = %d, want 1", s.InDegree(1))
	}
}

func TestBuild_DropsUnknownIDs(t *testing.T) {
	items := []bead.Item{
		{ID: "a", Blocks: []string{"ghost"}, BlockedBy: []string{"phantom"}},
	}
	s := Build(items)

	if s.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", s.EdgeCount())
	}
	if s.InDegree(0) != 0 {
		t.Errorf("InDegree(a) = %d, want 0", s.InDegree(0))
	}
}

func TestBuild_Durations(t *testing.T) {
	items := []bead.Item{
		{ID: "a"},
		{ID: "b", Duration: bead.Dur(0)},
		{ID: "c", Duration: bead.Dur(7)},
	}
	s := Build(items)

	want := []uint32{1, 0, 7}
	for i, w := range want {
		if got := s.Duration(i); got != w {
			t.Errorf("Duration(%s) = %d, want %d", s.ID(i), got, w)
		}
	}
}

func TestBuild_DuplicateIDsResolveToFirst(t *testing.T) {
	items := []bead.Item{{ID: "x"}, {ID: "x"}, {ID: "y", BlockedBy: []string{"x"}}}
	s := Build(items)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	i, ok := s.Index("x")
	if !ok || i != 0 {
		t.Errorf("Index(x) = %d, %v, want 0, true", i, ok)
	}
	if got := s.In(2); !slices.Equal(got, []int32{0}) {
		t.Errorf("In(y) = %v, want [0]", got)
	}
}
