package engine

import (
	"testing"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

func mustDecode(t *testing.T, s string) []bead.Item {
	t.Helper()
	items, err := bead.Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return items
}
