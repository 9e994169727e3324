package bead

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/beadgraph/pkg/errors"
)

func TestEffectiveDuration(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want uint32
	}{
		{"absent", Item{ID: "a"}, 1},
		{"explicit", Item{ID: "a", Duration: Dur(30)}, 30},
		{"zero kept", Item{ID: "a", Duration: Dur(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.EffectiveDuration(); got != tt.want {
				t.Errorf("EffectiveDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	input := `[
		{"id": "a", "title": "A", "status": "open", "priority": 1, "blocks": ["b"], "duration": 10},
		{"id": "b", "title": "B", "status": "closed", "priority": 0, "blocked_by": ["a"], "labels": ["x"]}
	]`

	items, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	a, b := items[0], items[1]
	if a.ID != "a" || a.EffectiveDuration() != 10 || !reflect.DeepEqual(a.Blocks, []string{"b"}) {
		t.Errorf("items[0] = %+v", a)
	}
	if !b.IsClosed() || b.Duration != nil || !reflect.DeepEqual(b.BlockedBy, []string{"a"}) {
		t.Errorf("items[1] = %+v", b)
	}
}

func TestDecodeEmpty(t *testing.T) {
	items, err := Decode([]byte(" [] "))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{{`},
		{"object", `{"id": "a"}`},
		{"null", `null`},
		{"empty", ``},
		{"missing id", `[{"title": "A", "status": "open", "priority": 0}]`},
		{"missing title", `[{"id": "a", "status": "open", "priority": 0}]`},
		{"missing status", `[{"id": "a", "title": "A", "priority": 0}]`},
		{"missing priority", `[{"id": "a", "title": "A", "status": "open"}]`},
		{"empty id", `[{"id": "", "title": "A", "status": "open", "priority": 0}]`},
		{"id too long", `[{"id": "` + strings.Repeat("x", errors.MaxIDLength+1) + `", "title": "A", "status": "open", "priority": 0}]`},
		{"control character in id", `[{"id": "a\u0007b", "title": "A", "status": "open", "priority": 0}]`},
		{"negative duration", `[{"id": "a", "title": "A", "status": "open", "priority": 0, "duration": -1}]`},
		{"duration overflow", `[{"id": "a", "title": "A", "status": "open", "priority": 0, "duration": 4294967296}]`},
		{"string priority", `[{"id": "a", "title": "A", "status": "open", "priority": "high"}]`},
		{"duplicate id", `[
			{"id": "a", "title": "A", "status": "open", "priority": 0},
			{"id": "a", "title": "A2", "status": "open", "priority": 0}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if err == nil {
				t.Fatal("Decode() error = nil, want parse error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Decode() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	items := []Item{
		{ID: "a", Title: "A", Status: StatusOpen, Priority: 2, Blocks: []string{"b"}, Duration: Dur(5)},
		{ID: "b", Title: "B", Status: StatusClosed, Priority: 1, BlockedBy: []string{"a"}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, items); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("round trip = %+v, want %+v", got, items)
	}
}

func TestWriteJSONNil(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want %q", got, "[]")
	}
}

func TestReadTOML(t *testing.T) {
	input := `
[[bead]]
id = "a"
title = "Schema"
status = "open"
priority = 1
blocks = ["b"]
duration = 10

[[bead]]
id = "b"
title = "API"
status = "open"
priority = 2
blocked_by = ["a"]
`
	items, err := ReadTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTOML() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].EffectiveDuration() != 10 {
		t.Errorf("items[0] duration = %d, want 10", items[0].EffectiveDuration())
	}
	if items[1].EffectiveDuration() != DefaultDuration {
		t.Errorf("items[1] duration = %d, want %d", items[1].EffectiveDuration(), DefaultDuration)
	}
	if !reflect.DeepEqual(items[1].BlockedBy, []string{"a"}) {
		t.Errorf("items[1].BlockedBy = %v, want [a]", items[1].BlockedBy)
	}
}

func TestReadTOMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `[[bead]`},
		{"missing priority", "[[bead]]\nid = \"a\"\ntitle = \"A\"\nstatus = \"open\"\n"},
		{"negative duration", "[[bead]]\nid = \"a\"\ntitle = \"A\"\nstatus = \"open\"\npriority = 0\nduration = -4\n"},
		{"duplicate", "[[bead]]\nid = \"a\"\ntitle = \"A\"\nstatus = \"open\"\npriority = 0\n[[bead]]\nid = \"a\"\ntitle = \"B\"\nstatus = \"open\"\npriority = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTOML(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadTOML() error = %v, want %v", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}
