package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beadgraph/pkg/bead"
)

const diamondJSON = `[
  {"id": "a", "title": "schema", "status": "open", "priority": 1, "duration": 1, "blocks": ["b", "c"]},
  {"id": "b", "title": "api", "status": "open", "priority": 1, "duration": 5, "blocked_by": ["a"], "blocks": ["d"]},
  {"id": "c", "title": "docs", "status": "open", "priority": 2, "duration": 2, "blocked_by": ["a"], "blocks": ["d"]},
  {"id": "d", "title": "release", "status": "open", "priority": 0, "duration": 1, "blocked_by": ["b", "c"]}
]`

const cycleJSON = `[
  {"id": "x", "title": "x", "status": "open", "priority": 0, "blocks": ["y"], "blocked_by": ["y"]},
  {"id": "y", "title": "y", "status": "open", "priority": 0, "blocks": ["x"], "blocked_by": ["x"]}
]`

// execute runs the CLI with args in an isolated config and cache home.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	c.stdin = strings.NewReader(stdin)
	c.stdout = &out

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func writeBeads(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalysisCommandsJSON(t *testing.T) {
	file := writeBeads(t, "diamond.json", diamondJSON)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"topo-sort", file, "--json"}, `{"sorted":["a","b","c","d"],"has_cycle":false,"cycle_nodes":[]}`},
		{[]string{"topo_sort", file, "--json"}, `{"sorted":["a","b","c","d"],"has_cycle":false,"cycle_nodes":[]}`},
		{[]string{"has-cycle", file, "--json"}, `false`},
		{[]string{"find-cycle-nodes", file, "--json"}, `[]`},
		{[]string{"ready", file, "--json"}, `["a"]`},
		{[]string{"execution-waves", file, "--json"}, `[["a"],["b","c"],["d"]]`},
		{[]string{"compute-levels", file, "--json"}, `{"levels":[["a"],["b","c"],["d"]],"max_parallelism":2}`},
		{[]string{"critical-path", file, "--json", "--no-cache"}, `{"path":["a","b","d"],"total_duration":7,"slack":{"a":0,"b":0,"c":3,"d":0}}`},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args[:1], " "), func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatalf("execute(%v) error: %v", tt.args, err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAnalysisCommandStdinTOML(t *testing.T) {
	toml := `
[[bead]]
id = "a"
title = "schema"
status = "open"
priority = 1
blocks = ["b"]

[[bead]]
id = "b"
title = "api"
status = "open"
priority = 1
blocked_by = ["a"]
`
	out, err := execute(t, toml, "topo-sort", "-", "--input-format", "toml", "--json")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if got := strings.TrimSpace(out); got != `{"sorted":["a","b"],"has_cycle":false,"cycle_nodes":[]}` {
		t.Errorf("output = %s", got)
	}
}

func TestAnalysisCommandHumanOutput(t *testing.T) {
	file := writeBeads(t, "diamond.json", diamondJSON)

	out, err := execute(t, "", "critical-path", file)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{"critical path", "4 beads", "total duration", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExecutionWavesHumanOutputStartsAtZero(t *testing.T) {
	file := writeBeads(t, "diamond.json", diamondJSON)

	out, err := execute(t, "", "execution-waves", file)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{"wave 0", "wave 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "wave 3") {
		t.Errorf("waves should be numbered from 0:\n%s", out)
	}

	items, err := bead.Decode([]byte(diamondJSON))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewWaveModel(items)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Rows) == 0 || m.Rows[0].wave != 0 || m.Rows[len(m.Rows)-1].wave != 2 {
		t.Errorf("browser waves = %+v, want 0..2", m.Rows)
	}
}

func TestAnalysisCommandErrors(t *testing.T) {
	cyclic := writeBeads(t, "cycle.json", cycleJSON)
	bad := writeBeads(t, "bad.json", `{"id": "a"}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"cycle", []string{"execution-waves", cyclic}, "CYCLE_DETECTED"},
		{"invalid json", []string{"topo-sort", bad}, "INVALID"},
		{"missing file", []string{"topo-sort", filepath.Join(t.TempDir(), "nope.json")}, "NOT_FOUND"},
		{"missing arg", []string{"topo-sort"}, "arg"},
		{"bad input format", []string{"topo-sort", "-", "--input-format", "yaml"}, "input-format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestBatchCommand(t *testing.T) {
	good := writeBeads(t, "good.json", diamondJSON)
	cyclic := writeBeads(t, "cycle.json", cycleJSON)
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, err := execute(t, "", "batch", "ready", good, cyclic, missing)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	var entries []batchEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Input != good || string(entries[0].Result) != `["a"]` {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	// Every bead in a closed loop waits on an open blocker.
	if string(entries[1].Result) != `[]` {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if entries[2].Error == nil || entries[2].Error.Code != "NOT_FOUND" {
		t.Errorf("entry 2 = %+v", entries[2])
	}
}

func TestBatchCommandUnknownOperation(t *testing.T) {
	file := writeBeads(t, "good.json", diamondJSON)
	if _, err := execute(t, "", "batch", "shortest_path", file); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	file := writeBeads(t, "diamond.json", diamondJSON)

	out, err := execute(t, "", "render", file, "-f", "dot", "-o", "-", "--critical")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("expected DOT output, got:\n%s", out)
	}
	if !strings.Contains(out, "slack 3") {
		t.Errorf("expected slack label for c:\n%s", out)
	}
}

func TestRenderCommandDefaultOutput(t *testing.T) {
	file := writeBeads(t, "diamond.json", diamondJSON)

	if _, err := execute(t, "", "render", file, "-f", "dot"); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want := strings.TrimSuffix(file, ".json") + ".dot"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected %s: %v", want, err)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	file := writeBeads(t, "diamond.json", diamondJSON)
	if _, err := execute(t, "", "render", file, "-f", "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTargetsCommand(t *testing.T) {
	out, err := execute(t, "", "targets", "--json")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	var got struct {
		Version string             `json:"version"`
		Targets map[string]float64 `json:"targets"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Targets["cycle_detect_ms"] != 0.1 {
		t.Errorf("cycle_detect_ms = %v", got.Targets["cycle_detect_ms"])
	}
}

func TestCacheCommands(t *testing.T) {
	t.Run("path", func(t *testing.T) {
		out, err := execute(t, "", "cache", "path")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(strings.TrimSpace(out), appName) {
			t.Errorf("cache path = %q", out)
		}
	})
	t.Run("clear empty", func(t *testing.T) {
		out, err := execute(t, "", "cache", "clear")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "empty") && !strings.Contains(out, "Cleared 0") {
			t.Errorf("cache clear output = %q", out)
		}
	})
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "beadgraph") {
		t.Error("bash completion should mention the program name")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format, want string
	}{
		{"", "work/sprint.json", "svg", "work/sprint.svg"},
		{"", "beads.toml", "pdf", "beads.pdf"},
		{"", "stdin", "dot", "-"},
		{"", "mongo:work.beads", "svg", "-"},
		{"out.png", "beads.json", "png", "out.png"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}
