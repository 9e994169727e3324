package dag_test

import (
	"fmt"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/dag"
)

func ExampleTopoSort() {
	// design → build → release, declared from both sides
	items := []bead.Item{
		{ID: "release", Status: bead.StatusOpen, BlockedBy: []string{"build"}},
		{ID: "build", Status: bead.StatusOpen, Blocks: []string{"release"}},
		{ID: "design", Status: bead.StatusClosed, Blocks: []string{"build"}},
	}

	res := dag.TopoSort(items)
	fmt.Println("Sorted:", res.Sorted)
	fmt.Println("Cycle:", res.HasCycle)
	fmt.Println("Ready:", dag.Ready(items))
	// Output:
	// Sorted: [design build release]
	// Cycle: false
	// Ready: [build]
}

func ExampleCriticalPath() {
	items := []bead.Item{
		{ID: "frontend", Duration: bead.Dur(10), Blocks: []string{"launch"}},
		{ID: "backend", Duration: bead.Dur(30), Blocks: []string{"launch"}},
		{ID: "launch", Duration: bead.Dur(5)},
	}

	res, err := dag.CriticalPath(items)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Path:", res.Path)
	fmt.Println("Total:", res.TotalDuration)
	fmt.Println("Frontend slack:", res.Slack["frontend"])
	// Output:
	// Path: [backend launch]
	// Total: 35
	// Frontend slack: 20
}

func ExampleComputeLevels() {
	items := []bead.Item{
		{ID: "a", Blocks: []string{"c"}},
		{ID: "b", Blocks: []string{"c"}},
		{ID: "c"},
	}

	res, _ := dag.ComputeLevels(items)
	for i, wave := range res.Levels {
		fmt.Println(i, wave)
	}
	fmt.Println("Max parallelism:", res.MaxParallelism)
	// Output:
	// 0 [a b]
	// 1 [c]
	// Max parallelism: 2
}
