package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/dag"
	"github.com/matzehuels/beadgraph/pkg/engine"
)

// analysisCommands creates one subcommand per engine operation. Commands
// are named in kebab case ("critical-path") with the operation name
// ("critical_path") as an alias.
func (c *CLI) analysisCommands() []*cobra.Command {
	ops := engine.Operations()
	cmds := make([]*cobra.Command, 0, len(ops))
	for _, info := range ops {
		cmds = append(cmds, c.analysisCommand(info))
	}
	return cmds
}

func (c *CLI) analysisCommand(info engine.Info) *cobra.Command {
	var (
		in     inputOpts
		asJSON bool
	)

	name := strings.ReplaceAll(string(info.Name), "_", "-")
	cmd := &cobra.Command{
		Use:     name + " [file]",
		Aliases: []string{string(info.Name)},
		Short:   info.Summary,
		GroupID: groupAnalysis,
		Args:    in.inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			raw, label, err := c.load(ctx, &in, args)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, in.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Refresh = in.refresh

			prog := newProgress(logger)
			out, hit, err := runner.Analyze(ctx, info.Name, raw)
			if err != nil {
				return err
			}
			prog.done("analysed "+label, "op", info.Name, "cached", hit)

			w := cmd.OutOrStdout()
			if asJSON {
				_, err := fmt.Fprintf(w, "%s\n", out)
				return err
			}
			items, err := bead.Decode(raw)
			if err != nil {
				return err
			}
			return printResult(w, info.Name, items, out, hit)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}

// printResult renders an operation's JSON result for humans.
func printResult(w io.Writer, op engine.Operation, items []bead.Item, out []byte, cached bool) error {
	snap := dag.Build(items)
	fmt.Fprintln(w, StyleTitle.Render(strings.ReplaceAll(string(op), "_", " ")))
	printStats(w, snap.Len(), snap.EdgeCount(), cached)
	fmt.Fprintln(w)

	switch op {
	case engine.OpHasCycle:
		var cyclic bool
		if err := json.Unmarshal(out, &cyclic); err != nil {
			return err
		}
		if cyclic {
			printWarning(w, "dependency graph has a cycle")
			printNextStep(w, "List the beads involved", "beadgraph find-cycle-nodes <file>")
		} else {
			printSuccess(w, "no cycles")
		}

	case engine.OpTopoSort:
		var res dag.TopoResult
		if err := json.Unmarshal(out, &res); err != nil {
			return err
		}
		if res.HasCycle {
			printWarning(w, "dependency graph has a cycle; %d beads could not be ordered", len(res.CycleNodes))
			printList(w, res.CycleNodes)
			break
		}
		printList(w, res.Sorted)

	case engine.OpFindCycleNodes, engine.OpReady:
		var ids []string
		if err := json.Unmarshal(out, &ids); err != nil {
			return err
		}
		printList(w, ids)

	case engine.OpAdjacency:
		var adj map[string][]string
		if err := json.Unmarshal(out, &adj); err != nil {
			return err
		}
		printAdjacency(w, adj)

	case engine.OpExecutionWaves:
		var waves [][]string
		if err := json.Unmarshal(out, &waves); err != nil {
			return err
		}
		printWaves(w, waves)

	case engine.OpComputeLevels:
		var res dag.LevelsResult
		if err := json.Unmarshal(out, &res); err != nil {
			return err
		}
		printWaves(w, res.Levels)
		fmt.Fprintln(w)
		printKeyValue(w, "max parallelism", StyleNumber.Render(fmt.Sprint(res.MaxParallelism)))

	case engine.OpCriticalPath:
		var res dag.CriticalPathResult
		if err := json.Unmarshal(out, &res); err != nil {
			return err
		}
		printCriticalPath(w, items, res)

	default:
		_, err := fmt.Fprintf(w, "%s\n", out)
		return err
	}
	return nil
}

func printAdjacency(w io.Writer, adj map[string][]string) {
	if len(adj) == 0 {
		printDetail(w, "(none)")
		return
	}
	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	t := newTable("Bead", "Blocks")
	for _, id := range ids {
		t.Row(id, strings.Join(adj[id], ", "))
	}
	fmt.Fprintln(w, t.Render())
}

func printWaves(w io.Writer, waves [][]string) {
	if len(waves) == 0 {
		printDetail(w, "(none)")
		return
	}
	for i, wave := range waves {
		label := StyleDim.Render(fmt.Sprintf("wave %d", i))
		fmt.Fprintf(w, "  %s %s %s\n", label, StyleNumber.Render(fmt.Sprintf("(%d)", len(wave))), strings.Join(wave, ", "))
	}
}

func printCriticalPath(w io.Writer, items []bead.Item, res dag.CriticalPathResult) {
	if len(res.Path) == 0 {
		printDetail(w, "(empty)")
		return
	}
	printKeyValue(w, "path", StyleCritical.Render(joinPath(res.Path)))
	printKeyValue(w, "total duration", StyleNumber.Render(fmt.Sprint(res.TotalDuration)))
	fmt.Fprintln(w)

	t := newTable("Bead", "Duration", "Slack")
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		slack := fmt.Sprint(res.Slack[it.ID])
		if res.IsCritical(it.ID) {
			slack = "0 (critical)"
		}
		t.Row(it.ID, fmt.Sprint(it.EffectiveDuration()), slack)
	}
	fmt.Fprintln(w, t.Render())
}
