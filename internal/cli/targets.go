package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/engine"
)

func (c *CLI) targetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "targets",
		Short:   "Show engine version, performance budgets and features",
		GroupID: groupTools,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := engine.GetTargets()
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(t)
			}

			printKeyValue(w, "version", t.Version)
			fmt.Fprintln(w)

			names := make([]string, 0, len(t.Budgets))
			for name := range t.Budgets {
				names = append(names, name)
			}
			slices.Sort(names)
			tbl := newTable("Budget", "ms")
			for _, name := range names {
				tbl.Row(name, fmt.Sprint(t.Budgets[name]))
			}
			fmt.Fprintln(w, tbl.Render())
			fmt.Fprintln(w)
			printKeyValue(w, "features", strings.Join(t.Features, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
