package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/engine"
	"github.com/matzehuels/beadgraph/pkg/errors"
	"github.com/matzehuels/beadgraph/pkg/source"
)

// batchEntry is one line of batch output.
type batchEntry struct {
	Input  string          `json:"input"`
	Cached bool            `json:"cached"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *batchError     `json:"error,omitempty"`
}

type batchError struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (c *CLI) batchCommand() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:   "batch <operation> <file>...",
		Short: "Run one operation over many bead files in parallel",
		Long: `Batch runs an operation over every file and prints a JSON array with one
entry per file, in argument order. A file that fails to load or analyse
gets an error entry; the remaining files are still processed.`,
		Example: `  beadgraph batch critical_path sprint-*.json`,
		GroupID: groupTools,
		Args:    cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			var names []string
			for _, info := range engine.Operations() {
				names = append(names, string(info.Name)+"\t"+info.Summary)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			op, err := engine.Parse(args[0])
			if err != nil {
				return err
			}
			files := args[1:]

			entries := make([]batchEntry, len(files))
			inputs := make([][]byte, 0, len(files))
			loaded := make([]int, 0, len(files))
			for i, path := range files {
				entries[i].Input = path
				raw, err := source.File{Path: path}.Load(ctx)
				if err != nil {
					entries[i].Error = toBatchError(err)
					continue
				}
				inputs = append(inputs, raw)
				loaded = append(loaded, i)
			}

			runner, err := c.newRunner(ctx, in.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Refresh = in.refresh

			prog := newProgress(logger)
			results, err := runner.Batch(ctx, op, inputs)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("analysed %d files", len(inputs)), "op", op)

			for j, res := range results {
				e := &entries[loaded[j]]
				e.Cached = res.Hit
				if res.Err != nil {
					e.Error = toBatchError(res.Err)
					continue
				}
				e.Result = res.Output
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		},
	}

	cmd.Flags().BoolVar(&in.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&in.refresh, "refresh", false, "recompute and overwrite cached results")
	return cmd
}

func toBatchError(err error) *batchError {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &batchError{Code: code, Message: errors.UserMessage(err)}
}
