package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/source"
)

// mongoCommand syncs bead files with the configured MongoDB collection.
func (c *CLI) mongoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mongo",
		Short:   "Copy beads between files and MongoDB",
		GroupID: groupTools,
	}
	cmd.AddCommand(c.mongoPushCommand())
	cmd.AddCommand(c.mongoPullCommand())
	return cmd
}

func (c *CLI) mongoPushCommand() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Replace the collection's beads with the beads in file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, label, err := c.load(ctx, &in, args)
			if err != nil {
				return err
			}
			items, err := bead.Decode(raw)
			if err != nil {
				return err
			}

			name, err := c.withMongo(ctx, "Pushing beads...", func(ctx context.Context, m *source.Mongo) error {
				return m.Replace(ctx, items)
			})
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Pushed %d beads from %s", len(items), label)
			printDetail(cmd.OutOrStdout(), "%s", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.format, "input-format", string(source.FormatJSON), "stdin encoding: json or toml")
	return cmd
}

func (c *CLI) mongoPullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Print the collection's beads as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var items []bead.Item
			_, err := c.withMongo(ctx, "Pulling beads...", func(ctx context.Context, m *source.Mongo) error {
				var err error
				items, err = source.Items(ctx, m)
				return err
			})
			if err != nil {
				return err
			}
			return bead.WriteJSON(cmd.OutOrStdout(), items)
		},
	}
}

// withMongo connects to the configured collection, runs fn under a
// spinner and disconnects.
func (c *CLI) withMongo(ctx context.Context, msg string, fn func(context.Context, *source.Mongo) error) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, msg)
	spinner.Start()
	defer spinner.Stop()

	m, err := source.NewMongo(ctx, c.Config.Mongo.source())
	if err != nil {
		return "", err
	}
	defer m.Close(context.Background())

	if err := fn(ctx, m); err != nil {
		return "", err
	}
	return m.Name(), nil
}
