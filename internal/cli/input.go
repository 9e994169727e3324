package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/source"
)

// inputOpts are the flags shared by every command that reads beads.
type inputOpts struct {
	format  string // encoding of stdin: json or toml
	mongo   bool   // read the configured MongoDB collection instead of a file
	noCache bool
	refresh bool
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "input-format", string(source.FormatJSON), "stdin encoding: json or toml")
	cmd.Flags().BoolVar(&o.mongo, "mongo", false, "read beads from the configured MongoDB collection")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute and overwrite cached results")
}

// inputArgs accepts one file argument, or none when --mongo is set.
func (o *inputOpts) inputArgs(cmd *cobra.Command, args []string) error {
	if o.mongo {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.ExactArgs(1)(cmd, args)
}

// load returns the raw JSON bead array and a label for logs.
func (c *CLI) load(ctx context.Context, o *inputOpts, args []string) ([]byte, string, error) {
	if o.mongo {
		return c.loadMongo(ctx)
	}

	f := source.Format(o.format)
	if f != source.FormatJSON && f != source.FormatTOML {
		return nil, "", fmt.Errorf("invalid --input-format %q (want json or toml)", o.format)
	}
	src := source.Open(args[0], c.stdin, f)
	raw, err := src.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	return raw, src.Name(), nil
}

func (c *CLI) loadMongo(ctx context.Context) ([]byte, string, error) {
	var raw []byte
	name, err := c.withMongo(ctx, "Loading beads from MongoDB...", func(ctx context.Context, m *source.Mongo) error {
		var err error
		raw, err = m.Load(ctx)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return raw, name, nil
}
