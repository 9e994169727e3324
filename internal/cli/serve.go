package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/observability"
	"github.com/matzehuels/beadgraph/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis engine over HTTP",
		Long: `Serve exposes every operation as POST /v1/{operation} with a JSON bead
array as the request body. Results are cached like on the command line.

Routes:
  GET  /healthz
  GET  /v1/operations
  GET  /v1/metrics
  POST /v1/{operation}
  POST /v1/batch/{operation}
  POST /v1/render?format=svg&critical=true`,
		GroupID: groupTools,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			counters := observability.NewCounters()
			observability.SetEngineHooks(counters)
			observability.SetCacheHooks(counters)
			defer observability.Reset()

			srv := server.New(runner, c.Logger, server.WithCounters(counters), server.WithMaxBody(maxBody))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "maximum request body in bytes")
	return cmd
}
