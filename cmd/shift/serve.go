package main

import (
	"shift/internal/ctxlog"
	"shift/internal/rec"
	"shift/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(e *env) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve shifting over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer rec.Wrap(&err, "serve: %w")

			ctx := cmd.Context()
			logger := ctxlog.Get(ctx)

			c := e.cfg.Server
			if cmd.Flags().Changed("port") {
				c.Port = port
			}

			logger.Info("starting server")
			err = server.New(c).Run(ctx)
			if err == nil {
				logger.Info("server gracefully stopped")
			}
			return err
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return cmd
}
