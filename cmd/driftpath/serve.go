package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/driftpath/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Server
			if addr != "" {
				sc.Addr = addr
			}
			s := server.New(sc,
				server.WithLogger(a.logger),
				server.WithSearch(a.cfg.Search),
			)

			return s.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
