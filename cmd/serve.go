package main

import (
	"github.com/spf13/cobra"

	server "crop-doctor/internal/server/http"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			srv := server.New(a.services, server.Options{
				Addr:           addr,
				UploadMaxBytes: a.cfg.UploadMaxBytes,
				Release:        a.cfg.Env.IsProduction(),
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
