package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitekit/app"
	"github.com/dmitrymomot/sitekit/core/config"
	"github.com/dmitrymomot/sitekit/core/logger"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg app.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					a.Logger().Error("failed to release resources", logger.Error(err))
				}
			}()

			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides SERVER_ADDR)")
	return cmd
}
