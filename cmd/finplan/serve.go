package main

import (
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.SetFormatter(&logrus.JSONFormatter{})

			engine := calculation.NewPlanningEngine()
			engine.SetLogger(a.logger)
			engine.Debug = a.debug

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(engine, a.logger, server.NewMetrics(true)).ListenAndServe(ctx, a.settings.Addr)
		},
	}
	cmd.Flags().String("addr", config.DefaultAddr, "Listen address")
	return cmd
}
