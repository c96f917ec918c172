package cmd

import (
	"os/signal"
	"syscall"

	"menurate/internal/data/migration"
	"menurate/internal/wire"
	"menurate/pkg/database"
	"menurate/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCommand(app *appContext) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.logger
			config := app.config

			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("port", config.App.Port),
				zap.Bool("debug", config.App.Debug),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := config.Validate(); err != nil {
				logger.Error("Invalid configuration", zap.Error(err))
				return err
			}

			// Connect to database
			db, err := database.InitDB(config.Database)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()

			logger.Info("Database connected successfully")

			if migrate {
				if err := migration.Apply(ctx, db); err != nil {
					logger.Error("Failed to apply schema", zap.Error(err))
					return err
				}
				logger.Info("Schema applied")
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m, err := metrics.New(registry)
			if err != nil {
				return err
			}

			// Wire all dependencies
			server, err := wire.Wiring(db, config, logger, m)
			if err != nil {
				logger.Error("Failed to wire application", zap.Error(err))
				return err
			}

			return APIServer(ctx, server.Router, config.App.Port, logger)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply the schema before serving")

	return cmd
}
