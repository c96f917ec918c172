package cmd

import (
	"fmt"

	"menurate/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appContext is filled by the root command before any subcommand runs.
type appContext struct {
	config *utils.Config
	logger *zap.Logger
	debug  bool
}

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	app := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "menurate",
		Short:         "Menurate review interaction API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.debug, "debug", "d", false, "Enable debug logging (overrides DEBUG)")

	serveCmd := serveCommand(app)
	rootCmd.AddCommand(
		serveCmd,
		migrateCommand(app),
		verifyCountersCommand(app),
	)

	// Running without a subcommand starts the server
	rootCmd.RunE = serveCmd.RunE

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.initialize()
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}

	return rootCmd
}

func (a *appContext) initialize() error {
	config, err := utils.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.debug {
		config.App.Debug = true
	}
	a.config = config

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("Failed to init file logger, using stdout only", zap.Error(err))
	}
	a.logger = logger

	return nil
}

// Execute runs the root command
func Execute() error {
	return RootCommand().Execute()
}
