package cmd

import (
	"menurate/internal/data/migration"
	"menurate/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCommand(app *appContext) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the ledger tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				_, err := cmd.OutOrStdout().Write([]byte(migration.Schema()))
				return err
			}

			db, err := database.InitDB(app.config.Database)
			if err != nil {
				app.logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()

			if err := migration.Apply(cmd.Context(), db); err != nil {
				app.logger.Error("Failed to apply schema", zap.Error(err))
				return err
			}

			app.logger.Info("Schema applied")
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema instead of applying it")

	return cmd
}
