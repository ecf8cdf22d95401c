package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := openPool(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(cmd.Context(), pool)
			if err != nil {
				return err
			}
			e.log.Info("migrations applied", zap.Strings("files", applied))
			return nil
		},
	}
}
