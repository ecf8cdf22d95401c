package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyplanner/internal/config"
	"github.com/aliskhannn/studyplanner/internal/logger"
)

// env is what every subcommand gets after the root has loaded config and logger.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "Study planner bot: daily plans, spaced repetition and streaks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			e.cfg, e.log = cfg, log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	root.AddCommand(
		newServeCmd(e),
		newPlanCmd(e),
		newMigrateCmd(e),
	)

	return root
}
