package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func newPlanCmd(e *env) *cobra.Command {
	var (
		userID int64
		days   int
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a user's study schedule as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == 0 {
				return errors.New("--user is required")
			}

			a, err := newApp(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer a.Close()

			plans, err := a.schedule.GenerateSchedule(cmd.Context(), userID, days)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plans)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Telegram user ID")
	cmd.Flags().IntVar(&days, "days", 0, "number of days to plan (default from config)")

	return cmd
}
