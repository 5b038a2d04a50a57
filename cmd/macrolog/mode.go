package macrolog

import (
	"database/sql"
	"fmt"

	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or change the tracking mode",
	Long:  "The tracking mode selects between the backend-generated weekly plan (weeklyPlan) and self-logged entries (manualTracking). It is a local preference; both data sets stay on the backend either way.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), service.PlanMode(sqldb))
			return nil
		})
	},
}

var modeSetCmd = &cobra.Command{
	Use:   "set <weeklyPlan|manualTracking>",
	Short: "Set the tracking mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := model.PlanMode(args[0])
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SavePlanMode(sqldb, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking mode set to %s\n", mode)
			return nil
		})
	},
}

var modeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch to the other tracking mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			next, err := service.TogglePlanMode(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking mode set to %s\n", next)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	modeCmd.AddCommand(modeSetCmd, modeToggleCmd)
}
