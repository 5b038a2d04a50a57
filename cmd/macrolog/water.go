package macrolog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emres/macrolog/internal/api"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Show or set the day's water intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			stats, err := client.DailyStatistics(ctx, date, false)
			if err != nil {
				return err
			}
			printGoalActual(cmd, "Water", stats.Totals.Water, "ml")
			return nil
		})
	},
}

var (
	waterAmount int
	waterDate   string
)

var waterSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the day's absolute water amount in milliliters",
	RunE: func(cmd *cobra.Command, args []string) error {
		if waterAmount < 0 {
			return fmt.Errorf("--ml must be >= 0")
		}
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			out := cmd.OutOrStdout()
			if err := client.UpdateWater(ctx, waterAmount, date); err != nil {
				// Re-fetch so the user sees the value that actually stuck.
				if stats, statsErr := client.DailyStatistics(ctx, date, false); statsErr == nil {
					fmt.Fprintf(out, "Update failed; backend still has %.0f ml\n", stats.Totals.Water.Actual)
				}
				return fmt.Errorf("update water: %w", err)
			}
			fmt.Fprintf(out, "Water set to %d ml for %s\n", waterAmount, date)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterSetCmd)

	waterCmd.PersistentFlags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	waterSetCmd.Flags().IntVar(&waterAmount, "ml", 0, "Absolute water amount in milliliters")
	_ = waterSetCmd.MarkFlagRequired("ml")
}
