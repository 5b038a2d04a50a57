package macrolog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emres/macrolog/internal/api"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show intake statistics",
	Long:  "Statistics come from the backend already aggregated. --manual reads the manual-tracking series instead of the meal-plan series.",
}

var (
	statsDate   string
	statsManual bool
)

var statsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show one day's intake against goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(statsDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			stats, err := client.DailyStatistics(ctx, date, statsManual)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", stats.Date)
			printGoalActual(cmd, "Calories", stats.Totals.Calories, "kcal")
			printGoalActual(cmd, "Protein", stats.Totals.Protein, "g")
			printGoalActual(cmd, "Carbs", stats.Totals.Carbs, "g")
			printGoalActual(cmd, "Fat", stats.Totals.Fats, "g")
			printGoalActual(cmd, "Water", stats.Totals.Water, "ml")
			if stats.Weight != nil {
				fmt.Fprintf(out, "Weight: %.1f kg\n", *stats.Weight)
			}
			return nil
		})
	},
}

var statsWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the current week's series",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			stats, err := client.WeeklyStatistics(ctx, statsManual)
			if err != nil {
				return err
			}
			printRange(cmd, stats)
			return nil
		})
	},
}

var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show the current month's series",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			stats, err := client.MonthlyStatistics(ctx, statsManual)
			if err != nil {
				return err
			}
			printRange(cmd, stats)
			return nil
		})
	},
}

func printGoalActual(cmd *cobra.Command, label string, ga api.GoalActual, unit string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f/%.0f %s\n", label, ga.Actual, ga.Goal, unit)
}

// printRange walks the parallel arrays; missing tail values print blank
// rather than panic when the backend returns ragged series.
func printRange(cmd *cobra.Command, stats *api.RangeStatistics) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "DATE\tKCAL\tGOAL\tP\tC\tF\tWATER\tWEIGHT")
	for i, date := range stats.Dates {
		weight := "-"
		if i < len(stats.Weight) && stats.Weight[i] != nil {
			weight = fmt.Sprintf("%.1f", *stats.Weight[i])
		}
		fmt.Fprintf(out, "%s\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%.0f\t%s\n",
			date,
			at(stats.Calories.Actual, i),
			at(stats.Calories.Goal, i),
			at(stats.Macros.Protein, i),
			at(stats.Macros.Carbs, i),
			at(stats.Macros.Fats, i),
			at(stats.Water.Actual, i),
			weight)
	}
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsDailyCmd, statsWeeklyCmd, statsMonthlyCmd)

	statsCmd.PersistentFlags().BoolVar(&statsManual, "manual", false, "Use the manual-tracking series")
	statsDailyCmd.Flags().StringVar(&statsDate, "date", "", "Date YYYY-MM-DD (default today)")
}
