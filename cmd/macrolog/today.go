package macrolog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and goal progress",
	Long:  "The summary follows the tracking mode: weeklyPlan reads consumed foods from the meal plan against the plan's daily goals; manualTracking reads logged entries against the resolved user goals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			if service.PlanMode(sqldb) == model.PlanModeManual {
				return manualToday(ctx, cmd, sqldb, client)
			}
			return planToday(ctx, cmd, client)
		})
	},
}

func planToday(ctx context.Context, cmd *cobra.Command, client *api.Client) error {
	plan, err := client.GetMealPlan(ctx)
	if err != nil {
		return err
	}
	days, focus := service.BuildWindow(plan, time.Now(), service.FallbackFirst)
	day := days[focus]

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Date: %s (plan day %d)\n", day.Date, day.DayNumber)
	consumed := service.ConsumedMacros(day)
	printTotals(out, "Consumed", consumed)
	fmt.Fprintf(out, "Goal: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
		day.DailyTotal.Calorie, day.DailyTotal.Protein, day.DailyTotal.Carbohydrate, day.DailyTotal.Fat)
	fmt.Fprintf(out, "Progress: %d%%\n", service.ProgressPercent(consumed.Calories, day.DailyTotal.Calorie))
	return nil
}

func manualToday(ctx context.Context, cmd *cobra.Command, sqldb *sql.DB, client *api.Client) error {
	entries, fromCache, err := service.LoadEntries(ctx, client, sqldb, 1)
	if err != nil {
		return err
	}
	goals := (&service.GoalResolver{Fetcher: client}).Resolve(ctx)

	out := cmd.OutOrStdout()
	today := todayString()
	fmt.Fprintf(out, "Date: %s (manual tracking)\n", today)
	if fromCache {
		fmt.Fprintln(out, "Backend unreachable; totals come from cached entries.")
	}
	totals := service.EntryTotals(entries[today])
	printTotals(out, "Logged", totals)
	fmt.Fprintf(out, "Goal: %s kcal | P %sg | C %sg | F %sg\n",
		service.FormatGoal(goals.DailyCalorie), service.FormatGoal(goals.Protein),
		service.FormatGoal(goals.Carbs), service.FormatGoal(goals.Fats))
	fmt.Fprintf(out, "Progress: %d%%\n", service.ProgressPercent(totals.Calories, goals.DailyCalorie))
	return nil
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
