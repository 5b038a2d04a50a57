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

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show or regenerate the weekly meal plan",
}

var planShowFoods bool

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the plan's day window with consumed totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			modeHint(cmd.OutOrStdout(), sqldb, model.PlanModeWeekly)

			plan, err := client.GetMealPlan(ctx)
			if err != nil {
				return err
			}
			days, focus := service.BuildWindow(plan, time.Now(), service.FallbackLast)
			if plan == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No meal plan yet; showing an empty week. Run 'macrolog plan generate' to create one.")
			}
			printDays(cmd, days, focus, planShowFoods)
			return nil
		})
	},
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the backend to build a fresh weekly plan",
	Long:  "Generation replaces any existing plan wholesale, consumed flags included. The backend owns all plan content; nothing is computed locally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			plan, err := client.GenerateMealPlan(ctx)
			if err != nil {
				return fmt.Errorf("generate meal plan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated plan starting %s with %d days\n", plan.WeekStartDate, len(plan.Days))
			return nil
		})
	},
}

func printDays(cmd *cobra.Command, days []model.Day, focus int, showFoods bool) {
	out := cmd.OutOrStdout()
	for i, day := range days {
		marker := " "
		if i == focus {
			marker = ">"
		}
		consumed := service.ConsumedMacros(day)
		fmt.Fprintf(out, "%s Day %d  %s  %.0f/%.0f kcal (%d%%)\n",
			marker, day.DayNumber, day.Date,
			consumed.Calories, day.DailyTotal.Calorie,
			service.ProgressPercent(consumed.Calories, day.DailyTotal.Calorie))
		for _, meal := range day.Meals {
			name := meal.DisplayedName
			if name == "" {
				name = meal.Name
			}
			eaten := " "
			if meal.Consumed {
				eaten = "x"
			}
			totals := service.MealTotals(meal)
			fmt.Fprintf(out, "    [%s] %-6d %s (%s) %.0f kcal\n", eaten, meal.ID, name, meal.MealTime, totals.Calories)
			if !showFoods {
				continue
			}
			for _, food := range meal.Foods {
				eaten := " "
				if food.Consumed {
					eaten = "x"
				}
				fmt.Fprintf(out, "        [%s] %-6d %s  %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
					eaten, food.ID, food.Name, food.Calories, food.Protein, food.Carbs, food.Fats)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planShowCmd, planGenerateCmd)

	planShowCmd.Flags().BoolVar(&planShowFoods, "foods", false, "List individual foods under each meal")
}
