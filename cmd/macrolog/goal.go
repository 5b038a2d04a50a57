package macrolog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show and manage daily nutrition goals",
}

var (
	goalCalories float64
	goalProtein  float64
	goalCarbs    float64
	goalFats     float64
	goalWater    float64
)

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the goals in effect",
	Long:  "Custom goals win when committed; otherwise recommended goals with any survey-derived overrides. Unreachable backend falls back to the stock defaults.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			resolver := &service.GoalResolver{Fetcher: client}
			goals := resolver.Resolve(ctx)

			out := cmd.OutOrStdout()
			source := "recommended"
			if goals.IsCustom {
				source = "custom"
			}
			fmt.Fprintf(out, "Source: %s\n", source)
			fmt.Fprintf(out, "Calories: %s kcal\n", service.FormatGoal(goals.DailyCalorie))
			fmt.Fprintf(out, "Protein: %sg\n", service.FormatGoal(goals.Protein))
			fmt.Fprintf(out, "Carbs: %sg\n", service.FormatGoal(goals.Carbs))
			fmt.Fprintf(out, "Fat: %sg\n", service.FormatGoal(goals.Fats))
			fmt.Fprintf(out, "Water: %s ml\n", service.FormatGoal(goals.WaterGoal))
			return nil
		})
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Commit custom goals, overriding the recommended set",
	RunE: func(cmd *cobra.Command, args []string) error {
		if goalCalories <= 0 {
			return fmt.Errorf("--calories must be > 0")
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			goals := model.UserGoals{
				DailyCalorie: goalCalories,
				Protein:      goalProtein,
				Carbs:        goalCarbs,
				Fats:         goalFats,
				WaterGoal:    goalWater,
				IsCustom:     true,
			}
			if err := client.UpdateCustomGoals(ctx, goals); err != nil {
				return fmt.Errorf("update custom goals: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Custom goals saved")
			return nil
		})
	},
}

var goalRecommendedCmd = &cobra.Command{
	Use:   "recommended",
	Short: "Revert to the backend-recommended goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			if err := client.UpdateCustomGoals(ctx, model.UserGoals{IsCustom: false}); err != nil {
				return fmt.Errorf("revert to recommended goals: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reverted to recommended goals")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalShowCmd, goalSetCmd, goalRecommendedCmd)

	goalSetCmd.Flags().Float64Var(&goalCalories, "calories", 0, "Daily calorie target")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target grams")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs target grams")
	goalSetCmd.Flags().Float64Var(&goalFats, "fats", 0, "Daily fat target grams")
	goalSetCmd.Flags().Float64Var(&goalWater, "water", 0, "Daily water target milliliters")
	_ = goalSetCmd.MarkFlagRequired("calories")
}
