package macrolog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Toggle consumed flags on today's plan",
	Long:  "Toggles apply locally first and then sync to the backend. A failed sync keeps the local change; the next 'macrolog plan show' re-fetches the authoritative state.",
}

var (
	consumeDayID  int64
	consumeMealID int64
)

var consumeMealCmd = &cobra.Command{
	Use:   "meal <meal-id>",
	Short: "Toggle a whole meal (cascades to its foods)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealID, err := parseInt64Arg("meal-id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			modeHint(cmd.OutOrStdout(), sqldb, model.PlanModeWeekly)

			plan, err := client.GetMealPlan(ctx)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("no meal plan yet; run 'macrolog plan generate' first")
			}
			dayID, err := resolveDayID(plan, consumeDayID)
			if err != nil {
				return err
			}

			rec := &service.Reconciler{Syncer: client}
			state, err := rec.ToggleMeal(ctx, plan, dayID, mealID, todayString())
			return reportToggle(cmd, state, err)
		})
	},
}

var consumeFoodCmd = &cobra.Command{
	Use:   "food <food-id>",
	Short: "Toggle one food inside a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		foodID, err := parseInt64Arg("food-id", args[0])
		if err != nil {
			return err
		}
		if consumeMealID <= 0 {
			return fmt.Errorf("--meal is required")
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			modeHint(cmd.OutOrStdout(), sqldb, model.PlanModeWeekly)

			plan, err := client.GetMealPlan(ctx)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("no meal plan yet; run 'macrolog plan generate' first")
			}
			dayID, err := resolveDayID(plan, consumeDayID)
			if err != nil {
				return err
			}

			rec := &service.Reconciler{Syncer: client}
			state, err := rec.ToggleFood(ctx, plan, dayID, consumeMealID, foodID, todayString())
			return reportToggle(cmd, state, err)
		})
	},
}

var consumeDayOff bool

var consumeDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Mark all of today's meals eaten in one call",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			modeHint(cmd.OutOrStdout(), sqldb, model.PlanModeWeekly)

			plan, err := client.GetMealPlan(ctx)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("no meal plan yet; run 'macrolog plan generate' first")
			}

			today := todayString()
			var mealIDs []int64
			for _, day := range plan.Days {
				if day.Date != today {
					continue
				}
				for _, meal := range day.Meals {
					mealIDs = append(mealIDs, meal.ID)
				}
			}
			if len(mealIDs) == 0 {
				return fmt.Errorf("the plan has no meals for %s", today)
			}

			eaten := !consumeDayOff
			if err := client.BulkUpdateConsumed(ctx, mealIDs, eaten); err != nil {
				return fmt.Errorf("bulk update consumed: %w", err)
			}
			verb := "eaten"
			if !eaten {
				verb = "not eaten"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d meals as %s\n", len(mealIDs), verb)
			return nil
		})
	},
}

// resolveDayID defaults to today's plan day when no --day is given.
func resolveDayID(plan *model.MealPlan, explicit int64) (int64, error) {
	if explicit > 0 {
		return explicit, nil
	}
	today := todayString()
	for _, day := range plan.Days {
		if day.Date == today {
			return day.ID, nil
		}
	}
	return 0, fmt.Errorf("the plan has no day for %s; pass --day explicitly", today)
}

func reportToggle(cmd *cobra.Command, state service.ToggleState, err error) error {
	out := cmd.OutOrStdout()
	switch {
	case err == nil:
		fmt.Fprintf(out, "Marked %s\n", toggleLabel(state))
		return nil
	case errors.Is(err, service.ErrNotToday):
		return fmt.Errorf("only today's meals can be changed")
	case errors.Is(err, service.ErrSyncFailed):
		// Local change stands; the backend catches up on the next fetch.
		fmt.Fprintf(out, "Marked %s locally, but the backend sync failed: %v\n", toggleLabel(state), err)
		fmt.Fprintln(out, "Run 'macrolog plan show' later to re-sync with the backend.")
		return nil
	default:
		return err
	}
}

func toggleLabel(state service.ToggleState) string {
	what := fmt.Sprintf("meal %d", state.MealID)
	if state.FoodID > 0 {
		what = fmt.Sprintf("food %d", state.FoodID)
	}
	if state.Eaten {
		return what + " as eaten"
	}
	return what + " as not eaten"
}

func init() {
	rootCmd.AddCommand(consumeCmd)
	consumeCmd.AddCommand(consumeMealCmd, consumeFoodCmd, consumeDayCmd)

	consumeMealCmd.Flags().Int64Var(&consumeDayID, "day", 0, "Plan day id (default today's day)")
	consumeFoodCmd.Flags().Int64Var(&consumeDayID, "day", 0, "Plan day id (default today's day)")
	consumeFoodCmd.Flags().Int64Var(&consumeMealID, "meal", 0, "Meal id containing the food")
	consumeDayCmd.Flags().BoolVar(&consumeDayOff, "off", false, "Mark as not eaten instead")
}
