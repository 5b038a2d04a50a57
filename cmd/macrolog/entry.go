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

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage manual-tracking entries",
}

var (
	entryDate     string
	entryCalories float64
	entryProtein  float64
	entryCarbs    float64
	entryFats     float64
	entryEstimate bool
	entryGrams    float64
	entryDays     int
)

var entryAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Log a food with explicit or backend-estimated macros",
	Long:  "With --estimate the backend computes macros from the title and --grams; otherwise --calories and at least one macro are required.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(entryDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			modeHint(cmd.OutOrStdout(), sqldb, model.PlanModeManual)

			item, err := service.AddEntry(ctx, client, sqldb, service.AddEntryInput{
				Title:    args[0],
				Date:     date,
				Calories: entryCalories,
				Protein:  entryProtein,
				Carbs:    entryCarbs,
				Fats:     entryFats,
				Estimate: entryEstimate,
				Grams:    entryGrams,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %s  %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				item.ID, item.Title, item.Calories, item.Protein, item.Carbs, item.Fats)
			return nil
		})
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			entries, fromCache, err := service.LoadEntries(ctx, client, sqldb, entryDays)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if fromCache {
				fmt.Fprintln(out, "Backend unreachable; showing cached entries.")
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries")
				return nil
			}
			for _, date := range service.EntryDates(entries) {
				list := entries[date]
				totals := service.EntryTotals(list)
				fmt.Fprintf(out, "%s  (%.0f kcal)\n", date, totals.Calories)
				for _, e := range list {
					fmt.Fprintf(out, "  %-6d %s  %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
						e.ID, e.Title, e.Calories, e.Protein, e.Carbs, e.Fats)
				}
			}
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseInt64Arg("entry-id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			if err := service.DeleteEntry(ctx, client, sqldb, entryID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", entryID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryDeleteCmd)

	entryAddCmd.Flags().StringVar(&entryDate, "date", "", "Entry date YYYY-MM-DD (default today)")
	entryAddCmd.Flags().Float64Var(&entryCalories, "calories", 0, "Calories")
	entryAddCmd.Flags().Float64Var(&entryProtein, "protein", 0, "Protein grams")
	entryAddCmd.Flags().Float64Var(&entryCarbs, "carbs", 0, "Carbs grams")
	entryAddCmd.Flags().Float64Var(&entryFats, "fats", 0, "Fat grams")
	entryAddCmd.Flags().BoolVar(&entryEstimate, "estimate", false, "Let the backend estimate macros")
	entryAddCmd.Flags().Float64Var(&entryGrams, "grams", 0, "Portion size in grams (with --estimate)")

	entryListCmd.Flags().IntVar(&entryDays, "days", 7, "How many days back to list")
}
