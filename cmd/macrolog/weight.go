package macrolog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/emres/macrolog/internal/api"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log and review body weight",
}

var (
	weightNotes string
	weightDate  string
	weightLimit int
)

var weightLogCmd = &cobra.Command{
	Use:   "log <kg>",
	Short: "Log a weight measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[0])
		}
		date, err := parseDateOrToday(weightDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			if err := client.LogWeight(ctx, kg, weightNotes, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f kg for %s\n", kg, date)
			return nil
		})
	},
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent weight measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			entries, err := client.WeightHistory(ctx, weightLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No weight entries")
				return nil
			}
			fmt.Fprintln(out, "DATE\tKG\tNOTES")
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%.1f\t%s\n", e.Date, e.Weight, e.Notes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightLogCmd, weightHistoryCmd)

	weightLogCmd.Flags().StringVar(&weightNotes, "notes", "", "Optional note")
	weightLogCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightHistoryCmd.Flags().IntVar(&weightLimit, "limit", 30, "Maximum entries to show")
}
