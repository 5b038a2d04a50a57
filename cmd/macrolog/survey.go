package macrolog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/spf13/cobra"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Inspect and adjust the onboarding survey",
	Long:  "The survey feeds the backend's recommended goals. Values set here flow into 'macrolog goal show' unless custom goals are committed.",
}

var (
	surveyCalories float64
	surveyProtein  float64
	surveyCarbs    float64
	surveyFats     float64
)

var surveyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the survey has been completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			completed, err := client.CheckSurveyStatus(ctx)
			if err != nil {
				return err
			}
			if completed {
				fmt.Fprintln(cmd.OutOrStdout(), "Survey completed")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Survey not completed")
			}
			return nil
		})
	},
}

var surveyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the survey values that feed recommended goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			survey, err := client.GetSurvey(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if survey == nil {
				fmt.Fprintln(out, "No survey submitted yet")
				return nil
			}
			fmt.Fprintf(out, "Calorie intake: %.0f kcal\n", survey.CalorieIntake)
			if len(survey.Macros) > 0 {
				fmt.Fprintf(out, "Macros: %s\n", string(survey.Macros))
			}
			if survey.WakeTime != "" {
				fmt.Fprintf(out, "Wake: %s  Sleep: %s\n", survey.WakeTime, survey.SleepTime)
			}
			return nil
		})
	},
}

var surveySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update survey calorie and macro values",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]any{}
		if cmd.Flags().Changed("calories") {
			fields["calorie_intake"] = surveyCalories
		}
		if cmd.Flags().Changed("protein") || cmd.Flags().Changed("carbs") || cmd.Flags().Changed("fats") {
			macros, err := json.Marshal(model.SurveyMacros{
				Protein: surveyProtein,
				Carbs:   surveyCarbs,
				Fats:    surveyFats,
			})
			if err != nil {
				return fmt.Errorf("encode macros: %w", err)
			}
			fields["macros"] = json.RawMessage(macros)
		}
		if len(fields) == 0 {
			return fmt.Errorf("set at least one flag")
		}
		return withClient(func(ctx context.Context, sqldb *sql.DB, client *api.Client) error {
			if err := client.UpdateSurvey(ctx, fields); err != nil {
				return fmt.Errorf("update survey: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d survey field(s)\n", len(fields))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(surveyCmd)
	surveyCmd.AddCommand(surveyStatusCmd, surveyShowCmd, surveySetCmd)

	surveySetCmd.Flags().Float64Var(&surveyCalories, "calories", 0, "Daily calorie intake")
	surveySetCmd.Flags().Float64Var(&surveyProtein, "protein", 0, "Protein grams")
	surveySetCmd.Flags().Float64Var(&surveyCarbs, "carbs", 0, "Carbs grams")
	surveySetCmd.Flags().Float64Var(&surveyFats, "fats", 0, "Fat grams")
}
