package macrolog

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath  string
	envPath string
)

var rootCmd = &cobra.Command{
	Use:   "macrolog",
	Short: "macrolog tracks meal plans, macros, and goals from your terminal",
	Long:  "macrolog is a terminal client for a diet-tracking backend: weekly meal plans, manual calorie entries, goals, water, weight, and a nutrition chat assistant, with a local cache for offline reads.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite cache database")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", "Path to env file with backend settings")
}
