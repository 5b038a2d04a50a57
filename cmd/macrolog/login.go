package macrolog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/emres/macrolog/internal/service"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend and store the session tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(loginUsername) == "" || loginPassword == "" {
			return fmt.Errorf("both --username and --password are required")
		}
		return withDB(func(sqldb *sql.DB) error {
			client := anonClient()
			pair, err := client.Login(context.Background(), loginUsername, loginPassword)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := service.SaveTokens(sqldb, pair.Access, pair.Refresh); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", loginUsername)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearTokens(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)

	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Backend username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Backend password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
