package main

import (
	"fmt"

	"sluice-scada/internal/repository"
	"sluice-scada/internal/service"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		if username == "" {
			return fmt.Errorf("--username is required")
		}
		hash, err := service.HashPassword(password)
		if err != nil {
			return err
		}

		users := repository.NewPostgresUsersRepository(db)
		id, err := users.CreateUser(cmd.Context(), username, hash, role)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "username": username, "role": role})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d, role %s)\n", username, id, role)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().String("username", "", "login name")
	userCreateCmd.Flags().String("password", "", "initial password")
	userCreateCmd.Flags().String("role", "operator", "role (operator, admin)")

	userCmd.AddCommand(userCreateCmd)
}
