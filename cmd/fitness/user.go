// ABOUTME: CLI commands for administering user accounts.
// ABOUTME: Adds users, checks credentials, and lists registered accounts.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/account"
	"github.com/spf13/cobra"
)

var userPassword string

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"u"},
	Short:   "Manage user accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Register a user",
	Long: `Register a user, the same as submitting the signup form.

EXAMPLES:

  fitness user add Ann ann@example.com --password secret`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := accounts.Register(cmd.Context(), args[0], args[1], userPassword)
		if errors.Is(err, account.ErrDuplicateEmail) {
			return fmt.Errorf("%s: %w", args[1], err)
		}
		if err != nil {
			return fmt.Errorf("failed to register user: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Registered %s <%s>\n", u.Name, u.Email)
		return nil
	},
}

var userCheckCmd = &cobra.Command{
	Use:   "check <email>",
	Short: "Check a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := accounts.Authenticate(cmd.Context(), args[0], userPassword)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Credentials valid for %s\n", u.Name)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := db.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, u := range users {
			fmt.Fprintf(out, "%s %s %s\n", faint.Sprintf("%4d", u.ID), padRight(u.Name, 20), u.Email)
		}
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "account password")
	_ = userAddCmd.MarkFlagRequired("password")
	userCheckCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password to check")
	_ = userCheckCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userCheckCmd)
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}
