package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var userPassword string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Create a verified admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := userPassword
		if password == "" {
			password = os.Getenv("SHOWCASE_PASSWORD")
		}
		if password == "" {
			return errors.New("set --password or SHOWCASE_PASSWORD")
		}

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		actor, err := app.Users.Add(cmd.Context(), args[0], password, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", actor.Email, actor.ID)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "account password (min 8 characters)")
	userCmd.AddCommand(userAddCmd)
}
