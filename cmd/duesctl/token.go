package main

import (
	"fmt"

	"github.com/aria7-op/School-MIS-sub029/app/routes/auth"
	"github.com/spf13/cobra"
)

func (c *cli) tokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		roles  []string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.GenerateJWT(c.cfg.JWTSecret, userID, email, c.schoolID, roles)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "duesctl", "user id claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{"accountant"}, "role claims")
	return cmd
}
