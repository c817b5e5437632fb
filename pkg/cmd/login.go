package cmd

import (
	"errors"

	"github.com/edgehub-io/cli/pkg/api"
	"github.com/edgehub-io/cli/pkg/cfg"
	"github.com/spf13/cobra"
)

func NewLoginCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token for cloud access",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("no token given, use --token")
			}
			client := api.New(cfg.APIURL(), token)
			user, err := client.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			if err := cfg.SetAuthToken(token); err != nil {
				return err
			}
			cmd.Printf("logged in as %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "API token from the dashboard")
	return cmd
}

func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ClearAuthToken(); err != nil {
				return err
			}
			cmd.Println("logged out")
			return nil
		},
	}
}

func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			user, err := client.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("username: %s\n", user.Username)
			if user.Email != "" {
				cmd.Printf("email:    %s\n", user.Email)
			}
			cmd.Printf("api:      %s\n", cfg.APIURL())
			return nil
		},
	}
}
