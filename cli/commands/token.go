package commands

import (
	"fmt"
	"time"

	"content-planner/infrastructure/configuration"
	"content-planner/infrastructure/utils"

	"github.com/spf13/cobra"
)

func addToken(topLevel *cobra.Command) {
	var (
		userID   string
		userName string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development bearer token with SECRET_KEY",
		Example: `
export CALCTL_TOKEN=$(calctl token --user-id 42)
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			configuration.LoadEnvFromFile("config.env", ".env")
			configuration.Reload()
			if configuration.C.App.SecretKey == "" {
				return fmt.Errorf("SECRET_KEY is not set")
			}
			token, err := utils.GenerateUserToken(userID, userName, configuration.C.App.SecretKey, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "cli", "Subject of the token.")
	cmd.Flags().StringVar(&userName, "user-name", "", "Optional user_name claim.")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime.")

	topLevel.AddCommand(cmd)
}
