package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/spf13/cobra"
)

var errBrokerNotConfigured = errors.New("credential broker is not configured (set DESCOPE_PROJECT_ID and DESCOPE_AUTH_MANAGEMENT_KEY)")

func newConnectCmd(app *app) *cobra.Command {
	var providerName, user, tenant string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Start a broker connection for a user and print the consent URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := domain.ParseProvider(providerName)
			if err != nil {
				return err
			}
			if !app.broker.Configured() {
				return errBrokerNotConfigured
			}

			start, err := app.broker.StartConnect(cmd.Context(), provider, domain.NewIdentity(user, tenant))
			if err != nil {
				return fmt.Errorf("start %s connection: %w", provider, err)
			}
			if !start.OK || start.URL == "" {
				return fmt.Errorf("start %s connection: broker answered with status %d", provider, start.Status)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), start.URL)
			return err
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "", "provider (slack, notion, github, gcal)")
	cmd.Flags().StringVar(&user, "user", domain.DefaultUserID, "end-user login id")
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}
