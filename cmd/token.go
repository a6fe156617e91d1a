package cmd

import (
	"fmt"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage static provider token overrides",
		Long:  "Override tokens win over broker connections. They are looked up in the DEMO_BEARER_TOKEN_* variables, then pass, then the tokens directory.",
	}

	cmd.AddCommand(
		newTokenSetCmd(app),
		newTokenRemoveCmd(app),
	)

	return cmd
}

func newTokenSetCmd(app *app) *cobra.Command {
	var providerName, value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store an override token for a provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := domain.ParseProvider(providerName)
			if err != nil {
				return err
			}

			if err := app.tokens.Put(cmd.Context(), provider, value); err != nil {
				return fmt.Errorf("store %s token: %w", provider, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s token\n", provider.DisplayName())
			return err
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "", "provider (slack, notion, github, gcal)")
	cmd.Flags().StringVar(&value, "value", "", "bearer token")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newTokenRemoveCmd(app *app) *cobra.Command {
	var providerName string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a stored override token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := domain.ParseProvider(providerName)
			if err != nil {
				return err
			}

			if err := app.tokens.Delete(cmd.Context(), provider); err != nil {
				return fmt.Errorf("remove %s token: %w", provider, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s token\n", provider.DisplayName())
			return err
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "", "provider (slack, notion, github, gcal)")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}
