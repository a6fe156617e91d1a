package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agentgate",
		Short:         "agentgate: an authorization gateway between AI agents and SaaS APIs",
		Long:          "agentgate admits agent requests by scope and freshness, resolves the end user's provider credential, and performs Slack, Notion, GitHub and Google Calendar actions on the agent's behalf.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newAgentsCmd(app),
		newTokenCmd(app),
		newConnectCmd(app),
		newSignCmd(app),
		newCallCmd(app),
	)

	return rootCmd
}
