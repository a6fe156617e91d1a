package cmd

import (
	"encoding/json"
	"fmt"

	agentsrender "github.com/bnema/agentgate/internal/adapters/render/agents"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/spf13/cobra"
)

func newAgentsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Inspect and edit the agent authorization table",
	}

	cmd.AddCommand(
		newAgentsListCmd(app),
		newAgentsCheckCmd(app),
		newAgentsGrantCmd(app),
	)

	return cmd
}

type agentGrantOutput struct {
	Agent   string   `json:"agent"`
	Actions []string `json:"actions"`
}

func newAgentsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show which agent may perform which action",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := app.policies.Load(cmd.Context())
			if err != nil {
				return err
			}
			grants := snapshot.Table.Grants()

			if asJSON {
				out := make([]agentGrantOutput, 0, len(grants))
				for _, grant := range grants {
					actions := make([]string, 0, len(grant.Actions))
					for _, action := range grant.Actions {
						actions = append(actions, string(action))
					}
					out = append(out, agentGrantOutput{Agent: string(grant.Agent), Actions: actions})
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			rendered, err := app.agentsRenderer(grants, agentsrender.RenderOptions{
				Source:   app.policyPath,
				Fallback: snapshot.Fallback,
			})
			if err != nil {
				return fmt.Errorf("render agents: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")

	return cmd
}

func newAgentsCheckCmd(app *app) *cobra.Command {
	var agent, action string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an agent may perform an action",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.policies.Check(cmd.Context(), agent, action)
			if err != nil {
				return err
			}
			if !allowed {
				return fmt.Errorf("%w: agent %q action %q", domain.ErrAuthorizationDenied, agent, action)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "allowed: %s may %s\n", agent, action)
			return err
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "agent id")
	cmd.Flags().StringVar(&action, "action", "", "action name")
	_ = cmd.MarkFlagRequired("agent")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

func newAgentsGrantCmd(app *app) *cobra.Command {
	var agent, action string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Allow an agent to perform an action",
		Long:  "grant adds an action to an agent in the agents file. A running gateway picks the change up on restart.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.policies.Grant(cmd.Context(), agent, action); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "granted %s to %s in %s\n", action, agent, app.policyPath)
			return err
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "agent id")
	cmd.Flags().StringVar(&action, "action", "", "action name")
	_ = cmd.MarkFlagRequired("agent")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}
