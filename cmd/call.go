package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/spf13/cobra"
)

var errInvalidCallBody = errors.New("--data must be a JSON object")

func newCallCmd(app *app) *cobra.Command {
	var data, baseURL string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "call <path>",
		Short: "Send one signed request to a running gateway",
		Example: `  agentgate call /trigger-summary --data '{"agent":"agent_slackbot","messages":"..."}'
  agentgate call /github/issue --data '{"agent":"agent_github","repo":"octo/hello","title":"Bug"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := json.RawMessage(strings.TrimSpace(data))
			var object map[string]any
			if err := json.Unmarshal(body, &object); err != nil {
				return errInvalidCallBody
			}

			client := apiclient.Client{
				BaseURL:        baseURL,
				HTTPClient:     app.httpClient,
				RequestTimeout: app.cfg.HTTPTimeout * 2,
				// A retried request would reuse its nonce.
				MaxAttempts: 1,
			}
			req := apiclient.Request{
				Method: http.MethodPost,
				Path:   args[0],
				Body:   body,
				Header: app.replayHeaders(),
			}

			var resp apiclient.Response
			send := func(ctx context.Context) error {
				var err error
				resp, err = client.Do(ctx, req)
				return err
			}

			var err error
			if quiet {
				err = send(cmd.Context())
			} else {
				err = runCallSpinner(cmd.Context(), cmd.ErrOrStderr(), "Calling "+args[0]+"...", send)
			}
			if err != nil {
				return fmt.Errorf("call %s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp.Body); err != nil {
				return err
			}
			if resp.Status >= http.StatusBadRequest {
				return fmt.Errorf("gateway answered %d", resp.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "{}", "JSON request body")
	cmd.Flags().StringVar(&baseURL, "url", app.gatewayURL, "gateway base URL")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show a spinner")

	return cmd
}
