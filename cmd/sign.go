package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bnema/agentgate/internal/adapters/transport/httpapi"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSignCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print a fresh X-Timestamp/X-Nonce header pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := app.replayHeaders()

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					httpapi.HeaderTimestamp: header.Get(httpapi.HeaderTimestamp),
					httpapi.HeaderNonce:     header.Get(httpapi.HeaderNonce),
				})
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n%s: %s\n",
				httpapi.HeaderTimestamp, header.Get(httpapi.HeaderTimestamp),
				httpapi.HeaderNonce, header.Get(httpapi.HeaderNonce))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the headers as a JSON object")

	return cmd
}

func (a *app) replayHeaders() http.Header {
	header := http.Header{}
	header.Set(httpapi.HeaderTimestamp, strconv.FormatInt(a.now().Unix(), 10))
	header.Set(httpapi.HeaderNonce, uuid.NewString())
	return header
}
