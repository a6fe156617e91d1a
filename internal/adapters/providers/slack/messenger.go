package slack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const (
	DefaultBaseURL  = "https://slack.com/api"
	maxChannelPages = 20
	channelPageSize = 1000
)

// Errors after which the bot joins the channel and posts once more.
var joinableErrors = map[string]bool{
	"not_in_channel":    true,
	"channel_not_found": true,
	"is_archived":       true,
}

type Messenger struct {
	client apiclient.Client
}

var _ ports.Messenger = (*Messenger)(nil)

func NewMessenger(client apiclient.Client) *Messenger {
	if client.BaseURL == "" {
		client.BaseURL = DefaultBaseURL
	}

	return &Messenger{client: client}
}

func (m *Messenger) PostMessage(ctx context.Context, token, channel, text string) (domain.ProviderResult, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, "xox") {
		return domain.ProviderResult{
			OK:      false,
			Status:  http.StatusUnauthorized,
			Payload: map[string]any{"error": "invalid_auth", "message": "Missing or bad Slack token"},
		}, nil
	}

	auth, err := m.call(ctx, token, "auth.test", map[string]any{})
	if err != nil {
		return domain.ProviderResult{}, err
	}
	if !slackOK(auth) {
		return result(auth), nil
	}

	channelID, err := m.resolveChannel(ctx, token, channel)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	payload := map[string]any{
		"channel":      channelID,
		"text":         text,
		"unfurl_links": false,
		"link_names":   1,
	}

	posted, err := m.call(ctx, token, "chat.postMessage", payload)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	if joinableErrors[slackError(posted)] && strings.HasPrefix(channelID, "C") {
		if _, err := m.call(ctx, token, "conversations.join", map[string]any{"channel": channelID}); err != nil {
			return domain.ProviderResult{}, err
		}
		posted, err = m.call(ctx, token, "chat.postMessage", payload)
		if err != nil {
			return domain.ProviderResult{}, err
		}
	}

	return result(posted), nil
}

// resolveChannel turns "#name" into a channel id by paging through
// conversations.list. Anything else, or a name that is not found, is used
// as given.
func (m *Messenger) resolveChannel(ctx context.Context, token, channel string) (string, error) {
	name, ok := strings.CutPrefix(channel, "#")
	if !ok {
		return channel, nil
	}

	cursor := ""
	for range maxChannelPages {
		query := url.Values{
			"exclude_archived": {"true"},
			"limit":            {fmt.Sprint(channelPageSize)},
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		resp, err := m.client.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "conversations.list", Query: query, Token: token})
		if err != nil {
			return "", fmt.Errorf("list slack channels: %w", err)
		}

		body := resp.Object()
		channels, _ := body["channels"].([]any)
		for _, raw := range channels {
			entry, _ := raw.(map[string]any)
			if entry["name"] == name {
				if id, ok := entry["id"].(string); ok && id != "" {
					return id, nil
				}
			}
		}

		metadata, _ := body["response_metadata"].(map[string]any)
		cursor, _ = metadata["next_cursor"].(string)
		if cursor == "" {
			break
		}
	}

	return channel, nil
}

func (m *Messenger) call(ctx context.Context, token, method string, payload map[string]any) (apiclient.Response, error) {
	resp, err := m.client.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: method, Body: payload, Token: token})
	if err != nil {
		return apiclient.Response{}, fmt.Errorf("slack %s: %w", method, err)
	}

	return resp, nil
}

// Slack answers 200 with ok=false on most failures, so the body decides.
func result(resp apiclient.Response) domain.ProviderResult {
	return domain.ProviderResult{OK: slackOK(resp), Status: resp.Status, Payload: resp.Body}
}

func slackOK(resp apiclient.Response) bool {
	ok, _ := resp.Object()["ok"].(bool)
	return resp.OK() && ok
}

func slackError(resp apiclient.Response) string {
	code, _ := resp.Object()["error"].(string)
	return code
}
