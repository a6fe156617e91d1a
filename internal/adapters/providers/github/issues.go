package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const DefaultBaseURL = "https://api.github.com"

type IssueTracker struct {
	client apiclient.Client
}

var _ ports.IssueTracker = (*IssueTracker)(nil)

func NewIssueTracker(client apiclient.Client) *IssueTracker {
	if client.BaseURL == "" {
		client.BaseURL = DefaultBaseURL
	}
	client.Header = client.Header.Clone()
	if client.Header == nil {
		client.Header = http.Header{}
	}
	client.Header.Set("Accept", "application/vnd.github+json")

	return &IssueTracker{client: client}
}

// CreateIssue opens an issue on repo, given as owner/name.
func (t *IssueTracker) CreateIssue(ctx context.Context, token, repo, title, body string) (domain.ProviderResult, error) {
	owner, name, err := domain.SplitRepo(repo)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	resp, err := t.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name) + "/issues",
		Body:   map[string]string{"title": title, "body": body},
		Token:  token,
	})
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("github create issue: %w", err)
	}

	return domain.ProviderResult{OK: resp.OK(), Status: resp.Status, Payload: resp.Body}, nil
}
