package descope

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const (
	DefaultBaseURL     = "https://api.descope.com"
	connectionGetPath  = "v1/outbound/oauth/connection/get"
	connectStartPath   = "v1/outbound/oauth/connect/start"
	projectIDHeaderKey = "x-descope-project-id"
)

var errNotConfigured = errors.New("descope broker is not configured")

// appIDs maps providers to the outbound application ids registered in the
// Descope project.
var appIDs = map[domain.Provider]string{
	domain.ProviderSlack:  "slack",
	domain.ProviderNotion: "notion",
	domain.ProviderGitHub: "github",
	domain.ProviderGCal:   "google-calendar",
}

type Config struct {
	ProjectID     string
	ManagementKey string
}

// Broker reads end users' provider connections from Descope outbound apps.
type Broker struct {
	cfg    Config
	client apiclient.Client
}

var _ ports.CredentialBroker = (*Broker)(nil)

func NewBroker(cfg Config, client apiclient.Client) *Broker {
	if client.BaseURL == "" {
		client.BaseURL = DefaultBaseURL
	}
	cfg.ProjectID = strings.TrimSpace(cfg.ProjectID)
	cfg.ManagementKey = strings.TrimSpace(cfg.ManagementKey)

	client.Header = client.Header.Clone()
	if client.Header == nil {
		client.Header = http.Header{}
	}
	client.Header.Set(projectIDHeaderKey, cfg.ProjectID)

	return &Broker{cfg: cfg, client: client}
}

func (b *Broker) Configured() bool {
	return b.cfg.ProjectID != "" && b.cfg.ManagementKey != ""
}

func (b *Broker) GetConnection(ctx context.Context, provider domain.Provider, identity domain.Identity) (ports.Connection, error) {
	resp, err := b.post(ctx, connectionGetPath, provider, identity)
	if err != nil {
		return ports.Connection{}, err
	}

	return ports.Connection{OK: resp.OK(), Status: resp.Status, Payload: resp.Object()}, nil
}

func (b *Broker) StartConnect(ctx context.Context, provider domain.Provider, identity domain.Identity) (ports.ConnectStart, error) {
	resp, err := b.post(ctx, connectStartPath, provider, identity)
	if err != nil {
		return ports.ConnectStart{}, err
	}

	connectURL, _ := resp.Object()["url"].(string)
	return ports.ConnectStart{OK: resp.OK(), Status: resp.Status, URL: connectURL}, nil
}

func (b *Broker) post(ctx context.Context, path string, provider domain.Provider, identity domain.Identity) (apiclient.Response, error) {
	if !b.Configured() {
		return apiclient.Response{}, errNotConfigured
	}

	appID, ok := appIDs[provider]
	if !ok {
		return apiclient.Response{}, fmt.Errorf("%w: no outbound app for provider %q", domain.ErrValidation, provider)
	}

	payload := map[string]string{"appId": appID, "loginId": identity.UserID}
	if identity.TenantID != "" {
		payload["tenantId"] = identity.TenantID
	}

	resp, err := b.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   payload,
		Token:  b.cfg.ManagementKey,
	})
	if err != nil {
		return apiclient.Response{}, fmt.Errorf("descope %s: %w", path, err)
	}

	return resp, nil
}
