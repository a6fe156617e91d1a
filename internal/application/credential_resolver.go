package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

// CredentialResolver finds a bearer token for a provider: a static override
// first, then the broker. It never fails; every problem collapses to "no
// token" and is logged at debug level.
type CredentialResolver struct {
	overrides ports.TokenStore
	broker    ports.CredentialBroker
	logger    *slog.Logger
}

func NewCredentialResolver(overrides ports.TokenStore, broker ports.CredentialBroker, logger *slog.Logger) *CredentialResolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &CredentialResolver{overrides: overrides, broker: broker, logger: logger}
}

func (r *CredentialResolver) Resolve(ctx context.Context, provider domain.Provider, identity domain.Identity) (string, bool) {
	if token := r.override(ctx, provider); token != "" {
		r.logger.DebugContext(ctx, "using override token", "provider", provider)
		return token, true
	}

	if !r.BrokerConfigured() {
		r.logger.DebugContext(ctx, "broker not configured", "provider", provider)
		return "", false
	}

	conn, err := r.broker.GetConnection(ctx, provider, identity)
	if err != nil {
		r.logger.DebugContext(ctx, "broker get connection failed", "provider", provider, "error", err)
		return "", false
	}
	if !conn.OK {
		r.logger.DebugContext(ctx, "broker get connection rejected", "provider", provider, "status", conn.Status)
		return "", false
	}

	token := tokenFromConnection(conn.Payload)
	if token == "" {
		r.logger.DebugContext(ctx, "no token in broker connection payload", "provider", provider)
		return "", false
	}

	return token, true
}

func (r *CredentialResolver) BrokerConfigured() bool {
	return r.broker != nil && r.broker.Configured()
}

func (r *CredentialResolver) override(ctx context.Context, provider domain.Provider) string {
	if r.overrides == nil {
		return ""
	}

	token, err := r.overrides.Get(ctx, provider)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			r.logger.DebugContext(ctx, "override token lookup failed", "provider", provider, "error", err)
		}
		return ""
	}

	return strings.TrimSpace(token)
}

// tokenFromConnection tries the field names brokers are known to use, in
// priority order.
func tokenFromConnection(payload map[string]any) string {
	for _, key := range []string{"accessToken", "token", "botToken"} {
		if token := stringField(payload, key); token != "" {
			return token
		}
	}

	if credentials, ok := payload["credentials"].(map[string]any); ok {
		return stringField(credentials, "access_token")
	}

	return ""
}

func stringField(payload map[string]any, key string) string {
	value, ok := payload[key].(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(value)
}
