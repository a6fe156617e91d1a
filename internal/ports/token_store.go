package ports

import (
	"context"

	"github.com/bnema/agentgate/internal/domain"
)

// TokenStore holds static bearer-token overrides keyed by provider. Get
// returns an error wrapping domain.ErrTokenNotFound when nothing is stored.
type TokenStore interface {
	Get(ctx context.Context, provider domain.Provider) (string, error)
	Put(ctx context.Context, provider domain.Provider, token string) error
	Delete(ctx context.Context, provider domain.Provider) error
}
