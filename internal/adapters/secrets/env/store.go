package env

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

var ErrReadOnly = errors.New("environment token store is read-only")

// Store serves the static DEMO_BEARER_TOKEN_* overrides loaded at startup.
type Store struct {
	tokens map[domain.Provider]string
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(tokens map[domain.Provider]string) *Store {
	copied := make(map[domain.Provider]string, len(tokens))
	for provider, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		copied[provider] = token
	}

	return &Store{tokens: copied}
}

func (s *Store) Get(ctx context.Context, provider domain.Provider) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token, ok := s.tokens[provider]
	if !ok {
		return "", fmt.Errorf("%w: no %s token in environment", domain.ErrTokenNotFound, provider)
	}

	return token, nil
}

func (s *Store) Put(context.Context, domain.Provider, string) error {
	return ErrReadOnly
}

func (s *Store) Delete(context.Context, domain.Provider) error {
	return ErrReadOnly
}

// Providers lists the providers that have an environment override.
func (s *Store) Providers() []domain.Provider {
	providers := make([]domain.Provider, 0, len(s.tokens))
	for _, provider := range domain.Providers() {
		if _, ok := s.tokens[provider]; ok {
			providers = append(providers, provider)
		}
	}

	return providers
}
