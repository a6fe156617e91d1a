package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/agentgate/internal/adapters/secrets/env"
	filestore "github.com/bnema/agentgate/internal/adapters/secrets/file"
	passstore "github.com/bnema/agentgate/internal/adapters/secrets/pass"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

// Store consults its backends in order. Reads return the first token found;
// writes go to the first backend that accepts them; deletes reach every
// writable backend so a removed token cannot resurface from a later one.
type Store struct {
	stores []ports.TokenStore
}

var _ ports.TokenStore = (*Store)(nil)

var errNoStores = errors.New("token store chain is empty")

func NewStore(stores ...ports.TokenStore) *Store {
	store, err := NewStoreChecked(stores...)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(stores ...ports.TokenStore) (*Store, error) {
	if len(stores) == 0 {
		return nil, errNoStores
	}
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("token store %d is nil", i)
		}
	}

	return &Store{stores: stores}, nil
}

// NewOverrideChain is the lookup order used by the gateway: environment,
// then pass, then the token directory.
func NewOverrideChain(env map[domain.Provider]string, passPrefix string, fileRoot string) (*Store, error) {
	return NewStoreChecked(envstore.NewStore(env), passstore.NewStore(passPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, provider domain.Provider) (string, error) {
	var failures []error
	for _, store := range s.stores {
		token, err := store.Get(ctx, provider)
		if err == nil {
			return token, nil
		}
		if shouldStop(err) {
			return "", err
		}
		if !errors.Is(err, domain.ErrTokenNotFound) && !errors.Is(err, passstore.ErrUnavailable) {
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return "", fmt.Errorf("%s token lookup failed: %w", provider, errors.Join(failures...))
	}

	return "", fmt.Errorf("%w: %s", domain.ErrTokenNotFound, provider)
}

func (s *Store) Put(ctx context.Context, provider domain.Provider, token string) error {
	var failures []error
	for _, store := range s.stores {
		err := store.Put(ctx, provider, token)
		if err == nil {
			return nil
		}
		if shouldStop(err) || errors.Is(err, domain.ErrValidation) {
			return err
		}
		if !errors.Is(err, envstore.ErrReadOnly) {
			failures = append(failures, err)
		}
	}

	if len(failures) == 0 {
		return fmt.Errorf("no writable token store for %s", provider)
	}

	return fmt.Errorf("every token store rejected %s: %w", provider, errors.Join(failures...))
}

func (s *Store) Delete(ctx context.Context, provider domain.Provider) error {
	var failures []error
	for _, store := range s.stores {
		err := store.Delete(ctx, provider)
		if err == nil || errors.Is(err, envstore.ErrReadOnly) || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if shouldStop(err) {
			return err
		}
		failures = append(failures, err)
	}

	return errors.Join(failures...)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
