package env

import (
	"context"
	"testing"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreServesConfiguredTokens(t *testing.T) {
	t.Parallel()

	store := NewStore(map[domain.Provider]string{
		domain.ProviderSlack:  " xoxb-1 ",
		domain.ProviderNotion: "   ",
	})

	token, err := store.Get(context.Background(), domain.ProviderSlack)
	require.NoError(t, err)
	assert.Equal(t, "xoxb-1", token)

	_, err = store.Get(context.Background(), domain.ProviderNotion)
	require.ErrorIs(t, err, domain.ErrTokenNotFound)

	assert.Equal(t, []domain.Provider{domain.ProviderSlack}, store.Providers())
}

func TestStoreIsReadOnly(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)

	require.ErrorIs(t, store.Put(context.Background(), domain.ProviderGitHub, "x"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(context.Background(), domain.ProviderGitHub), ErrReadOnly)
}
