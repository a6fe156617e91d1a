package chain

import (
	"context"
	"errors"
	"testing"

	envstore "github.com/bnema/agentgate/internal/adapters/secrets/env"
	passstore "github.com/bnema/agentgate/internal/adapters/secrets/pass"
	"github.com/bnema/agentgate/internal/domain"
	portmocks "github.com/bnema/agentgate/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesFirstStoreWhenItSucceeds(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, domain.ProviderSlack).Return("from-env", nil).Once()

	value, err := store.Get(context.Background(), domain.ProviderSlack)
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestStoreGetFallsThroughNotFoundAndUnavailable(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	third := portmocks.NewMockTokenStore(t)
	store := NewStore(first, second, third)

	first.EXPECT().Get(mock.Anything, domain.ProviderNotion).Return("", domain.ErrTokenNotFound).Once()
	second.EXPECT().Get(mock.Anything, domain.ProviderNotion).Return("", passstore.ErrUnavailable).Once()
	third.EXPECT().Get(mock.Anything, domain.ProviderNotion).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), domain.ProviderNotion)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetAllMissingIsTokenNotFound(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, domain.ProviderGitHub).Return("", domain.ErrTokenNotFound).Once()
	second.EXPECT().Get(mock.Anything, domain.ProviderGitHub).Return("", domain.ErrTokenNotFound).Once()

	_, err := store.Get(context.Background(), domain.ProviderGitHub)
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestStoreGetReportsRealFailures(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, domain.ProviderGitHub).Return("", errors.New("gpg failed")).Once()
	second.EXPECT().Get(mock.Anything, domain.ProviderGitHub).Return("", domain.ErrTokenNotFound).Once()

	_, err := store.Get(context.Background(), domain.ProviderGitHub)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTokenNotFound)
	assert.ErrorContains(t, err, "gpg failed")
}

func TestStoreGetDoesNotContinueOnCanceledContext(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, domain.ProviderSlack).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), domain.ProviderSlack)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutSkipsReadOnlyStores(t *testing.T) {
	t.Parallel()

	writable := portmocks.NewMockTokenStore(t)
	store := NewStore(envstore.NewStore(nil), writable)

	writable.EXPECT().Put(mock.Anything, domain.ProviderSlack, "xoxb").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), domain.ProviderSlack, "xoxb"))
}

func TestStorePutFallsBackAndCombinesErrors(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	store := NewStore(first, second)

	first.EXPECT().Put(mock.Anything, domain.ProviderSlack, "xoxb").Return(errors.New("pass failed")).Once()
	second.EXPECT().Put(mock.Anything, domain.ProviderSlack, "xoxb").Return(errors.New("disk full")).Once()

	err := store.Put(context.Background(), domain.ProviderSlack, "xoxb")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "disk full")
}

func TestStoreDeleteReachesEveryWritableStore(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockTokenStore(t)
	second := portmocks.NewMockTokenStore(t)
	store := NewStore(envstore.NewStore(nil), first, second)

	first.EXPECT().Delete(mock.Anything, domain.ProviderGCal).Return(passstore.ErrUnavailable).Once()
	second.EXPECT().Delete(mock.Anything, domain.ProviderGCal).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), domain.ProviderGCal))
}

func TestNewStoreCheckedRejectsEmptyAndNil(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked()
	require.Error(t, err)

	_, err = NewStoreChecked(envstore.NewStore(nil), nil)
	require.Error(t, err)
}
