package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	mockauth "github.com/aromabase/aromabase/internal/mocks/auth"
	"github.com/aromabase/aromabase/internal/ports"
)

func newAuthService(t *testing.T, ttl time.Duration) (*mockauth.MockAuthProvider, *mockauth.MemorySessionStore, *AuthService) {
	t.Helper()
	provider := mockauth.NewMockAuthProvider()
	store := mockauth.NewMemorySessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Provider:   provider,
		Sessions:   store,
		SessionTTL: ttl,
	})
	return provider, store, svc
}

func TestAuthService_BeginLogin(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t, time.Hour)

	result, err := svc.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)
}

func TestAuthService_BeginLogin_RequiresRedirectURL(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t, time.Hour)

	_, err := svc.BeginLogin(context.Background(), "")
	assert.Error(t, err)
}

func TestAuthService_CompleteLogin_PersistsSessionWithClaims(t *testing.T) {
	t.Parallel()
	_, store, svc := newAuthService(t, time.Hour)

	result, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code-1",
		State: "state-1",
		Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, "mock-user-1", result.Session.UserID)
	require.Contains(t, result.Session.Claims, "user_metadata")

	stored, err := store.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.UserID, stored.UserID)
}

func TestAuthService_CompleteLogin_ValidatesInput(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t, time.Hour)

	for name, input := range map[string]CompleteLoginInput{
		"missing code":  {State: "s", Nonce: "n"},
		"missing state": {Code: "c", Nonce: "n"},
		"missing nonce": {Code: "c", State: "s"},
	} {
		_, err := svc.CompleteLogin(context.Background(), input)
		assert.Error(t, err, name)
	}
}

func TestAuthService_CompleteLogin_ExchangeFailure(t *testing.T) {
	t.Parallel()
	provider, store, svc := newAuthService(t, time.Hour)

	provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("idp unavailable")
	}

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange authorization code")

	// No session must be persisted on a failed exchange.
	_, err = store.Get(context.Background(), "any")
	assert.ErrorIs(t, err, mockauth.ErrSessionNotFound)
}

func TestAuthService_ResolveSession_FreshSessionNotRenewed(t *testing.T) {
	t.Parallel()
	_, store, svc := newAuthService(t, time.Hour)

	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        "s1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(55 * time.Minute),
	}))

	sess, refreshed, err := svc.ResolveSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, refreshed)
	assert.Equal(t, "u1", sess.UserID)
}

func TestAuthService_ResolveSession_SlidingRefreshBelowHalfWindow(t *testing.T) {
	t.Parallel()
	_, store, svc := newAuthService(t, time.Hour)

	old := time.Now().Add(10 * time.Minute) // under the 30m threshold
	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        "s1",
		UserID:    "u1",
		ExpiresAt: old,
	}))

	sess, refreshed, err := svc.ResolveSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.True(t, sess.ExpiresAt.After(old), "expiry must be extended")
}

func TestAuthService_ResolveSession_ExpiredSessionDeleted(t *testing.T) {
	t.Parallel()
	_, store, svc := newAuthService(t, time.Hour)

	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        "s1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, _, err := svc.ResolveSession(context.Background(), "s1")
	require.Error(t, err)

	// The stale record is gone.
	_, err = store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, mockauth.ErrSessionNotFound)
}

func TestAuthService_ResolveSession_UnknownID(t *testing.T) {
	t.Parallel()
	_, _, svc := newAuthService(t, time.Hour)

	_, _, err := svc.ResolveSession(context.Background(), "ghost")
	assert.ErrorIs(t, err, mockauth.ErrSessionNotFound)
}

func TestAuthService_ResolveSession_StoreFailure(t *testing.T) {
	t.Parallel()
	_, store, svc := newAuthService(t, time.Hour)

	boom := errors.New("redis: connection refused")
	store.FailGet = boom

	_, _, err := svc.ResolveSession(context.Background(), "s1")
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	_, store, svc := newAuthService(t, time.Hour)

	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        "s1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, svc.Logout(context.Background(), "s1"))
	_, err := store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, mockauth.ErrSessionNotFound)

	// Logging out without a session is a no-op.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
