package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

type stubSessionService struct {
	sess      *domainauth.Session
	refreshed bool
	err       error

	gotID string
}

func (s *stubSessionService) ResolveSession(_ context.Context, id string) (*domainauth.Session, bool, error) {
	s.gotID = id
	return s.sess, s.refreshed, s.err
}

func TestSessionResolver_MissingCookieIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := &stubSessionService{}
	resolver := NewSessionResolver(svc, CookieSettings{})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	sess, cookies, err := resolver.Resolve(context.Background(), req)

	assert.NoError(t, err)
	assert.Nil(t, sess)
	assert.Empty(t, cookies)
	assert.Empty(t, svc.gotID, "service must not be consulted without a cookie")
}

func TestSessionResolver_ResolvesSessionFromCookie(t *testing.T) {
	t.Parallel()

	svc := &stubSessionService{
		sess: &domainauth.Session{ID: "sess-1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)},
	}
	resolver := NewSessionResolver(svc, CookieSettings{})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})

	sess, cookies, err := resolver.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "sess-1", svc.gotID)
	assert.Empty(t, cookies, "no cookie re-issue without a refresh")
}

func TestSessionResolver_RenewedSessionEmitsCookie(t *testing.T) {
	t.Parallel()

	expires := time.Now().Add(time.Hour)
	svc := &stubSessionService{
		sess:      &domainauth.Session{ID: "sess-1", UserID: "u1", ExpiresAt: expires},
		refreshed: true,
	}
	resolver := NewSessionResolver(svc, CookieSettings{SessionName: "ab_session"})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "ab_session", Value: "sess-1"})

	_, cookies, err := resolver.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "ab_session", cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Greater(t, cookies[0].MaxAge, 0)
}

func TestSessionResolver_PropagatesServiceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("redis down")
	svc := &stubSessionService{err: boom}
	resolver := NewSessionResolver(svc, CookieSettings{})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})

	_, _, err := resolver.Resolve(context.Background(), req)
	assert.ErrorIs(t, err, boom)
}
