package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/segyhp/fintrack/pkg/errors"
)

func setupStores(t *testing.T) (*miniredis.Miniredis, *SessionStore, RevocationStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewSessionStore(client, time.Hour), NewRevocationStore(client)
}

func TestSessionStore(t *testing.T) {
	mr, sessions, _ := setupStores(t)
	ctx := context.Background()

	require.NoError(t, sessions.Issue(ctx, "tok-1", "user-1"))

	userID, err := sessions.Verify(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	ttl, err := sessions.TTL(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	_, err = sessions.Verify(ctx, "unknown")
	assert.ErrorIs(t, err, customError.ErrSessionNotFound)

	ttl, err = sessions.TTL(ctx, "unknown")
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Duration(0))

	mr.FastForward(2 * time.Hour)
	_, err = sessions.Verify(ctx, "tok-1")
	assert.ErrorIs(t, err, customError.ErrSessionNotFound)
}

func TestRevocationStore(t *testing.T) {
	mr, _, revocations := setupStores(t)
	ctx := context.Background()

	revoked, err := revocations.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revocations.Revoke(ctx, "tok-1", time.Minute))

	revoked, err = revocations.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(time.Minute + time.Second)
	revoked, err = revocations.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMiddleware(t *testing.T) {
	_, sessions, revocations := setupStores(t)
	ctx := context.Background()
	require.NoError(t, sessions.Issue(ctx, "good-token", "user-42"))
	require.NoError(t, sessions.Issue(ctx, "revoked-token", "user-42"))
	require.NoError(t, revocations.Revoke(ctx, "revoked-token", time.Hour))

	var seenUser, seenToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = UserIDFromContext(r.Context())
		seenToken, _ = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Middleware(sessions, revocations)(next)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   string
	}{
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "null token", header: "Bearer null", expectedStatus: http.StatusUnauthorized},
		{name: "revoked token", header: "Bearer revoked-token", expectedStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer who-knows", expectedStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good-token", expectedStatus: http.StatusNoContent, expectedUser: "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenToken = "", ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/emi/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedUser, seenUser)
			if tt.expectedUser != "" {
				assert.Equal(t, "good-token", seenToken)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer  abc ")

	token, err := BearerToken(req)

	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
