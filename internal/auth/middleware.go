package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/segyhp/fintrack/pkg/response"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	tokenKey  contextKey = "token"
)

// UserIDFromContext returns the authenticated user ID set by Middleware
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// TokenFromContext returns the bearer token set by Middleware
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// WithUser returns a copy of ctx carrying userID and token
func WithUser(ctx context.Context, userID, token string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, tokenKey, token)
}

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", customError.ErrInvalidAuthHeader
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" || token == "null" {
		return "", customError.ErrUnauthorized
	}

	return token, nil
}

// Middleware rejects requests without a valid, unrevoked bearer token
func Middleware(verifier TokenVerifier, revocations RevocationStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				unauthorized(w, err)
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), token)
			if err != nil {
				log.Printf("Error checking token revocation: %v", err)
				response.InternalServerError(w, "Failed to authenticate request", nil)
				return
			}
			if revoked {
				unauthorized(w, customError.ErrTokenRevoked)
				return
			}

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, customError.ErrSessionNotFound) {
					log.Printf("Error verifying token: %v", err)
				}
				unauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, token)))
		})
	}
}

func unauthorized(w http.ResponseWriter, reason error) {
	businessErr := customError.WrapUnauthorized(reason)
	response.ErrorWithCode(w, http.StatusUnauthorized, businessErr.Code, reason.Error(), nil)
}
