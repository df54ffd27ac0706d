package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/segyhp/fintrack/internal/auth"
	"github.com/segyhp/fintrack/pkg/response"
)

type AuthHandler struct {
	sessions    auth.SessionLifetime
	revocations auth.RevocationStore
	tokenTTL    time.Duration
}

// NewAuthHandler revokes tokens for the rest of their session. tokenTTL is
// used when the session lifetime is unknown.
func NewAuthHandler(sessions auth.SessionLifetime, revocations auth.RevocationStore, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		sessions:    sessions,
		revocations: revocations,
		tokenTTL:    tokenTTL,
	}
}

// Logout revokes the bearer token used for the request
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.revocations.Revoke(r.Context(), token, h.revocationTTL(r, token)); err != nil {
		log.Printf("Error revoking token: %v", err)
		response.InternalServerError(w, "Failed to log out", nil)
		return
	}

	response.Success(w, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) revocationTTL(r *http.Request, token string) time.Duration {
	remaining, err := h.sessions.TTL(r.Context(), token)
	if err != nil {
		log.Printf("Error reading session lifetime: %v", err)
		return h.tokenTTL
	}
	if remaining <= 0 {
		return h.tokenTTL
	}
	return remaining
}
