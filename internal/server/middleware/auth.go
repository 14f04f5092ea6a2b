// Package middleware holds the HTTP middleware of the API: the auth gate,
// request logging, telemetry, CORS and security headers.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/security"
)

const (
	bearerPrefix = "bearer "
	// TokenCookie is the cookie that carries the session token for browser clients.
	TokenCookie = "token"

	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
)

// ErrUnauthorized is reported when a protected request carries no token.
var ErrUnauthorized = errors.New("no token provided")

// TokenVerifier verifies a session token. Implemented by *security.TokenCodec.
type TokenVerifier interface {
	Verify(token string) (security.Claims, error)
}

// AuthedHandler is a handler that may only run for an authenticated caller.
// It can only be mounted through Gate.Protect.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, id Identity)

// Gate rejects requests without a valid session token.
type Gate struct {
	tokens TokenVerifier
}

// NewGate returns a Gate verifying tokens with v.
func NewGate(v TokenVerifier) *Gate {
	return &Gate{tokens: v}
}

// Authenticate returns the Identity of the request's session token.
// It returns ErrUnauthorized when no token is present, or the verification
// error (wrapping security.ErrInvalidToken) when the token is rejected.
func (g *Gate) Authenticate(r *http.Request) (Identity, error) {
	token := ExtractToken(r)
	if token == "" {
		return Identity{}, ErrUnauthorized
	}
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		AccountID: claims.AccountID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Protect wraps next so it only runs with a verified Identity.
// A missing token is answered with 401; a token that fails verification, expired
// or not, with 400.
func (g *Gate) Protect(next AuthedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logutil.GetOrDefault(r.Context())
		id, err := g.Authenticate(r)
		switch {
		case errors.Is(err, ErrUnauthorized):
			httpx.WriteError(w, http.StatusUnauthorized, msgNoToken)
			return
		case err != nil:
			logRejection(log, err)
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidToken)
			return
		}
		ctx := WithIdentity(r.Context(), id)
		ctx = logutil.WithLogger(ctx, log.With().Str("account.id", id.AccountID).Logger())
		next(w, r.WithContext(ctx), id)
	})
}

func logRejection(log zerolog.Logger, err error) {
	reason := "invalid"
	if errors.Is(err, security.ErrExpired) {
		reason = "expired"
	}
	log.Debug().Str("reason", reason).Msg("session token rejected")
}

// ExtractToken returns the token from "Authorization: Bearer <token>" (scheme is
// case-insensitive) or, failing that, from the token cookie. Returns "" if neither is present.
func ExtractToken(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("Authorization")); len(v) > len(bearerPrefix) &&
		strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		if token := strings.TrimSpace(v[len(bearerPrefix):]); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}
