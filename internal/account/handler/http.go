package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"portfolio/backend/internal/account/domain"
	"portfolio/backend/internal/account/service"
	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/platform/validate"
	"portfolio/backend/internal/server/middleware"
)

const (
	msgInvalidInput       = "Invalid input"
	msgInvalidCredentials = "Invalid credentials"
	msgAlreadyExists      = "User already exists"
	msgLoginFailed        = "Server error during login"
	msgRegisterFailed     = "Server error during registration"
	msgNotFound           = "Not found"
	msgAccountNotFound    = "User not found"
	msgProfileFailed      = "Server error"
)

// AuthService is the session issuer used by the handler. Implemented by *service.AuthService.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Register(ctx context.Context, in service.RegisterInput) (string, error)
	Profile(ctx context.Context, accountID string) (domain.PublicProfile, error)
	TokenTTL() time.Duration
}

// Options configures the auth handler.
type Options struct {
	// SecureCookie marks the session cookie Secure; set in production.
	SecureCookie bool
	// RegistrationEnabled exposes POST /auth/register. When false it answers 404.
	RegistrationEnabled bool
}

// AuthHandler serves the login and register endpoints.
type AuthHandler struct {
	svc  AuthService
	opts Options
}

// NewAuthHandler returns a handler backed by svc.
func NewAuthHandler(svc AuthService, opts Options) *AuthHandler {
	return &AuthHandler{svc: svc, opts: opts}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    domain.PublicProfile `json:"user"`
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// Login handles POST /auth/login. On success the token is returned in the body
// and set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, validate.Message(err, msgInvalidInput))
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidCredentials)
		return
	case err != nil:
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("login failed")
		httpx.WriteError(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}
	http.SetCookie(w, h.sessionCookie(res.Token))
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.Account,
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.opts.RegistrationEnabled {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	var req registerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	id, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Username,
		ProfileImage: req.ProfileImage,
	})
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, validate.Message(err, msgInvalidInput))
		return
	case errors.Is(err, service.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusBadRequest, msgAlreadyExists)
		return
	case err != nil:
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("registration failed")
		httpx.WriteError(w, http.StatusInternalServerError, msgRegisterFailed)
		return
	}
	logger := logutil.GetOrDefault(r.Context())
	logger.Info().Str("account.id", id).Msg("account created")
	httpx.WriteJSON(w, http.StatusCreated, registerResponse{Message: "Account created", UserID: id})
}

type profileResponse struct {
	User domain.PublicProfile `json:"user"`
}

// Me handles GET /auth/me for an authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	profile, err := h.svc.Profile(r.Context(), id.AccountID)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgAccountNotFound)
		return
	case err != nil:
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("profile lookup failed")
		httpx.WriteError(w, http.StatusInternalServerError, msgProfileFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResponse{User: profile})
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.svc.TokenTTL() / time.Second),
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
