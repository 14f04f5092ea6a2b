package handler

import (
	"context"
	"errors"
	"net/http"

	"portfolio/backend/internal/contact/domain"
	"portfolio/backend/internal/contact/mailer"
	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/platform/validate"
)

// ContactService is implemented by *service.ContactService.
type ContactService interface {
	Send(ctx context.Context, in domain.Input) error
}

type ContactHandler struct {
	svc ContactService
}

func NewContactHandler(svc ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send handles POST /contact.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var in domain.Input
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	err := h.svc.Send(r.Context(), in)
	var rejected *mailer.RejectedError
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, sendResponse{Success: true, Message: "Message sent successfully"})
	case errors.Is(err, validate.ErrInvalid):
		httpx.WriteError(w, http.StatusBadRequest, validate.Message(err, "Invalid input"))
	case errors.As(err, &rejected):
		logger := logutil.GetOrDefault(r.Context())
		logger.Warn().Err(err).Msg("contact email rejected")
		httpx.WriteError(w, http.StatusBadRequest, rejected.Message)
	default:
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("contact message failed")
		httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
