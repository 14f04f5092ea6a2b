package handler

import (
	"net/http"
	"strings"

	"portfolio/backend/internal/chat/assistant"
	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
)

// maxMessageLen bounds the visitor message forwarded to the model.
const maxMessageLen = 2000

type ChatHandler struct {
	responder assistant.Responder
}

func NewChatHandler(r assistant.Responder) *ChatHandler {
	return &ChatHandler{responder: r}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if len([]rune(msg)) > maxMessageLen {
		httpx.WriteError(w, http.StatusBadRequest, "Message too long")
		return
	}
	reply, err := h.responder.Reply(r.Context(), msg)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("chat reply failed")
		httpx.WriteError(w, http.StatusInternalServerError, "AI Systems overloaded.")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
