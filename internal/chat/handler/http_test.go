package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/steinfletcher/apitest"

	"portfolio/backend/internal/chat/assistant"
)

type failingResponder struct{}

func (failingResponder) Reply(ctx context.Context, message string) (string, error) {
	return "", errors.New("upstream timeout")
}

func TestChatHandler(t *testing.T) {
	h := NewChatHandler(assistant.Demo{})

	apitest.New().HandlerFunc(h.Chat).
		Post("/chat").
		JSON(`{"message":"hello"}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"reply":"[DEMO MODE] I received: \"hello\". (Add a real API Key to .env to get real AI responses!)"}`).
		End()

	apitest.New().HandlerFunc(h.Chat).
		Post("/chat").
		JSON(`{"message":"   "}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.New().HandlerFunc(h.Chat).
		Post("/chat").
		JSON(`{"message":"` + strings.Repeat("a", maxMessageLen+1) + `"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Message too long"}`).
		End()
}

func TestChatHandler_UpstreamFailure(t *testing.T) {
	apitest.New().HandlerFunc(NewChatHandler(failingResponder{}).Chat).
		Post("/chat").
		JSON(`{"message":"hello"}`).
		Expect(t).
		Status(http.StatusInternalServerError).
		Body(`{"error":"AI Systems overloaded."}`).
		End()
}
