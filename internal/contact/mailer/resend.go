// Package mailer sends contact notifications through the Resend HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	defaultBaseURL = "https://api.resend.com"
)

// ErrNotConfigured is returned when no API key or recipient is set.
var ErrNotConfigured = errors.New("mailer: resend is not configured")

// RejectedError is returned when Resend answers with a non-2xx status.
// Message is the provider's explanation and is safe to show to the sender.
type RejectedError struct {
	Status  int
	Name    string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("mailer: resend rejected email status=%d name=%s: %s", e.Status, e.Name, e.Message)
}

// Email is one outgoing message.
type Email struct {
	Subject string
	HTML    string
	ReplyTo string
}

// ResendClient posts emails to the Resend API.
type ResendClient struct {
	APIKey     string
	BaseURL    string
	From       string
	To         string
	HTTPClient *http.Client
}

// NewResendClient returns a client sending from from to to. An empty baseURL
// selects the public Resend endpoint.
func NewResendClient(apiKey, baseURL, from, to string) *ResendClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &ResendClient{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		From:       from,
		To:         to,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Send delivers e to the configured recipient.
func (c *ResendClient) Send(ctx context.Context, e Email) error {
	if c.APIKey == "" || c.To == "" {
		return ErrNotConfigured
	}
	raw, err := json.Marshal(sendRequest{
		From:    c.From,
		To:      []string{c.To},
		Subject: e.Subject,
		HTML:    e.HTML,
		ReplyTo: e.ReplyTo,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	rej := &RejectedError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil && er.Message != "" {
		rej.Name = er.Name
		rej.Message = er.Message
	}
	return rej
}
