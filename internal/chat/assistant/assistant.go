// Package assistant answers visitor chat messages, either from a canned demo
// reply or from an OpenAI-compatible chat completions API.
package assistant

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
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
	maxReplyTokens = 150
	requestTimeout = 30 * time.Second
	// demoKey is the placeholder key that also selects demo mode.
	demoKey = "dummy-key"
)

const systemPrompt = `You are the AI Assistant for AnaMdTech (a Senior Full Stack Engineer).
Your goal is to impress recruiters and clients.
Traits: Professional, concise, futuristic, confident.

Key Info:
- Skills: React, Node.js, TypeScript, PostgreSQL, Prisma, Tailwind, AI Integration.
- Experience: Built scalable CMS systems, E-commerce platforms, and Real-time apps.
- Contact: Suggest they use the "Initiate Contact" form or email contact@anamdtech.com.

If asked about pricing/rates: "AnaMdTech prefers to discuss project scope first. Please use the contact form."
If asked "Who are you?": "I am a neural interface designed to showcase AnaMdTech's capabilities."`

// ErrUpstream wraps every failure of the completions API.
var ErrUpstream = errors.New("assistant: upstream failure")

// Responder produces a reply to one visitor message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// New returns the demo responder when apiKey is empty or the placeholder key,
// otherwise an OpenAI client.
func New(apiKey, baseURL, model string) Responder {
	if apiKey == "" || apiKey == demoKey {
		return Demo{}
	}
	return NewOpenAIClient(apiKey, baseURL, model)
}

// Demo echoes the message back without calling any API.
type Demo struct{}

func (Demo) Reply(ctx context.Context, message string) (string, error) {
	return fmt.Sprintf(`[DEMO MODE] I received: "%s". (Add a real API Key to .env to get real AI responses!)`, message), nil
}

// OpenAIClient calls POST {BaseURL}/chat/completions.
type OpenAIClient struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Reply(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens: maxReplyTokens,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}

	var out completionResponse
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != nil {
			return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, decodeErr)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUpstream)
	}
	return out.Choices[0].Message.Content, nil
}
