package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultTextGenURL   = "https://api.openai.com/v1"
	DefaultTextGenModel = "gpt-4o-mini"
)

// Remediator produces short instructions for a remedial task. An empty
// string means no text is available.
type Remediator interface {
	Remediation(ctx context.Context, taskType, domain string) string
}

// NoRemediation is used when no text generation key is configured.
type NoRemediation struct{}

func (NoRemediation) Remediation(context.Context, string, string) string { return "" }

// TextGenClient calls an OpenAI-compatible chat completions endpoint.
type TextGenClient struct {
	baseURL string
	model   string
	http    *http.Client
	log     *zap.Logger
}

// NewTextGenClient authenticates every request with apiKey as a bearer token.
func NewTextGenClient(baseURL, model, apiKey string, log *zap.Logger) *TextGenClient {
	if baseURL == "" {
		baseURL = DefaultTextGenURL
	}
	if model == "" {
		model = DefaultTextGenModel
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: 15 * time.Second})

	return &TextGenClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    oauth2.NewClient(ctx, ts),
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *TextGenClient) Remediation(ctx context.Context, taskType, domain string) string {
	text, err := c.complete(ctx, prompt(taskType, domain))
	if err != nil {
		c.log.Warn("remediation text unavailable", zap.String("type", taskType), zap.Error(err))
		return ""
	}
	return text
}

func prompt(taskType, domain string) string {
	if taskType == "2fa" {
		return fmt.Sprintf("In at most three short steps, explain how to enable two-factor authentication on %s.", domain)
	}
	return fmt.Sprintf("In at most three short steps, explain how to change the account password on %s after a data breach.", domain)
}

func (c *TextGenClient) complete(ctx context.Context, content string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: content}},
		MaxTokens: 200,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
