// Package breach looks up data breaches an email address appears in.
package breach

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://haveibeenpwned.com/api/v3"

// Breach is one breach record. Domain may be empty for breaches not tied to
// a website.
type Breach struct {
	Name   string `json:"Name"`
	Domain string `json:"Domain"`
}

// Lookup returns the breaches for email. Implementations never fail: any
// error degrades to an empty result.
type Lookup interface {
	Lookup(ctx context.Context, email string) []Breach
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(ctx context.Context, email string) []Breach

func (f LookupFunc) Lookup(ctx context.Context, email string) []Breach {
	return f(ctx, email)
}

// Client queries the Have I Been Pwned v3 API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (c *Client) Lookup(ctx context.Context, email string) []Breach {
	if c.apiKey == "" {
		return nil
	}

	breaches, err := c.fetch(ctx, email)
	if err != nil {
		c.log.Warn("breach lookup failed", zap.Error(err))
		return nil
	}
	return breaches
}

func (c *Client) fetch(ctx context.Context, email string) ([]Breach, error) {
	endpoint := fmt.Sprintf("%s/breachedaccount/%s?truncateResponse=false", c.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("hibp-api-key", c.apiKey)
	req.Header.Set("User-Agent", "nudge-server")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// account not in any breach
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out []Breach
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode breaches: %w", err)
	}
	return out, nil
}
