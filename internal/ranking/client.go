// Package ranking orders feasible appointment slots. The primary path asks an
// Ollama-compatible text-generation service to judge the slots against the
// visit context; every failure below the top level degrades to a deterministic
// earliest-first ordering.
package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrUnreachable means the ranking service could not be contacted or did
	// not answer with a well-formed envelope in time.
	ErrUnreachable = errors.New("ranking service unreachable")
	// ErrBadResponse means the service answered but the payload could not be
	// interpreted as slot recommendations.
	ErrBadResponse = errors.New("ranking service returned an unusable response")
)

// Config carries the ranking service settings. It is passed in explicitly at
// construction time; nothing in this package reads ambient state.
type Config struct {
	BaseURL        string
	Model          string
	Timeout        time.Duration
	MaxSuggestions int
}

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxSuggestions = 5
)

// Client talks to an Ollama-style /api/generate endpoint with a bounded
// timeout per call.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/api/generate",
		model:      cfg.Model,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate submits the prompt as a single blocking completion call and returns
// the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: response body was not valid JSON", ErrUnreachable)
	}
	if decoded.Response == "" {
		return "", fmt.Errorf("%w: payload did not include text output", ErrBadResponse)
	}
	return decoded.Response, nil
}
