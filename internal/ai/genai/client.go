// internal/ai/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey = errors.New("GENAI_MISSING_API_KEY")
	ErrTimeout       = errors.New("GENAI_TIMEOUT")
	ErrCallFailed    = errors.New("GENAI_CALL_FAILED")
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client is a thin wrapper over the generative-language REST API. Call
// deadlines are owned by the caller's context; the embedded http.Client
// carries no timeout of its own.
type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Configured reports whether an API credential is present. Callers use this
// to skip the upstream entirely and take their deterministic fallback.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// GenerateOptions tune a single generation call. Nil Temperature keeps the
// model default; zero MaxOutputTokens leaves the budget uncapped.
type GenerateOptions struct {
	Temperature     *float64
	MaxOutputTokens int
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText issues one generateContent call and returns the text of the
// first candidate. Transport errors, non-2xx responses and empty candidates
// all map onto the sentinel errors.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	if !c.Configured() {
		return "", ErrMissingAPIKey
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if opts != nil && (opts.Temperature != nil || opts.MaxOutputTokens > 0) {
		reqBody.GenerationConfig = &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		}
	}

	body, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrCallFailed, resp.StatusCode)
	}

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrCallFailed, err)
	}

	if len(apiResponse.Candidates) == 0 || len(apiResponse.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrCallFailed)
	}

	return apiResponse.Candidates[0].Content.Parts[0].Text, nil
}
