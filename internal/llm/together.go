package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/logging"
	"github.com/muurk/roseday/internal/version"
)

const (
	// TogetherName is the provider name reported by TogetherClient
	TogetherName = "together"

	// DefaultTimeout is the HTTP request timeout when settings leave it unset
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes bounds how much of a response body is read
	maxResponseBytes = 1 << 20
)

// TogetherClient calls the Together AI completions endpoint
type TogetherClient struct {
	// BaseURL is the API root, e.g. "https://api.together.xyz/v1"
	BaseURL string

	// APIKey is sent as a bearer token
	APIKey string

	Model             string
	MaxTokens         int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

type togetherRequest struct {
	Model             string  `json:"model"`
	Prompt            string  `json:"prompt"`
	MaxTokens         int     `json:"max_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

type togetherChoice struct {
	Text string `json:"text"`
}

// Together has answered both with a nested "output" object and with the
// OpenAI-compatible top-level "choices" array.
type togetherResponse struct {
	Output *struct {
		Choices []togetherChoice `json:"choices"`
	} `json:"output"`
	Choices []togetherChoice `json:"choices"`
}

func (r *togetherResponse) text() string {
	if r.Output != nil && len(r.Output.Choices) > 0 {
		return r.Output.Choices[0].Text
	}
	if len(r.Choices) > 0 {
		return r.Choices[0].Text
	}
	return ""
}

// NewTogetherClient creates a client from the together section of settings
func NewTogetherClient(apiKey string, s config.TogetherSettings) *TogetherClient {
	timeout := time.Duration(s.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultTogetherBaseURL
	}

	return &TogetherClient{
		BaseURL:           strings.TrimRight(baseURL, "/"),
		APIKey:            apiKey,
		Model:             s.Model,
		MaxTokens:         s.MaxTokens,
		Temperature:       s.Temperature,
		TopP:              s.TopP,
		RepetitionPenalty: s.RepetitionPenalty,
		HTTPClient:        &http.Client{Timeout: timeout},
	}
}

// Name implements Completer
func (c *TogetherClient) Name() string {
	return TogetherName
}

// Complete implements Completer
func (c *TogetherClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(togetherRequest{
		Model:             c.Model,
		Prompt:            prompt,
		MaxTokens:         c.MaxTokens,
		Temperature:       c.Temperature,
		TopP:              c.TopP,
		RepetitionPenalty: c.RepetitionPenalty,
	})
	if err != nil {
		return "", NewParseError(TogetherName, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/completions", bytes.NewReader(body))
	if err != nil {
		return "", ClassifyNetworkError(TogetherName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("User-Agent", version.UserAgent())

	logging.LogProviderRequest(TogetherName, c.Model, len(prompt))
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", ClassifyNetworkError(TogetherName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", ClassifyNetworkError(TogetherName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.LogProviderResponse(TogetherName, resp.StatusCode, 0, time.Since(start))
		return "", NewHTTPError(TogetherName, resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d %s", resp.StatusCode, snippet(data)))
	}

	var parsed togetherResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", NewParseError(TogetherName, "failed to parse JSON response", err)
	}

	text := strings.TrimSpace(parsed.text())
	logging.LogProviderResponse(TogetherName, resp.StatusCode, len(text), time.Since(start))
	if text == "" {
		return "", NewEmptyResultError(TogetherName)
	}
	return text, nil
}

const snippetRunes = 120

// snippet returns a short prefix of an error body for messages
func snippet(data []byte) string {
	s := []rune(strings.TrimSpace(string(data)))
	if len(s) > snippetRunes {
		return string(s[:snippetRunes]) + "..."
	}
	return string(s)
}
