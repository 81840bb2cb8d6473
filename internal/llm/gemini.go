package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/logging"
)

// GeminiName is the provider name reported by GeminiClient
const GeminiName = "gemini"

// GeminiClient calls the Gemini API through the genai SDK
type GeminiClient struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a client from the gemini section of settings.
// The SDK client is created on first use.
func NewGeminiClient(apiKey string, s config.GeminiSettings) *GeminiClient {
	timeout := time.Duration(s.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{
		APIKey:          apiKey,
		Model:           s.Model,
		MaxOutputTokens: s.MaxOutputTokens,
		Temperature:     s.Temperature,
		Timeout:         timeout,
	}
}

// Name implements Completer
func (c *GeminiClient) Name() string {
	return GeminiName
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &Error{Type: ErrTypeConfiguration, Provider: GeminiName, Message: "creating Gemini client", Err: err}
	}
	c.client = client
	return client, nil
}

// Complete implements Completer
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	temp := float32(c.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(c.MaxOutputTokens),
	}

	logging.LogProviderRequest(GeminiName, c.Model, len(prompt))
	start := time.Now()

	res, err := client.Models.GenerateContent(ctx, c.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := strings.TrimSpace(geminiText(res))
	logging.LogProviderResponse(GeminiName, 200, len(text), time.Since(start))
	if text == "" {
		return "", NewEmptyResultError(GeminiName)
	}
	return text, nil
}

// geminiText reads the aggregated text, falling back to the first part of
// the first candidate.
func geminiText(res *genai.GenerateContentResponse) string {
	if res == nil {
		return ""
	}
	if text := res.Text(); text != "" {
		return text
	}
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil && len(res.Candidates[0].Content.Parts) > 0 {
		return res.Candidates[0].Content.Parts[0].Text
	}
	return ""
}

func classifyGeminiError(err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		e := NewHTTPError(GeminiName, apiErr.Code, fmt.Sprintf("%s %s", apiErr.Status, apiErr.Message))
		e.Err = err
		return e
	}
	return ClassifyNetworkError(GeminiName, err)
}
