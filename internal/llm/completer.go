package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/muurk/roseday/internal/config"
)

// Completer sends one prompt to a text-generation endpoint and returns the
// trimmed text. An empty answer is reported as an ErrTypeEmpty error, never
// as an empty string with a nil error.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Options overrides sampling parameters for a single client. Zero values
// keep the configured defaults.
type Options struct {
	MaxTokens   int
	Temperature *float64
}

// New builds the Completer selected by settings.Provider. The credential is
// looked up once here; a missing key is an ErrTypeConfiguration error.
func New(settings *config.Settings) (Completer, error) {
	return NewWithOptions(settings, Options{})
}

// NewWithOptions is New with per-call sampling overrides (used by check).
func NewWithOptions(settings *config.Settings, opts Options) (Completer, error) {
	if settings == nil {
		settings = config.NewSettings()
	}

	provider := strings.ToLower(strings.TrimSpace(settings.Provider))
	key := config.APIKey(provider)

	switch provider {
	case config.ProviderTogether:
		if key == "" {
			return nil, missingKey(provider)
		}
		t := *settings.Together
		if opts.MaxTokens > 0 {
			t.MaxTokens = opts.MaxTokens
		}
		if opts.Temperature != nil {
			t.Temperature = *opts.Temperature
		}
		return NewTogetherClient(key, t), nil

	case config.ProviderGemini:
		if key == "" {
			return nil, missingKey(provider)
		}
		g := *settings.Gemini
		if opts.MaxTokens > 0 {
			g.MaxOutputTokens = opts.MaxTokens
		}
		if opts.Temperature != nil {
			g.Temperature = *opts.Temperature
		}
		return NewGeminiClient(key, g), nil

	default:
		return nil, NewConfigurationError(provider, fmt.Sprintf("unknown provider %q", settings.Provider))
	}
}

func missingKey(provider string) *Error {
	return NewConfigurationError(provider,
		fmt.Sprintf("no API key found (set one of %s)", strings.Join(config.KeyEnvVars(provider), ", ")))
}
