package config

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in the provider field
const (
	ProviderTogether = "together"
	ProviderGemini   = "gemini"
)

// Settings represents the entire user configuration file.
// Credentials are never part of it; see APIKey.
type Settings struct {
	Version     int               `yaml:"version"`
	Provider    string            `yaml:"provider"`
	Together    *TogetherSettings `yaml:"together,omitempty"`
	Gemini      *GeminiSettings   `yaml:"gemini,omitempty"`
	Preferences *Preferences      `yaml:"preferences,omitempty"`
	Share       *ShareSettings    `yaml:"share,omitempty"`
}

// TogetherSettings configures the Together AI completions endpoint.
type TogetherSettings struct {
	BaseURL           string  `yaml:"base_url"`
	Model             string  `yaml:"model"`
	MaxTokens         int     `yaml:"max_tokens"`
	Temperature       float64 `yaml:"temperature"`
	TopP              float64 `yaml:"top_p"`
	RepetitionPenalty float64 `yaml:"repetition_penalty"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
}

// GeminiSettings configures the Gemini API client.
type GeminiSettings struct {
	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"`
}

// Preferences represents interactive UI preferences.
type Preferences struct {
	AutoAdvanceMS int    `yaml:"auto_advance_ms"`     // Loading screen duration
	Sound         bool   `yaml:"sound"`               // Terminal bell cues
	NameHint      string `yaml:"name_hint,omitempty"` // Shown under the name prompt
}

// ShareSettings configures the LAN share server.
type ShareSettings struct {
	Port      int  `yaml:"port"`
	Advertise bool `yaml:"advertise"` // Register the card over mDNS
}

// Defaults
const (
	DefaultTogetherBaseURL = "https://api.together.xyz/v1"
	DefaultTogetherModel   = "meta-llama/Llama-2-7b-chat-hf"
	DefaultGeminiModel     = "gemini-2.0-flash"
	DefaultAutoAdvance     = 2500 * time.Millisecond
	DefaultSharePort       = 8080
	DefaultNameHint        = "Hint: this rose is only for someone special ❤️"
)

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	s := &Settings{Version: 1, Provider: ProviderTogether}
	s.applyDefaults()
	return s
}

// applyDefaults fills every section that a partial file left out.
func (s *Settings) applyDefaults() {
	if s.Provider == "" {
		s.Provider = ProviderTogether
	}
	if s.Together == nil {
		s.Together = &TogetherSettings{}
	}
	t := s.Together
	if t.BaseURL == "" {
		t.BaseURL = DefaultTogetherBaseURL
	}
	if t.Model == "" {
		t.Model = DefaultTogetherModel
	}
	if t.MaxTokens == 0 {
		t.MaxTokens = 200
	}
	if t.Temperature == 0 {
		t.Temperature = 0.7
	}
	if t.TopP == 0 {
		t.TopP = 0.7
	}
	if t.RepetitionPenalty == 0 {
		t.RepetitionPenalty = 1
	}
	if t.TimeoutSeconds == 0 {
		t.TimeoutSeconds = 30
	}

	if s.Gemini == nil {
		s.Gemini = &GeminiSettings{}
	}
	g := s.Gemini
	if g.Model == "" {
		g.Model = DefaultGeminiModel
	}
	if g.MaxOutputTokens == 0 {
		g.MaxOutputTokens = 200
	}
	if g.Temperature == 0 {
		g.Temperature = 0.7
	}
	if g.TimeoutSeconds == 0 {
		g.TimeoutSeconds = 30
	}

	if s.Preferences == nil {
		s.Preferences = &Preferences{
			AutoAdvanceMS: int(DefaultAutoAdvance / time.Millisecond),
			Sound:         true,
			NameHint:      DefaultNameHint,
		}
	}
	if s.Share == nil {
		s.Share = &ShareSettings{Port: DefaultSharePort, Advertise: true}
	}
	if s.Share.Port == 0 {
		s.Share.Port = DefaultSharePort
	}
}

// Validate checks ranges and the provider name.
func (s *Settings) Validate() error {
	switch s.Provider {
	case ProviderTogether, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (expected %q or %q)", s.Provider, ProviderTogether, ProviderGemini)
	}

	if t := s.Together; t != nil {
		if t.MaxTokens < 1 {
			return fmt.Errorf("together.max_tokens must be positive, got %d", t.MaxTokens)
		}
		if t.Temperature < 0 || t.Temperature > 2 {
			return fmt.Errorf("together.temperature must be between 0 and 2, got %g", t.Temperature)
		}
		if t.TopP < 0 || t.TopP > 1 {
			return fmt.Errorf("together.top_p must be between 0 and 1, got %g", t.TopP)
		}
	}

	if g := s.Gemini; g != nil {
		if g.MaxOutputTokens < 1 {
			return fmt.Errorf("gemini.max_output_tokens must be positive, got %d", g.MaxOutputTokens)
		}
		if g.Temperature < 0 || g.Temperature > 2 {
			return fmt.Errorf("gemini.temperature must be between 0 and 2, got %g", g.Temperature)
		}
	}

	if p := s.Preferences; p != nil && p.AutoAdvanceMS < 0 {
		return fmt.Errorf("preferences.auto_advance_ms must not be negative, got %d", p.AutoAdvanceMS)
	}

	if sh := s.Share; sh != nil && (sh.Port < 1 || sh.Port > 65535) {
		return fmt.Errorf("share.port must be between 1 and 65535, got %d", sh.Port)
	}

	return nil
}

// AutoAdvance returns the loading screen duration.
func (s *Settings) AutoAdvance() time.Duration {
	if s.Preferences == nil {
		return DefaultAutoAdvance
	}
	return time.Duration(s.Preferences.AutoAdvanceMS) * time.Millisecond
}

// Environment variables holding provider credentials, in lookup order.
var (
	TogetherKeyEnvVars = []string{"ROSEDAY_TOGETHER_API_KEY", "TOGETHER_API_KEY", "VITE_TOGETHER_API_KEY"}
	GeminiKeyEnvVars   = []string{"ROSEDAY_GEMINI_API_KEY", "GEMINI_API_KEY", "VITE_GEMINI_API_KEY"}
)

// KeyEnvVars returns the credential variables for a provider.
func KeyEnvVars(provider string) []string {
	switch provider {
	case ProviderGemini:
		return GeminiKeyEnvVars
	default:
		return TogetherKeyEnvVars
	}
}

// APIKey returns the first non-empty credential for the provider.
func APIKey(provider string) string {
	for _, name := range KeyEnvVars(provider) {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
