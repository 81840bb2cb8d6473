package llm

import (
	"context"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiText(t *testing.T) {
	if got := geminiText(nil); got != "" {
		t.Errorf("geminiText(nil) = %q, want empty", got)
	}

	res := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "Roses are red"}}},
		}},
	}
	if got := geminiText(res); got != "Roses are red" {
		t.Errorf("geminiText() = %q, want %q", got, "Roses are red")
	}

	if got := geminiText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("geminiText(no candidates) = %q, want empty", got)
	}
}

func TestClassifyGeminiError(t *testing.T) {
	apiErr := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"}

	e := classifyGeminiError(fmt.Errorf("generate: %w", apiErr))
	if e.Type != ErrTypeHTTP || e.StatusCode != 429 {
		t.Errorf("classifyGeminiError(APIError) = %v, want HTTP 429", e)
	}
	if e.Provider != GeminiName {
		t.Errorf("Provider = %q, want %q", e.Provider, GeminiName)
	}

	e = classifyGeminiError(context.DeadlineExceeded)
	if e.Type != ErrTypeNetwork || !e.Timeout {
		t.Errorf("classifyGeminiError(deadline) = %+v, want network timeout", e)
	}
}
