package llm

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeConfiguration, "Configuration Error"},
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeParse, "Parse Error"},
		{ErrTypeEmpty, "Empty Result"},
		{ErrorType(42), "ErrorType(42)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Type: ErrTypeParse, Provider: "together", Message: "bad body", Err: cause}

	if got := err.Error(); got != "together: Parse Error: bad body (caused by: boom)" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestCategoryHelpers(t *testing.T) {
	wrapped := fmt.Errorf("candidates: %w", NewHTTPError("together", 500, "x"))

	tests := []struct {
		name      string
		err       error
		config    bool
		transport bool
		empty     bool
	}{
		{"configuration", NewConfigurationError("together", "no key"), true, false, false},
		{"network", ClassifyNetworkError("together", errors.New("reset")), false, true, false},
		{"http wrapped", wrapped, false, true, false},
		{"parse", NewParseError("together", "x", nil), false, true, false},
		{"empty", NewEmptyResultError("gemini"), false, false, true},
		{"plain", errors.New("plain"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigurationError(tt.err); got != tt.config {
				t.Errorf("IsConfigurationError() = %v, want %v", got, tt.config)
			}
			if got := IsTransportError(tt.err); got != tt.transport {
				t.Errorf("IsTransportError() = %v, want %v", got, tt.transport)
			}
			if got := IsEmptyResultError(tt.err); got != tt.empty {
				t.Errorf("IsEmptyResultError() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestClassifyNetworkError(t *testing.T) {
	if ClassifyNetworkError("x", nil) != nil {
		t.Error("nil error should classify to nil")
	}

	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	if got := ClassifyNetworkError("together", refused); got.Message != "connection refused" {
		t.Errorf("refused message = %q", got.Message)
	}

	dns := &net.DNSError{Name: "api.together.xyz", Err: "no such host"}
	if got := ClassifyNetworkError("together", dns); !strings.Contains(got.Message, "api.together.xyz") {
		t.Errorf("dns message = %q", got.Message)
	}
}

func TestTroubleshootingHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"configuration", NewConfigurationError("together", "no API key found"), "TOGETHER_API_KEY"},
		{"unauthorized", NewHTTPError("together", 401, "x"), "rejected the API key"},
		{"rate limited", NewHTTPError("together", 429, "x"), "rate limiting"},
		{"server", NewHTTPError("together", 503, "x"), "server error"},
		{"empty", NewEmptyResultError("together"), "no text"},
		{"timeout", &Error{Type: ErrTypeNetwork, Timeout: true}, "in time"},
		{"unknown", errors.New("x"), "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := strings.Join(TroubleshootingHints(tt.err), "\n")
			if !strings.Contains(hints, tt.want) {
				t.Errorf("hints = %q, want mention of %q", hints, tt.want)
			}
		})
	}
}

func TestTroubleshootingHints_KeyPages(t *testing.T) {
	hints := strings.Join(TroubleshootingHints(NewConfigurationError("gemini", "no API key found")), "\n")
	if !strings.Contains(hints, "aistudio.google.com") {
		t.Errorf("hints = %q, want the Gemini key page", hints)
	}

	hints = strings.Join(TroubleshootingHints(NewHTTPError("gemini", 500, "x")), "\n")
	if strings.Contains(hints, "status.together.ai") {
		t.Errorf("hints = %q, Together status page shown for Gemini", hints)
	}
}
