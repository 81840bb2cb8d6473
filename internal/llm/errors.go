package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/muurk/roseday/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeConfiguration indicates a missing credential or unknown provider
	ErrTypeConfiguration ErrorType = iota
	// ErrTypeNetwork indicates a network-level failure (refused, timeout, DNS)
	ErrTypeNetwork
	// ErrTypeHTTP indicates a non-2xx status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeEmpty indicates a well-formed response without usable text
	ErrTypeEmpty
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConfiguration:
		return "Configuration Error"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeEmpty:
		return "Empty Result"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error represents a failure talking to a text-generation provider
type Error struct {
	Type       ErrorType // Category of error
	Provider   string    // Provider name, e.g. "together"
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Timeout    bool      // Network error caused by a deadline
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := e.Type.String()
	if e.Provider != "" {
		prefix = e.Provider + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError wraps a transport failure with a specific message
func ClassifyNetworkError(provider string, err error) *Error {
	if err == nil {
		return nil
	}

	e := &Error{Type: ErrTypeNetwork, Provider: provider, Message: "network error occurred", Err: err}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		e.Message = "request timed out"
		e.Timeout = true
		return e
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		e.Message = fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
		return e
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			e.Message = "connection refused"
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH), errors.Is(opErr.Err, syscall.ENETUNREACH):
			e.Message = "network unreachable"
		}
		return e
	}

	return e
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(provider, message string) *Error {
	return &Error{Type: ErrTypeConfiguration, Provider: provider, Message: message}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(provider string, statusCode int, message string) *Error {
	return &Error{Type: ErrTypeHTTP, Provider: provider, StatusCode: statusCode, Message: message}
}

// NewParseError creates a parsing error
func NewParseError(provider, message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Provider: provider, Message: message, Err: err}
}

// NewEmptyResultError creates an empty result error
func NewEmptyResultError(provider string) *Error {
	return &Error{Type: ErrTypeEmpty, Provider: provider, Message: "response contained no text"}
}

func errorType(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return 0, false
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeConfiguration
}

// IsTransportError checks if an error is a network, HTTP or parse error
func IsTransportError(err error) bool {
	t, ok := errorType(err)
	return ok && (t == ErrTypeNetwork || t == ErrTypeHTTP || t == ErrTypeParse)
}

// IsEmptyResultError checks if an error is an empty result error
func IsEmptyResultError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeEmpty
}

// TroubleshootingHints returns user-facing advice for an error
func TroubleshootingHints(err error) []string {
	var e *Error
	if !errors.As(err, &e) {
		return []string{
			"An unexpected error occurred. Run again with --log-level debug for details.",
			"See " + urls.Troubleshooting,
		}
	}

	switch e.Type {
	case ErrTypeConfiguration:
		hints := []string{
			e.Message,
			"Export the API key for the selected provider, for example:",
			"  export TOGETHER_API_KEY=...",
			"  export GEMINI_API_KEY=...",
			"Select the provider with --provider or the provider field in the config file",
		}
		if page := urls.APIKeys(e.Provider); page != "" {
			hints = append(hints, "Create a key at "+page)
		}
		return hints

	case ErrTypeNetwork:
		if e.Timeout {
			return []string{
				"The provider did not respond in time.",
				"Check your internet connection",
				"Raise timeout_seconds in the config file",
			}
		}
		return []string{
			"Could not reach the provider.",
			"Check your internet connection and proxy settings",
			"Verify base_url in the config file",
		}

	case ErrTypeHTTP:
		switch {
		case e.StatusCode == 401 || e.StatusCode == 403:
			return []string{
				fmt.Sprintf("The provider rejected the API key (HTTP %d).", e.StatusCode),
				"Check that the key is valid and has not been revoked",
				"Keys are managed at " + urls.APIKeys(e.Provider),
			}
		case e.StatusCode == 429:
			return []string{
				"The provider is rate limiting requests (HTTP 429).",
				"Wait a moment and try again, or check your plan quota",
			}
		case e.StatusCode >= 500:
			hints := []string{
				fmt.Sprintf("The provider returned a server error (HTTP %d).", e.StatusCode),
				"This is usually temporary; try again shortly",
			}
			if e.Provider == TogetherName {
				hints = append(hints, "Provider status: "+urls.TogetherStatus)
			}
			return hints
		default:
			return []string{
				fmt.Sprintf("The provider returned HTTP %d.", e.StatusCode),
				"Check the model name in the config file",
			}
		}

	case ErrTypeParse:
		return []string{
			"The provider response could not be parsed.",
			"Verify base_url points at a completions endpoint",
		}

	case ErrTypeEmpty:
		return []string{
			"The provider answered but returned no text.",
			"Try a different model or raise max_tokens",
		}

	default:
		return []string{strings.TrimSpace(e.Message)}
	}
}
