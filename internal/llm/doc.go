// Package llm provides the text-generation transports used to write notes.
//
// Two providers implement Completer:
//   - TogetherClient posts to the Together AI completions endpoint
//   - GeminiClient calls the Gemini API through google.golang.org/genai
//
// New selects one from the user settings and validates the credential up
// front, so a missing API key surfaces once as an *Error of type
// ErrTypeConfiguration instead of on every request.
//
// Every failure is an *Error. Callers branch on the category helpers:
//
//	text, err := completer.Complete(ctx, prompt)
//	switch {
//	case llm.IsTransportError(err):
//	    // network, non-2xx or malformed body
//	case llm.IsEmptyResultError(err):
//	    // well-formed response without text
//	}
package llm
