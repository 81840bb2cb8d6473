package llm

import "context"

// Func adapts a plain function to Completer. Tests and offline demos use it
// in place of a network provider.
type Func struct {
	Provider string
	Fn       func(ctx context.Context, prompt string) (string, error)
}

// Name implements Completer
func (f Func) Name() string {
	if f.Provider == "" {
		return "func"
	}
	return f.Provider
}

// Complete implements Completer
func (f Func) Complete(ctx context.Context, prompt string) (string, error) {
	return f.Fn(ctx, prompt)
}
