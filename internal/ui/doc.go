// Package ui provides terminal output components for the roseday
// subcommands.
//
// Unlike the interactive card (package tui), these components print once
// and return. The main types are:
//
//   - Header: command banner showing the operation and its parameters
//   - Progress: bar plus one line per step
//   - Result: success, warning or failure box with troubleshooting tips
//   - Transcript: raw provider text for --verbose
//
// Runner ties them together as header → progress → result:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Rose Day Note",
//	    Command:   "roseday generate",
//	    Params:    []ui.Detail{{Key: "Recipient", Value: "Alex"}},
//	    StepNames: []string{"Writing candidates", "Picking the best"},
//	    Hints:     llm.TroubleshootingHints,
//	})
//
//	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Detail, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ...
//	    onStep(1, ui.StepComplete, "1.2s")
//	    return nil, nil
//	})
//
// Logging is silent unless ROSEDAY_LOG_LEVEL is set, so this output is the
// only thing a user sees by default.
package ui
