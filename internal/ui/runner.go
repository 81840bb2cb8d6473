package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig describes a command run with the header, progress, result
// flow
type RunnerConfig struct {
	Title     string   // e.g. "Rose Day Note"
	Command   string   // e.g. "roseday generate"
	Params    []Detail // shown in the header
	StepNames []string // one progress line per step
	Verbose   bool     // print transcripts after the result
	Quiet     bool     // skip header and progress (machine readable output)
	Output    io.Writer

	// Hints returns troubleshooting tips for a failure
	Hints func(err error) []string
}

// Operation is the work performed by a Runner. It reports progress through
// onStep and returns the details for the success box.
type Operation func(ctx context.Context, onStep StepCallback) ([]Detail, error)

// Runner prints a header, tracks step progress and finishes with a result
// box
type Runner struct {
	config      RunnerConfig
	header      *Header
	progress    *Progress
	out         io.Writer
	width       int
	transcripts []*Transcript
	warning     string
}

// NewRunner creates a runner sized to the terminal
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := GetTerminalWidth()

	return &Runner{
		config:   config,
		header:   NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		progress: NewProgress(config.StepNames...).SetWidth(width),
		out:      config.Output,
		width:    width,
	}
}

// AddTranscript queues a transcript box for verbose output
func (r *Runner) AddTranscript(title, content string) {
	r.transcripts = append(r.transcripts, NewTranscript(title, content).SetWidth(r.width))
}

// Warn turns the success box into a warning box with the given title
func (r *Runner) Warn(title string) {
	r.warning = title
}

// Progress returns the step tracker
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run executes op with UI updates and returns its error
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := time.Now()

	if !r.config.Quiet {
		_, _ = fmt.Fprintln(r.out, r.header.Render())
		_, _ = fmt.Fprintln(r.out)
	}

	details, err := op(ctx, r.onStep)
	duration := time.Since(start).Round(time.Millisecond)

	if r.config.Quiet {
		return err
	}

	_, _ = fmt.Fprintln(r.out)
	if err != nil {
		var hints []string
		if r.config.Hints != nil {
			hints = r.config.Hints(err)
		}
		res := NewFailureResult(r.config.Title+" failed", err, hints).SetWidth(r.width)
		res.AddDetail("Duration", duration.String())
		_, _ = fmt.Fprintln(r.out, res.Render())
	} else {
		var res *Result
		if r.warning != "" {
			res = NewWarningResult(r.warning, details...)
		} else {
			res = NewSuccessResult(r.config.Title+" complete", details...)
		}
		res.SetWidth(r.width).AddDetail("Duration", duration.String())
		_, _ = fmt.Fprintln(r.out, res.Render())
	}

	if r.config.Verbose {
		for _, t := range r.transcripts {
			_, _ = fmt.Fprintln(r.out)
			_, _ = fmt.Fprintln(r.out, t.Render())
		}
	}

	return err
}

func (r *Runner) onStep(number int, status StepStatus, message string) {
	r.progress.UpdateStep(number, status, message)
	if r.config.Quiet || number < 1 || number > r.progress.Total() {
		return
	}

	line := r.progress.renderStepLine(r.progress.Steps[number-1])
	switch status {
	case StepRunning:
		// Overwritten when the step finishes
		_, _ = fmt.Fprint(r.out, line+"\r")
	case StepComplete, StepFailed, StepSkipped:
		_, _ = fmt.Fprintln(r.out, line)
	}
}
