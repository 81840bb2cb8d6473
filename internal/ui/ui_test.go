package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		width int
		err   error
		want  int
	}{
		{80, nil, 80},
		{20, nil, MinTerminalWidth},
		{300, nil, MaxContentWidth},
		{80, errors.New("not a tty"), MinTerminalWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.width, tt.err); got != tt.want {
			t.Errorf("clampWidth(%d, %v) = %d, want %d", tt.width, tt.err, got, tt.want)
		}
	}
}

func TestProgress_UpdateStep(t *testing.T) {
	p := NewProgress("Writing candidates", "Picking the best")

	p.UpdateStep(1, StepComplete, "")
	if p.Percent != 0.5 {
		t.Errorf("Percent = %v, want 0.5", p.Percent)
	}

	p.UpdateStep(3, StepComplete, "") // out of range
	p.UpdateStep(2, StepFailed, "boom")
	if p.Percent != 0.5 {
		t.Errorf("Percent after failure = %v, want 0.5", p.Percent)
	}

	out := p.Render()
	if !strings.Contains(out, "[2/2]") || !strings.Contains(out, "(boom)") {
		t.Errorf("Render() missing step line: %q", out)
	}
}

func TestRunner_Success(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:     "Rose Day Note",
		Command:   "roseday generate",
		Params:    []Detail{{Key: "Recipient", Value: "Alex"}},
		StepNames: []string{"Writing candidates"},
		Verbose:   true,
		Output:    &buf,
	})
	r.AddTranscript("Candidates", "1) a\n2) b")

	err := r.Run(context.Background(), func(ctx context.Context, onStep StepCallback) ([]Detail, error) {
		onStep(1, StepRunning, "")
		onStep(1, StepComplete, "1ms")
		return []Detail{{Key: "Provider", Value: "fake"}}, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ROSE DAY NOTE", "roseday generate", "Alex", "Writing candidates", "SUCCESS", "Provider", "Candidates", "2) b"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunner_FailureUsesHints(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:  "Provider check",
		Output: &buf,
		Hints:  func(error) []string { return []string{"export TOGETHER_API_KEY"} },
	})

	want := errors.New("no key")
	err := r.Run(context.Background(), func(context.Context, StepCallback) ([]Detail, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Run() error = %v, want %v", err, want)
	}

	out := buf.String()
	if !strings.Contains(out, "FAILED") || !strings.Contains(out, "export TOGETHER_API_KEY") {
		t.Errorf("failure output = %q", out)
	}
}

func TestRunner_QuietPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{Title: "x", StepNames: []string{"a"}, Quiet: true, Output: &buf})

	_ = r.Run(context.Background(), func(ctx context.Context, onStep StepCallback) ([]Detail, error) {
		onStep(1, StepComplete, "")
		return nil, nil
	})
	if buf.Len() != 0 {
		t.Errorf("quiet runner wrote %q", buf.String())
	}
}

func TestRunner_Warn(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{Title: "Rose Day Note", Output: &buf})
	r.Warn("Used the fallback note")

	_ = r.Run(context.Background(), func(context.Context, StepCallback) ([]Detail, error) { return nil, nil })
	if !strings.Contains(buf.String(), "WARNING") {
		t.Errorf("output = %q, want warning box", buf.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Overwrite", []string{"exists"}, "Replace it?")
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTranscript_MaxLines(t *testing.T) {
	out := NewTranscript("Candidates", "1\n2\n3\n4").SetMaxLines(2).Render()
	if !strings.Contains(out, "2 more lines") {
		t.Errorf("Render() = %q, want truncation marker", out)
	}
	if strings.Contains(out, "4") && !strings.Contains(out, "more lines") {
		t.Error("hidden lines should not be rendered")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"TAG", "LABEL"}, [][]string{{"Poetic", "Poetic"}, {"Playful", "Cute"}})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[2], "Playful") || !strings.Contains(lines[2], "Cute") {
		t.Errorf("row = %q", lines[2])
	}
}
