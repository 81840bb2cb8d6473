package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepFailed
	StepSkipped
)

// Step is one line of a multi-step operation
type Step struct {
	Number  int
	Name    string
	Status  StepStatus
	Message string // e.g. "1.2s"
}

// Progress tracks a list of steps and renders a bar plus step lines
type Progress struct {
	Steps   []Step
	Percent float64
	Width   int
	bar     progress.Model
}

// NewProgress creates a progress display for the named steps
func NewProgress(names ...string) *Progress {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name}
	}
	p := &Progress{Steps: steps}
	return p.SetWidth(GetTerminalWidth())
}

// SetWidth resizes the bar for the given terminal width
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := min(max(width-20, 20), 50)
	p.bar = progress.New(
		progress.WithGradient(string(PrimaryColor), string(AccentColor)),
		progress.WithWidth(barWidth),
	)
	return p
}

// Total returns the number of steps
func (p *Progress) Total() int {
	return len(p.Steps)
}

// UpdateStep sets the status of a step (1-based)
func (p *Progress) UpdateStep(number int, status StepStatus, message string) {
	if number < 1 || number > len(p.Steps) {
		return
	}
	p.Steps[number-1].Status = status
	p.Steps[number-1].Message = message

	done := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete || s.Status == StepSkipped {
			done++
		}
	}
	p.Percent = float64(done) / float64(len(p.Steps))
}

// Render returns the bar followed by every step line
func (p *Progress) Render() string {
	lines := []string{p.renderBar(), ""}
	for _, s := range p.Steps {
		lines = append(lines, p.renderStepLine(s))
	}
	return strings.Join(lines, "\n")
}

func (p *Progress) renderBar() string {
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %3.0f%%", p.bar.ViewAs(p.Percent), p.Percent*100))
}

func (p *Progress) renderStepLine(s Step) string {
	var marker string
	var style lipgloss.Style

	switch s.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker, style = StepMarkerSkipped, StepPendingStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  [%d/%d] ", s.Number, len(p.Steps))
	b.WriteString(style.Render(s.Name))
	b.WriteString(strings.Repeat(" ", max(40-lipgloss.Width(s.Name), 1)))
	b.WriteString(style.Render(marker))
	if s.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + s.Message + ")"))
	}
	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}

// StepCallback reports progress of one step (1-based)
type StepCallback func(number int, status StepStatus, message string)
