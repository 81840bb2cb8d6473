package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success, failure or warning
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result is a boxed outcome printed after a command
type Result struct {
	Type            ResultType
	Title           string
	Details         []Detail
	Error           error
	Troubleshooting []string
	Width           int
}

// NewSuccessResult creates a success box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewWarningResult creates a warning box
func NewWarningResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultWarning, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure box with troubleshooting tips
func NewFailureResult(title string, err error, troubleshooting []string) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
	}
}

// SetWidth sets the render width
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a key/value line
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Value: value})
	return r
}

// Render returns the styled box
func (r *Result) Render() string {
	width := max(r.Width, MinTerminalWidth)

	var marker, label string
	var titleStyle lipgloss.Style
	var color lipgloss.TerminalColor

	switch r.Type {
	case ResultFailure:
		marker, label, titleStyle, color = FailureMarker, "FAILED", ErrorTitleStyle, ErrorColor
	case ResultWarning:
		marker, label, titleStyle, color = WarningMarker, "WARNING", WarningTitleStyle, WarningColor
	default:
		marker, label, titleStyle, color = SuccessMarker, "SUCCESS", SuccessTitleStyle, SuccessColor
	}

	lines := []string{"", titleStyle.Render(fmt.Sprintf("   %s  %s  ─  %s", marker, label, r.Title)), ""}

	for _, d := range r.Details {
		lines = append(lines, ResultKeyStyle.Render("   "+d.Key+":")+" "+ResultValueStyle.Render(d.Value))
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+r.Error.Error()), "")
	}

	if len(r.Troubleshooting) > 0 {
		lines = append(lines, renderTroubleshooting(r.Troubleshooting, width), "")
	}

	return boxStyle(lipgloss.DoubleBorder(), color, width).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

func renderTroubleshooting(tips []string, width int) string {
	lines := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
	for _, tip := range tips {
		lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(max(width-12, 40)).
		Padding(0, 1).
		MarginLeft(3).
		Render(strings.Join(lines, "\n"))
}

// RenderNote renders the note in a rose bordered card
func RenderNote(name, text string, width int) string {
	width = max(width, MinTerminalWidth)
	title := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).
		Render(fmt.Sprintf("%s  For %s", RoseMarker, name))
	body := NoteTextStyle.Width(width - 8).Render(text)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width-2).
		Padding(1, 2).
		Render(title + "\n\n" + body)
}
