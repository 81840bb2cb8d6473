package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Transcript is a box of raw provider text shown in verbose mode
type Transcript struct {
	Title    string
	Content  string
	Width    int
	MaxLines int // 0 = unlimited
}

// NewTranscript creates a transcript box
func NewTranscript(title, content string) *Transcript {
	return &Transcript{Title: title, Content: content, Width: GetTerminalWidth()}
}

// SetWidth sets the render width
func (t *Transcript) SetWidth(width int) *Transcript {
	t.Width = width
	return t
}

// SetMaxLines limits the number of lines displayed
func (t *Transcript) SetMaxLines(n int) *Transcript {
	t.MaxLines = n
	return t
}

// Render returns the styled box. Truncated content ends in a count of the
// hidden lines.
func (t *Transcript) Render() string {
	width := max(t.Width, MinTerminalWidth)

	content := strings.TrimRight(t.Content, "\n")
	if content == "" {
		content = "(empty)"
	}
	lines := strings.Split(content, "\n")
	if t.MaxLines > 0 && len(lines) > t.MaxLines {
		hidden := len(lines) - t.MaxLines
		lines = append(lines[:t.MaxLines], StepNoteStyle.Render("... "+strconv.Itoa(hidden)+" more lines"))
	}

	body := lipgloss.NewStyle().Foreground(TextColor).Width(width - 8).Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-4).
		Padding(0, 1).
		Render(TranscriptTitleStyle.Render(t.Title) + "\n" + body)
}

// String implements fmt.Stringer
func (t *Transcript) String() string {
	return t.Render()
}
