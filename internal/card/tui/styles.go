package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/roseday/internal/version"
)

// Application branding
const (
	AppName   = "ROSE DAY"
	GitHubURL = "github.com/muurk/roseday"
)

// AppVersion returns the application version
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	MinTerminalWidth = 60
	skyHeight        = 6
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#E11D48") // Rose
	SecondaryColor = lipgloss.Color("#FFB6C1") // Light pink
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	LeafColor      = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange

	TextColor   = lipgloss.Color("#FFFFFF")
	SubtleColor = lipgloss.Color("#626262")
	BorderColor = lipgloss.Color("#E11D48")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	RoseStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	StemStyle = lipgloss.NewStyle().
			Foreground(LeafColor)

	// Style cards on the choice screen
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1).
			Width(12).
			Align(lipgloss.Center)

	SelectedCardStyle = CardStyle.
				BorderForeground(PrimaryColor).
				Foreground(SecondaryColor).
				Bold(true)

	YesButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	NoButtonStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	NoteStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	SelectedWordStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// BuildHeaderContent creates the header line: app name, version and the
// provider in use
func BuildHeaderContent(provider string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render("🌹 " + AppName + " v" + AppVersion())

	rightText := GitHubURL
	if provider != "" {
		rightText = provider + " · " + GitHubURL
	}
	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(rightText)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps every screen: header, centred content,
// help footer and an outer border filling the terminal.
func RenderApplicationContainer(content, header, footerText string, terminalWidth, terminalHeight int) string {
	terminalWidth = max(terminalWidth, MinTerminalWidth)
	terminalHeight = max(terminalHeight, 12)

	styledHeader := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(header)

	styledFooter := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1).
		Foreground(SubtleColor).
		Render(footerText)

	// header and footer take two lines each, the outer border two more
	bodyHeight := max(terminalHeight-2-lipgloss.Height(styledHeader)-lipgloss.Height(styledFooter), 1)
	body := lipgloss.Place(terminalWidth-4, bodyHeight, lipgloss.Center, lipgloss.Center, content)

	inner := lipgloss.JoinVertical(lipgloss.Left, styledHeader, body, styledFooter)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Render(inner)
}

// roseArt is the closed rose drawn on the loading and result screens
var roseArt = []string{
	`   _  _   `,
	`  ( \/ )  `,
	`   \  /   `,
	`    \/    `,
}

// bloomArt replaces roseArt while the rose is in bloom
var bloomArt = []string{
	` _(\_/)_  `,
	`(  \ /  ) `,
	` \_ | _/  `,
	`   \|/    `,
}

var stemArt = []string{
	`    ||    `,
	`  \_||    `,
	`    ||_/  `,
	`    ||    `,
}

// RenderRose draws the rose, open when bloom is set
func RenderRose(bloom bool) string {
	head := roseArt
	if bloom {
		head = bloomArt
	}
	lines := make([]string, 0, len(head)+len(stemArt))
	for _, l := range head {
		lines = append(lines, RoseStyle.Render(l))
	}
	for _, l := range stemArt {
		lines = append(lines, StemStyle.Render(l))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
