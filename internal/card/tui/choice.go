package tui

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/roseday/internal/note"
)

// ConfirmConfettiCount is how many pieces the "Yes" button releases
const ConfirmConfettiCount = 150

// maxNoOffset bounds how far the "No" button can run
const maxNoOffset = 24

// ChoiceModel is the Choice screen: five style cards, a "Yes" button and a
// "No" button that never works
type ChoiceModel struct {
	Name     string
	Selected int
	// NoOffset is the left padding of the runaway "No" button
	NoOffset  int
	NoPresses int
	rng       *rand.Rand
}

// NewChoiceModel creates the choice screen for name with style highlighted
func NewChoiceModel(name string, style note.Style, seed int64) ChoiceModel {
	return ChoiceModel{Name: name, Selected: style.Index(), rng: rand.New(rand.NewSource(seed))}
}

// Style returns the highlighted style
func (m ChoiceModel) Style() note.Style {
	return note.Styles()[m.Selected].Tag
}

// Move shifts the highlight by delta, wrapping around
func (m ChoiceModel) Move(delta int) ChoiceModel {
	n := len(note.Styles())
	m.Selected = ((m.Selected+delta)%n + n) % n
	return m
}

// Dodge moves the "No" button somewhere else
func (m ChoiceModel) Dodge() ChoiceModel {
	m.NoPresses++
	next := m.rng.Intn(maxNoOffset + 1)
	if next == m.NoOffset {
		next = (next + maxNoOffset/2) % (maxNoOffset + 1)
	}
	m.NoOffset = next
	return m
}

// View renders the choice screen
func (m ChoiceModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("For You, " + m.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(SecondaryColor).Render("How should I express my love today?"))
	b.WriteString("\n\n")

	cards := make([]string, 0, len(note.Styles()))
	for i, info := range note.Styles() {
		style := CardStyle
		if i == m.Selected {
			style = SelectedCardStyle
		}
		cards = append(cards, style.Render(info.Icon+"\n"+info.Label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	yes := YesButtonStyle.Render("Yes, I will! ❤️")
	no := NoButtonStyle.Render("No")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yes, strings.Repeat(" ", 3+m.NoOffset), no))
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("(Psst... the No button is broken 😉)"))

	return lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
}
