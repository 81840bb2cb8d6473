package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// nameLimit caps the recipient name
const nameLimit = 40

// NameModel is the NameInput screen
type NameModel struct {
	input   textinput.Model
	hint    string
	warning string
	// Empty is set when Enter was pressed on a blank name
	Empty bool
}

// NewNameModel creates the name screen. warning, when set, is shown under
// the hint (for example when no API key is configured).
func NewNameModel(hint, warning string) NameModel {
	ti := textinput.New()
	ti.Placeholder = "Their name"
	ti.CharLimit = nameLimit
	ti.Width = 30
	ti.Prompt = "❤️ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(PrimaryColor)
	ti.Focus()

	return NameModel{input: ti, hint: hint, warning: warning}
}

// Value returns the typed name
func (m NameModel) Value() string {
	return m.input.Value()
}

// Focus focuses the text input
func (m *NameModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Update forwards key presses to the text input
func (m NameModel) Update(msg tea.Msg) (NameModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.Empty = false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the name screen
func (m NameModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Wait!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(SecondaryColor).Render("Who should I give this rose to?"))
	b.WriteString("\n\n")
	b.WriteString(InputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	button := YesButtonStyle
	if strings.TrimSpace(m.input.Value()) == "" {
		button = NoButtonStyle
	}
	b.WriteString(button.Render("Give Rose 🌹"))
	b.WriteString("\n\n")

	if m.Empty {
		b.WriteString(WarningStyle.Render("A rose needs a name first."))
		b.WriteString("\n")
	}
	if m.hint != "" {
		b.WriteString(HintStyle.Render(m.hint))
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString(WarningStyle.Render("⚠ " + m.warning))
	}

	return lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
}
