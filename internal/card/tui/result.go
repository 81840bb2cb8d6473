package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/roseday/internal/effects"
	"github.com/muurk/roseday/internal/note"
)

const (
	firstWordDelay = 50 * time.Millisecond
	wordInterval   = 40 * time.Millisecond
	frameInterval  = 80 * time.Millisecond

	// ResetConfettiCount is how many pieces the reset button releases
	ResetConfettiCount = 80
	// ResetDelay is the pause between the reset confetti and the new card
	ResetDelay = 500 * time.Millisecond
)

type revealTickMsg struct {
	epoch uint64
}

type frameMsg struct {
	epoch uint64
}

type resetMsg struct {
	epoch uint64
}

// ResultModel is the Result screen: the spinner while generating, then the
// note revealed word by word over the rose
type ResultModel struct {
	epoch    uint64
	Name     string
	Style    note.Style
	Words    []string
	Revealed int
	// Selected is the highlighted word, effects.RoseWord for the rose
	Selected  int
	Resetting bool

	spinner spinner.Model
	field   *effects.Field
	now     func() time.Time
}

// NewResultModel creates the result screen for a generation ticket. now is
// the clock used to expire particles; nil means time.Now.
func NewResultModel(epoch uint64, name string, style note.Style, field *effects.Field, now func() time.Time) ResultModel {
	if now == nil {
		now = time.Now
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return ResultModel{
		epoch:    epoch,
		Name:     name,
		Style:    style,
		Selected: effects.RoseWord,
		spinner:  s,
		field:    field,
		now:      now,
	}
}

// Init starts the spinner and the animation frames
func (m ResultModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, frame(m.epoch))
}

func frame(epoch uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{epoch: epoch} })
}

func revealTick(epoch uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return revealTickMsg{epoch: epoch} })
}

// SetNote stores the delivered note and starts the reveal
func (m ResultModel) SetNote(text string) (ResultModel, tea.Cmd) {
	m.Words = strings.Fields(text)
	m.Revealed = 0
	return m, revealTick(m.epoch, firstWordDelay)
}

// Generating reports whether the note is still being written
func (m ResultModel) Generating() bool {
	return m.Words == nil
}

// Done reports whether every word is visible
func (m ResultModel) Done() bool {
	return m.Words != nil && m.Revealed >= len(m.Words)
}

// Update handles the reveal, spinner and frame ticks. revealed is true
// when a new word became visible.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case revealTickMsg:
		if msg.epoch != m.epoch || m.Done() {
			return m, nil, false
		}
		m.Revealed++
		if m.Done() {
			return m, nil, true
		}
		return m, revealTick(m.epoch, wordInterval), true

	case frameMsg:
		if msg.epoch != m.epoch {
			return m, nil, false
		}
		m.field.Prune(m.now())
		return m, frame(m.epoch), false

	case spinner.TickMsg:
		if !m.Generating() {
			return m, nil, false
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd, false
	}
	return m, nil, false
}

// Move shifts the word highlight. Moving left of the first word selects
// the rose.
func (m ResultModel) Move(delta int) ResultModel {
	if m.Revealed == 0 {
		m.Selected = effects.RoseWord
		return m
	}
	next := m.Selected + delta
	if next < effects.RoseWord {
		next = m.Revealed - 1
	}
	if next >= m.Revealed {
		next = effects.RoseWord
	}
	m.Selected = next
	return m
}

// Sparkle spawns the click effect for the highlighted word
func (m ResultModel) Sparkle(now time.Time) effects.Particle {
	x, y := m.origin(m.Selected)
	return m.field.Select(m.Selected, x, y, now)
}

// Bloom selects the rose and puts it in bloom
func (m ResultModel) Bloom(now time.Time) (ResultModel, effects.Particle) {
	m.Selected = effects.RoseWord
	x, y := m.origin(effects.RoseWord)
	return m, m.field.Select(effects.RoseWord, x, y, now)
}

// StartReset fires the reset confetti and schedules the new card
func (m ResultModel) StartReset(now time.Time) (ResultModel, tea.Cmd) {
	if m.Resetting {
		return m, nil
	}
	m.Resetting = true
	m.field.Burst(ResetConfettiCount, effects.ResetConfetti, now)
	epoch := m.epoch
	return m, tea.Tick(ResetDelay, func(time.Time) tea.Msg { return resetMsg{epoch: epoch} })
}

// origin maps a word to its position in the sky canvas
func (m ResultModel) origin(word int) (float64, float64) {
	if word == effects.RoseWord || len(m.Words) == 0 {
		return 0.5, 1
	}
	return float64(word+1) / float64(len(m.Words)+1), 1
}

// View renders the result screen at now
func (m ResultModel) View(width int, now time.Time) string {
	var b strings.Builder

	b.WriteString(m.field.Render(min(width-8, 72), skyHeight, now))
	b.WriteString("\n")
	b.WriteString(RenderRose(m.field.Blooming(now)))
	b.WriteString("\n")
	b.WriteString(RenderTitle("For " + m.Name))
	b.WriteString("\n")

	if m.Generating() {
		b.WriteString(m.spinner.View() + " " + HintStyle.Render("Creating the perfect note..."))
		return lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
	}

	words := make([]string, 0, m.Revealed)
	for i := 0; i < m.Revealed && i < len(m.Words); i++ {
		if i == m.Selected {
			words = append(words, SelectedWordStyle.Render(m.Words[i]))
		} else {
			words = append(words, NoteStyle.Render(m.Words[i]))
		}
	}
	noteWidth := min(width-12, 60)
	b.WriteString(lipgloss.NewStyle().Width(max(noteWidth, 20)).Align(lipgloss.Center).Render(strings.Join(words, " ")))
	b.WriteString("\n\n")

	info := m.Style.Info()
	b.WriteString(HintStyle.Render(info.Icon + " " + info.Label))

	return lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
}
