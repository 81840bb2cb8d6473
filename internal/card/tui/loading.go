package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingMessages rotate under the rose while the card opens
var LoadingMessages = []string{
	"Planting digital seeds...",
	"Watering the stem...",
	"Arranging the petals...",
	"Infusing with love...",
	"Almost ready to bloom...",
}

const (
	loadingTickInterval = 50 * time.Millisecond
	loadingStep         = 0.02
	// ticks per message (500ms)
	messageTicks = 10
)

type loadingTickMsg struct {
	epoch uint64
}

// LoadingModel is the Initial screen: rose, rotating messages and a
// progress bar that fills in steps of 2%
type LoadingModel struct {
	epoch        uint64
	ticks        int
	Percent      float64
	MessageIndex int
	bar          progress.Model
}

// NewLoadingModel creates the loading screen for a session epoch
func NewLoadingModel(epoch uint64) LoadingModel {
	bar := progress.New(
		progress.WithGradient(string(SecondaryColor), string(PrimaryColor)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40
	return LoadingModel{epoch: epoch, bar: bar}
}

// Init starts the tick loop
func (m LoadingModel) Init() tea.Cmd {
	return loadingTick(m.epoch)
}

func loadingTick(epoch uint64) tea.Cmd {
	return tea.Tick(loadingTickInterval, func(time.Time) tea.Msg {
		return loadingTickMsg{epoch: epoch}
	})
}

// Update advances the bar and message on each tick of its own epoch
func (m LoadingModel) Update(msg tea.Msg) (LoadingModel, tea.Cmd) {
	tick, ok := msg.(loadingTickMsg)
	if !ok || tick.epoch != m.epoch {
		return m, nil
	}

	m.ticks++
	m.Percent = min(float64(m.ticks)*loadingStep, 1)
	m.MessageIndex = (m.ticks / messageTicks) % len(LoadingMessages)

	// a full bar keeps ticking so the messages rotate until the card advances
	return m, loadingTick(m.epoch)
}

// Message returns the current loading message
func (m LoadingModel) Message() string {
	return LoadingMessages[m.MessageIndex]
}

// View renders the loading screen
func (m LoadingModel) View(width int) string {
	m.bar.Width = min(40, max(width-10, 10))

	var b strings.Builder
	b.WriteString(RenderRose(false))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(SecondaryColor).Render(m.Message()))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.Percent))
	return lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
}
