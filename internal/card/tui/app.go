package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/effects"
	"github.com/muurk/roseday/internal/logging"
	"github.com/muurk/roseday/internal/note"
	"github.com/muurk/roseday/internal/session"
)

// Generator writes a note. *note.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, name string, style note.Style) string
}

// Messages driving the session
type advanceMsg struct {
	ticket session.AdvanceTicket
}

type noteMsg struct {
	ticket session.GenerationTicket
	text   string
}

// Options configures the card
type Options struct {
	Context     context.Context
	Generator   Generator
	Player      effects.Player
	AutoAdvance time.Duration
	NameHint    string
	// Provider is shown in the header
	Provider string
	// Warning is shown on the name screen, e.g. a missing API key
	Warning string
	Seed    int64
	Now     func() time.Time
}

// AppModel is the top-level coordinator model. The session controller
// owns the state machine; the screen models only draw it.
type AppModel struct {
	Controller *session.Controller

	loading LoadingModel
	name    NameModel
	choice  ChoiceModel
	result  ResultModel
	field   *effects.Field

	opts Options

	// UI state
	Width  int
	Height int

	// Help
	Help        help.Model
	loadingKeys loadingKeyMap
	nameKeys    nameKeyMap
	choiceKeys  choiceKeyMap
	resultKeys  resultKeyMap
}

// NewAppModel creates the card in its Initial screen
func NewAppModel(opts Options) AppModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Player == nil {
		opts.Player = effects.Nop{}
	}
	if opts.AutoAdvance <= 0 {
		opts.AutoAdvance = config.DefaultAutoAdvance
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	c := session.NewController()
	return AppModel{
		Controller:  c,
		loading:     NewLoadingModel(c.Session().Epoch),
		field:       effects.NewField(opts.Seed),
		opts:        opts,
		Width:       80,
		Height:      24,
		Help:        help.New(),
		loadingKeys: newLoadingKeyMap(),
		nameKeys:    newNameKeyMap(),
		choiceKeys:  newChoiceKeyMap(),
		resultKeys:  newResultKeyMap(),
	}
}

// Screen returns the current screen
func (m AppModel) Screen() session.Screen {
	return m.Controller.Session().Screen
}

// Init arms the auto-advance timer and starts the loading animation
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.advanceAfter(m.Controller.Start()))
}

func (m AppModel) advanceAfter(t session.AdvanceTicket) tea.Cmd {
	return tea.Tick(m.opts.AutoAdvance, func(time.Time) tea.Msg { return advanceMsg{ticket: t} })
}

func (m AppModel) generate(t session.GenerationTicket) tea.Cmd {
	return generateCmd(m.opts.Context, m.opts.Generator, t)
}

// generateCmd runs the generator off the UI loop
func generateCmd(ctx context.Context, g Generator, t session.GenerationTicket) tea.Cmd {
	return func() tea.Msg {
		text := ""
		if g != nil {
			text = g.Generate(ctx, t.Name, t.Style)
		}
		if text == "" {
			text = note.LongFallback(t.Name)
		}
		return noteMsg{ticket: t, text: text}
	}
}

func (m AppModel) play(cue effects.Cue) tea.Cmd {
	p := m.opts.Player
	return func() tea.Msg {
		p.Play(cue)
		return nil
	}
}

// Update handles window size, quit, session messages and then routes keys
// to the current screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.handleKey(msg)

	case advanceMsg:
		if !m.Controller.Advance(msg.ticket) {
			return m, nil
		}
		m.name = NewNameModel(m.opts.NameHint, m.opts.Warning)
		return m, m.name.Focus()

	case noteMsg:
		if !m.Controller.Deliver(msg.ticket, msg.text) {
			return m, nil
		}
		var cmd tea.Cmd
		m.result, cmd = m.result.SetNote(msg.text)
		return m, tea.Batch(cmd, m.play(effects.CueRustle))

	case resetMsg:
		if msg.epoch != m.Controller.Session().Epoch {
			return m, nil
		}
		return m.reset()
	}

	// ticks for the active screen
	switch m.Screen() {
	case session.ScreenInitial:
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd
	case session.ScreenNameInput:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	case session.ScreenResult:
		var (
			cmd      tea.Cmd
			revealed bool
		)
		m.result, cmd, revealed = m.result.Update(msg)
		if revealed {
			cmd = tea.Batch(cmd, m.play(effects.CueTypeClick))
		}
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.opts.Now()

	switch m.Screen() {
	case session.ScreenInitial:
		if key.Matches(msg, m.loadingKeys.Quit) {
			return m.quit()
		}

	case session.ScreenNameInput:
		switch {
		case key.Matches(msg, m.nameKeys.Quit):
			return m.quit()
		case key.Matches(msg, m.nameKeys.Submit):
			if !m.Controller.SubmitName(m.name.Value()) {
				m.name.Empty = true
				return m, nil
			}
			s := m.Controller.Session()
			m.choice = NewChoiceModel(s.RecipientName, s.SelectedStyle, m.opts.Seed)
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd

	case session.ScreenChoice:
		switch {
		case key.Matches(msg, m.choiceKeys.Quit):
			return m.quit()
		case key.Matches(msg, m.choiceKeys.Left):
			m.choice = m.choice.Move(-1)
			m.Controller.SelectStyle(m.choice.Style())
		case key.Matches(msg, m.choiceKeys.Right):
			m.choice = m.choice.Move(1)
			m.Controller.SelectStyle(m.choice.Style())
		case key.Matches(msg, m.choiceKeys.No):
			m.choice = m.choice.Dodge()
		case key.Matches(msg, m.choiceKeys.Yes):
			ticket, ok := m.Controller.ConfirmStyle(m.choice.Style())
			if !ok {
				return m, nil
			}
			m.field.Reset()
			m.field.Burst(ConfirmConfettiCount, effects.ConfirmConfetti, now)
			m.result = NewResultModel(ticket.Epoch, ticket.Name, ticket.Style, m.field, m.opts.Now)
			return m, tea.Batch(m.result.Init(), m.play(effects.CueChime), m.generate(ticket))
		}

	case session.ScreenResult:
		switch {
		case key.Matches(msg, m.resultKeys.Quit):
			return m.quit()
		case key.Matches(msg, m.resultKeys.Left):
			m.result = m.result.Move(-1)
		case key.Matches(msg, m.resultKeys.Right):
			m.result = m.result.Move(1)
		case key.Matches(msg, m.resultKeys.Sparkle):
			m.result.Sparkle(now)
		case key.Matches(msg, m.resultKeys.Bloom):
			m.result, _ = m.result.Bloom(now)
		case key.Matches(msg, m.resultKeys.Reset):
			var cmd tea.Cmd
			m.result, cmd = m.result.StartReset(now)
			return m, cmd
		}
	}
	return m, nil
}

// reset starts a fresh card under a new epoch
func (m AppModel) reset() (tea.Model, tea.Cmd) {
	ticket := m.Controller.Reset()
	m.field.Reset()
	m.loading = NewLoadingModel(ticket.Epoch)
	m.result = ResultModel{}
	return m, tea.Batch(m.loading.Init(), m.advanceAfter(ticket))
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	logging.Debug("Closing card")
	m.Controller.Close()
	return m, tea.Quit
}

// View renders the current screen inside the application container
func (m AppModel) View() string {
	var content, footer string

	switch m.Screen() {
	case session.ScreenInitial:
		content = m.loading.View(m.Width)
		footer = m.Help.View(m.loadingKeys)
	case session.ScreenNameInput:
		content = m.name.View()
		footer = m.Help.View(m.nameKeys)
	case session.ScreenChoice:
		content = m.choice.View()
		footer = m.Help.View(m.choiceKeys)
	case session.ScreenResult:
		content = m.result.View(m.Width, m.opts.Now())
		footer = m.Help.View(m.resultKeys)
	}

	return RenderApplicationContainer(content, BuildHeaderContent(m.opts.Provider), footer, m.Width, m.Height)
}
