package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/roseday/internal/effects"
	"github.com/muurk/roseday/internal/note"
	"github.com/muurk/roseday/internal/session"
)

type fakeGenerator struct {
	text string
}

func (g fakeGenerator) Generate(_ context.Context, name string, _ note.Style) string {
	return strings.ReplaceAll(g.text, "{name}", name)
}

var testNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func newTestApp() AppModel {
	return NewAppModel(Options{
		Generator:   fakeGenerator{text: "Dear {name} you are my sunshine"},
		AutoAdvance: time.Millisecond,
		Seed:        1,
		Now:         func() time.Time { return testNow },
	})
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok, "Update returned %T", next)
	return app, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// toChoice drives a fresh card to the choice screen for name
func toChoice(t *testing.T, name string) AppModel {
	t.Helper()
	m := newTestApp()
	m, _ = update(t, m, advanceMsg{ticket: m.Controller.Start()})
	require.Equal(t, session.ScreenNameInput, m.Screen())

	m, _ = update(t, m, keyRunes(name))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, session.ScreenChoice, m.Screen())
	return m
}

func TestAppModel_InitialScreen(t *testing.T) {
	m := newTestApp()

	assert.Equal(t, session.ScreenInitial, m.Screen())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), LoadingMessages[0])
}

func TestAppModel_StaleAdvanceIgnored(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, advanceMsg{ticket: session.AdvanceTicket{Epoch: 7}})
	assert.Equal(t, session.ScreenInitial, m.Screen())
}

func TestAppModel_NameSubmission(t *testing.T) {
	m := newTestApp()
	m, _ = update(t, m, advanceMsg{ticket: m.Controller.Start()})
	assert.Contains(t, m.View(), "Who should I give this rose to?")

	// blank names stay on the screen
	m, _ = update(t, m, keyRunes("   "))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.ScreenNameInput, m.Screen())
	assert.True(t, m.name.Empty)

	// letters go to the input, q does not quit here
	m, _ = update(t, m, keyRunes("quinn "))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.ScreenChoice, m.Screen())
	assert.Equal(t, "quinn", m.Controller.Session().RecipientName)
	assert.Contains(t, m.View(), "For You, quinn")
}

func TestAppModel_ChoiceNavigation(t *testing.T) {
	m := toChoice(t, "Kay")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, note.Simple, m.Controller.Session().SelectedStyle)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, note.Empathetic, m.Controller.Session().SelectedStyle)

	offset := m.choice.NoOffset
	m, _ = update(t, m, keyRunes("n"))
	assert.Equal(t, session.ScreenChoice, m.Screen(), "the No button never works")
	assert.Equal(t, 1, m.choice.NoPresses)
	assert.NotEqual(t, offset, m.choice.NoOffset)
	assert.Contains(t, m.View(), "the No button is broken")
}

func TestAppModel_ConfirmAndDeliver(t *testing.T) {
	m := toChoice(t, "Kay")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	s := m.Controller.Session()
	assert.Equal(t, session.ScreenResult, s.Screen)
	assert.True(t, s.IsGenerating)
	assert.Equal(t, note.Simple, s.SelectedStyle)
	assert.Len(t, m.field.Particles(testNow), ConfirmConfettiCount)
	assert.Contains(t, m.View(), "Creating the perfect note...")

	ticket := session.GenerationTicket{Epoch: s.Epoch, Name: s.RecipientName, Style: s.SelectedStyle}
	msg := m.generate(ticket)()
	nm, ok := msg.(noteMsg)
	require.True(t, ok)
	assert.Equal(t, "Dear Kay you are my sunshine", nm.text)

	m, _ = update(t, m, nm)
	text, ok := m.Controller.Note()
	require.True(t, ok)
	assert.Equal(t, "Dear Kay you are my sunshine", text)
	assert.Equal(t, 0, m.result.Revealed)

	for i := 0; i < 6; i++ {
		m, _ = update(t, m, revealTickMsg{epoch: s.Epoch})
	}
	assert.True(t, m.result.Done())
	assert.Equal(t, 6, m.result.Revealed)
	assert.Contains(t, m.View(), "sunshine")
}

func TestAppModel_ResetDropsLateNote(t *testing.T) {
	m := toChoice(t, "Kay")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	s := m.Controller.Session()
	late := noteMsg{
		ticket: session.GenerationTicket{Epoch: s.Epoch, Name: "Kay", Style: s.SelectedStyle},
		text:   "too late",
	}

	m, cmd := update(t, m, keyRunes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.result.Resetting)

	// a reset message from another epoch is ignored
	m, _ = update(t, m, resetMsg{epoch: s.Epoch + 5})
	assert.Equal(t, session.ScreenResult, m.Screen())

	m, _ = update(t, m, resetMsg{epoch: s.Epoch})
	after := m.Controller.Session()
	assert.Equal(t, session.ScreenInitial, after.Screen)
	assert.Equal(t, s.Epoch+1, after.Epoch)
	assert.Empty(t, after.RecipientName)

	m, _ = update(t, m, late)
	_, ok := m.Controller.Note()
	assert.False(t, ok)
	assert.Equal(t, session.ScreenInitial, m.Screen())
}

func TestAppModel_QuitClosesController(t *testing.T) {
	m := newTestApp()
	ticket := m.Controller.Start()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	assert.False(t, m.Controller.Advance(ticket))
}

func TestGenerateCmd_EmptyTextFallsBack(t *testing.T) {
	ticket := session.GenerationTicket{Name: "Alex", Style: note.Poetic}

	msg := generateCmd(context.Background(), nil, ticket)().(noteMsg)
	assert.Equal(t, note.LongFallback("Alex"), msg.text)

	msg = generateCmd(context.Background(), fakeGenerator{}, ticket)().(noteMsg)
	assert.Equal(t, note.LongFallback("Alex"), msg.text)
}

func TestLoadingModel_Ticks(t *testing.T) {
	m := NewLoadingModel(3)

	m, cmd := m.Update(loadingTickMsg{epoch: 2})
	assert.Nil(t, cmd, "ticks from another epoch are dropped")
	assert.Zero(t, m.Percent)

	for i := 0; i < 10; i++ {
		m, _ = m.Update(loadingTickMsg{epoch: 3})
	}
	assert.InDelta(t, 0.2, m.Percent, 1e-9)
	assert.Equal(t, LoadingMessages[1], m.Message())

	for i := 0; i < 50; i++ {
		m, cmd = m.Update(loadingTickMsg{epoch: 3})
	}
	assert.Equal(t, 1.0, m.Percent)
	assert.NotNil(t, cmd)
	assert.Equal(t, LoadingMessages[1], m.Message(), "60 ticks wraps back to the second message")
}

func TestResultModel_WordSelection(t *testing.T) {
	field := effects.NewField(1)
	m := NewResultModel(0, "Kay", note.Poetic, field, nil)
	assert.Equal(t, effects.RoseWord, m.Move(1).Selected, "nothing revealed yet")

	m, _ = m.SetNote("one two three")
	m.Revealed = 3

	m = m.Move(1)
	assert.Equal(t, 0, m.Selected)
	m = m.Move(-1)
	assert.Equal(t, effects.RoseWord, m.Selected)
	m = m.Move(-1)
	assert.Equal(t, 2, m.Selected)
	m = m.Move(1)
	assert.Equal(t, effects.RoseWord, m.Selected)

	m = m.Move(1)
	p := m.Sparkle(testNow)
	assert.Equal(t, 0, p.Word)
	assert.Equal(t, 1, field.Clicks(0))

	m, _ = m.Bloom(testNow)
	assert.Equal(t, effects.RoseWord, m.Selected)
	assert.True(t, field.Blooming(testNow))
}

func TestResultModel_ResetOnce(t *testing.T) {
	field := effects.NewField(1)
	m := NewResultModel(0, "Kay", note.Poetic, field, nil)

	m, cmd := m.StartReset(testNow)
	require.NotNil(t, cmd)
	assert.Len(t, field.Particles(testNow), ResetConfettiCount)

	_, cmd = m.StartReset(testNow)
	assert.Nil(t, cmd)
	assert.Len(t, field.Particles(testNow), ResetConfettiCount)
}

func TestChoiceModel_Wraps(t *testing.T) {
	m := NewChoiceModel("Kay", note.Style("Gothic"), 1)
	assert.Equal(t, note.DefaultStyle, m.Style())

	assert.Equal(t, note.Empathetic, m.Move(-1).Style())
	assert.Equal(t, note.Poetic, m.Move(len(note.Styles())).Style())
}

func TestResultModel_FramePrunesWithInjectedClock(t *testing.T) {
	field := effects.NewField(1)
	now := testNow
	m := NewResultModel(4, "Kay", note.Poetic, field, func() time.Time { return now })
	field.Burst(10, nil, testNow)

	m, cmd, _ := m.Update(frameMsg{epoch: 4})
	require.NotNil(t, cmd)
	assert.Equal(t, 10, field.Prune(testNow), "particles are still alive on the injected clock")

	now = testNow.Add(effects.ConfettiLife + time.Millisecond)
	_, _, _ = m.Update(frameMsg{epoch: 4})
	assert.Zero(t, field.Prune(testNow), "expired on the injected clock, not the wall clock")
}
