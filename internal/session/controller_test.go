package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/muurk/roseday/internal/llm"
	"github.com/muurk/roseday/internal/note"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started at init by opencensus, imported through genai
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

// toChoice drives a fresh controller to the Choice screen
func toChoice(t *testing.T, name string) *Controller {
	t.Helper()
	c := NewController()
	require.True(t, c.Advance(c.Start()))
	require.True(t, c.SubmitName(name))
	return c
}

func TestController_StartsInInitial(t *testing.T) {
	c := NewController()
	s := c.Session()
	assert.Equal(t, ScreenInitial, s.Screen)
	assert.Equal(t, note.Poetic, s.SelectedStyle)
	assert.False(t, s.IsGenerating)
}

func TestController_Advance(t *testing.T) {
	c := NewController()
	ticket := c.Start()

	assert.True(t, c.Advance(ticket))
	assert.Equal(t, ScreenNameInput, c.Session().Screen)
	assert.False(t, c.Advance(ticket), "second advance must be ignored")
}

func TestController_SubmitName(t *testing.T) {
	tests := []struct {
		raw      string
		accepted bool
		want     string
	}{
		{"", false, ""},
		{"   ", false, ""},
		{"\t\n", false, ""},
		{" Kay ", true, "Kay"},
		{"Alex", true, "Alex"},
	}

	for _, tt := range tests {
		c := NewController()
		require.True(t, c.Advance(c.Start()))

		got := c.SubmitName(tt.raw)
		assert.Equal(t, tt.accepted, got, "SubmitName(%q)", tt.raw)

		s := c.Session()
		if tt.accepted {
			assert.Equal(t, ScreenChoice, s.Screen)
			assert.Equal(t, tt.want, s.RecipientName)
		} else {
			assert.Equal(t, ScreenNameInput, s.Screen)
			assert.Empty(t, s.RecipientName)
		}
	}
}

func TestController_SubmitNameOutsideNameInput(t *testing.T) {
	c := NewController()
	assert.False(t, c.SubmitName("Kay"))
	assert.Equal(t, ScreenInitial, c.Session().Screen)
}

func TestController_ConfirmStyleIsSynchronous(t *testing.T) {
	c := toChoice(t, "Kay")
	require.True(t, c.SelectStyle(note.Humorous))

	ticket, ok := c.ConfirmStyle("")
	require.True(t, ok)

	s := c.Session()
	assert.Equal(t, ScreenResult, s.Screen)
	assert.True(t, s.IsGenerating)
	assert.Equal(t, note.Humorous, ticket.Style)
	assert.Equal(t, "Kay", ticket.Name)

	_, ready := c.Note()
	assert.False(t, ready, "note must not be readable while generating")
}

func TestController_ConfirmDefaultsToPoetic(t *testing.T) {
	c := toChoice(t, "Kay")
	assert.False(t, c.SelectStyle("Sulky"))

	ticket, ok := c.ConfirmStyle("Sulky")
	require.True(t, ok)
	assert.Equal(t, note.Poetic, ticket.Style)
}

func TestController_Deliver(t *testing.T) {
	c := toChoice(t, "Kay")
	ticket, _ := c.ConfirmStyle(note.Simple)

	assert.False(t, c.Deliver(ticket, ""), "empty notes are never stored")
	assert.True(t, c.Deliver(ticket, "a rose"))

	text, ok := c.Note()
	assert.True(t, ok)
	assert.Equal(t, "a rose", text)
	assert.False(t, c.Session().IsGenerating)
	assert.False(t, c.Deliver(ticket, "again"), "already settled")
}

func TestController_ResetClears(t *testing.T) {
	c := toChoice(t, "Kay")
	ticket, _ := c.ConfirmStyle(note.Playful)
	require.True(t, c.Deliver(ticket, "note"))

	adv := c.Reset()
	s := c.Session()
	assert.Equal(t, ScreenInitial, s.Screen)
	assert.Empty(t, s.RecipientName)
	assert.Empty(t, s.GeneratedNote)
	assert.False(t, s.IsGenerating)
	assert.Equal(t, note.Poetic, s.SelectedStyle)
	assert.Equal(t, ticket.Epoch+1, adv.Epoch)
	assert.True(t, c.Advance(adv))
}

func TestController_StaleDeliveryAfterReset(t *testing.T) {
	c := toChoice(t, "Kay")
	stale, _ := c.ConfirmStyle(note.Poetic)

	adv := c.Reset()
	require.True(t, c.Advance(adv))
	require.True(t, c.SubmitName("Sam"))
	fresh, _ := c.ConfirmStyle(note.Humorous)

	assert.False(t, c.Deliver(stale, "old note for Kay"))
	s := c.Session()
	assert.Equal(t, "Sam", s.RecipientName)
	assert.True(t, s.IsGenerating)
	assert.Empty(t, s.GeneratedNote)

	assert.True(t, c.Deliver(fresh, "new note"))
	text, _ := c.Note()
	assert.Equal(t, "new note", text)
}

func TestController_StaleAdvanceAfterReset(t *testing.T) {
	c := NewController()
	old := c.Start()
	c.Reset()

	assert.False(t, c.Advance(old))
	assert.Equal(t, ScreenInitial, c.Session().Screen)
}

func TestController_Close(t *testing.T) {
	c := toChoice(t, "Kay")
	ticket, _ := c.ConfirmStyle(note.Simple)
	c.Close()

	assert.False(t, c.Deliver(ticket, "late"))
	assert.False(t, c.Advance(c.Start()))
}

// The async pattern the UI uses: generation on another goroutine, result
// written back through Deliver.
func TestController_AsyncGenerationWithFailingProvider(t *testing.T) {
	fail := llm.Func{Fn: func(context.Context, string) (string, error) {
		return "", errors.New("offline")
	}}
	svc := note.NewPipelineService(note.Pipeline{Candidates: fail, Pick: fail})

	c := toChoice(t, "Alex")
	ticket, ok := c.ConfirmStyle(note.Simple)
	require.True(t, ok)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Deliver(ticket, svc.Generate(context.Background(), ticket.Name, ticket.Style))
	}()
	wg.Wait()

	text, ready := c.Note()
	require.True(t, ready)
	assert.Equal(t, note.ShortFallback("Alex"), text)
}
