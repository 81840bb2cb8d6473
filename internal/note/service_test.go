package note

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started at init by opencensus, imported through genai
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

// counting builds a completer that records calls and answers with fn
func counting(calls *int32, fn func(prompt string) (string, error)) llm.Completer {
	return llm.Func{Provider: "fake", Fn: func(_ context.Context, prompt string) (string, error) {
		atomic.AddInt32(calls, 1)
		return fn(prompt)
	}}
}

func failing(calls *int32) llm.Completer {
	return counting(calls, func(string) (string, error) {
		return "", llm.ClassifyNetworkError("fake", errors.New("connection reset"))
	})
}

func TestGenerate_BothCallsFail_AllStyles(t *testing.T) {
	for _, info := range Styles() {
		t.Run(string(info.Tag), func(t *testing.T) {
			var c, p int32
			svc := NewPipelineService(Pipeline{Candidates: failing(&c), Pick: failing(&p)})

			got := svc.Generate(context.Background(), "Riya", info.Tag)
			assert.NotEmpty(t, got)
			assert.Contains(t, got, "Riya")
		})
	}
}

func TestGenerate_AlexSimpleBothFail(t *testing.T) {
	var c, p int32
	svc := NewPipelineService(Pipeline{Candidates: failing(&c), Pick: failing(&p)})

	got := svc.Generate(context.Background(), "Alex", Simple)
	assert.Equal(t, "My dear Alex, just like this rose, my feelings for you grow more beautiful every single day.", got)
	assert.Equal(t, OutcomeShortFallback, svc.LastTrace().Outcome)
}

func TestGenerate_SamHumorousCandidatesFail_PickNeverCalled(t *testing.T) {
	var c, p int32
	pick := counting(&p, func(string) (string, error) { return "should not be used", nil })
	svc := NewPipelineService(Pipeline{Candidates: failing(&c), Pick: pick})

	got := svc.Generate(context.Background(), "Sam", Humorous)
	assert.Equal(t, ShortFallback("Sam"), got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&c))
	assert.EqualValues(t, 0, atomic.LoadInt32(&p), "pick must not run after candidates failed")
}

func TestGenerate_EmptyCandidatesAbort(t *testing.T) {
	var c, p int32
	cands := counting(&c, func(string) (string, error) { return "   \n\t", nil })
	pick := counting(&p, func(string) (string, error) { return "x", nil })
	svc := NewPipelineService(Pipeline{Candidates: cands, Pick: pick})

	got := svc.Generate(context.Background(), "Jo", Playful)
	assert.Equal(t, ShortFallback("Jo"), got)
	assert.EqualValues(t, 0, atomic.LoadInt32(&p))
	assert.True(t, llm.IsEmptyResultError(svc.LastTrace().Err))
}

func TestGenerate_PickFailureNeverReturnsCandidate(t *testing.T) {
	var c, p int32
	cands := counting(&c, func(string) (string, error) { return "1) a 2) b 3) c", nil })
	svc := NewPipelineService(Pipeline{Candidates: cands, Pick: failing(&p)})

	got := svc.Generate(context.Background(), "Mia", Poetic)
	assert.Equal(t, ShortFallback("Mia"), got)
	assert.NotContains(t, got, "1) a")

	trace := svc.LastTrace()
	assert.Equal(t, "1) a 2) b 3) c", trace.Candidates)
	assert.Empty(t, trace.Picked)
}

func TestGenerate_Success(t *testing.T) {
	var c, p int32
	var pickPrompt string
	cands := counting(&c, func(prompt string) (string, error) {
		assert.Contains(t, prompt, "Write 3 different Empathetic Rose Day messages for Noor.")
		assert.Contains(t, prompt, Empathetic.Tone())
		return "1) one 2) two 3) three", nil
	})
	pick := counting(&p, func(prompt string) (string, error) {
		pickPrompt = prompt
		return "  two 💖  ", nil
	})

	var events []StepEvent
	svc := NewPipelineService(Pipeline{Candidates: cands, Pick: pick})
	svc.OnStep = func(ev StepEvent) { events = append(events, ev) }

	got := svc.Generate(context.Background(), "Noor", Empathetic)
	assert.Equal(t, "two 💖", got)
	assert.True(t, strings.HasPrefix(pickPrompt, "Below are 3 Rose Day messages:\n1) one 2) two 3) three\n\n"))
	assert.Contains(t, pickPrompt, `matches "Empathetic" style`)

	require.Len(t, events, 4)
	assert.Equal(t, StepEvent{Step: StepCandidates, Status: StepStarted}, events[0])
	assert.Equal(t, StepDone, events[1].Status)
	assert.Equal(t, StepPick, events[2].Step)
	assert.Equal(t, StepDone, events[3].Status)

	trace := svc.LastTrace()
	assert.Equal(t, OutcomeGenerated, trace.Outcome)
	assert.Equal(t, "two 💖", trace.Picked)
}

func TestGenerate_InvalidStyleUsesDefault(t *testing.T) {
	var c, p int32
	cands := counting(&c, func(prompt string) (string, error) {
		assert.Contains(t, prompt, "different Poetic Rose Day")
		return "drafts", nil
	})
	pick := counting(&p, func(string) (string, error) { return "best", nil })
	svc := NewPipelineService(Pipeline{Candidates: cands, Pick: pick})

	assert.Equal(t, "best", svc.Generate(context.Background(), "Ana", Style("Grumpy")))
}

func TestGenerate_PanicGivesLongFallback(t *testing.T) {
	cands := llm.Func{Fn: func(context.Context, string) (string, error) { panic("kaboom") }}
	svc := NewPipelineService(Pipeline{Candidates: cands, Pick: cands})

	got := svc.Generate(context.Background(), "Lee", Simple)
	assert.Equal(t, LongFallback("Lee"), got)
	assert.Equal(t, OutcomeLongFallback, svc.LastTrace().Outcome)
}

func TestNewService_ConfigurationError(t *testing.T) {
	for _, name := range config.TogetherKeyEnvVars {
		t.Setenv(name, "")
	}

	svc, err := NewService(config.NewSettings())
	require.Error(t, err)
	require.NotNil(t, svc)
	assert.True(t, llm.IsConfigurationError(err))
	assert.Equal(t, err, svc.ConfigError())

	got := svc.Generate(context.Background(), "Kay", Playful)
	assert.Equal(t, LongFallback("Kay"), got)
}
