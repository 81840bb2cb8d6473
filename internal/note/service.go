package note

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/llm"
	"github.com/muurk/roseday/internal/logging"
)

// Step names a stage of the generation pipeline
type Step string

const (
	StepCandidates Step = "candidates"
	StepPick       Step = "pick"
)

// StepStatus is reported to the OnStep observer
type StepStatus int

const (
	StepStarted StepStatus = iota
	StepDone
	StepFailed
)

// StepEvent describes progress of one pipeline step
type StepEvent struct {
	Step     Step
	Status   StepStatus
	Duration time.Duration
	Err      error
}

// Outcome records which text a generation ended with
type Outcome string

const (
	OutcomeGenerated     Outcome = "generated"
	OutcomeShortFallback Outcome = "short_fallback"
	OutcomeLongFallback  Outcome = "long_fallback"
)

// Pipeline is the pair of completers used for the two calls. Both usually
// point at the same provider.
type Pipeline struct {
	Candidates llm.Completer
	Pick       llm.Completer
}

// Trace is the record of the most recent generation
type Trace struct {
	Name       string
	Style      Style
	Candidates string
	Picked     string
	Outcome    Outcome
	Err        error
	Duration   time.Duration
}

// Service writes notes. Generate never fails; every error path ends in a
// name-interpolated fallback.
type Service struct {
	pipeline  Pipeline
	configErr error

	// OnStep, when set, receives step progress. Set it before the first
	// Generate call.
	OnStep func(StepEvent)

	mu   sync.Mutex
	last Trace
}

// NewService builds the provider selected by settings. On a configuration
// error the returned service is still usable and answers with the long
// fallback without network traffic; the error is returned so callers can
// report it once.
func NewService(settings *config.Settings) (*Service, error) {
	completer, err := llm.New(settings)
	if err != nil {
		logging.Warn("Note generation unavailable, using fallback notes", zap.Error(err))
		return &Service{configErr: err}, err
	}
	return NewPipelineService(Pipeline{Candidates: completer, Pick: completer}), nil
}

// NewPipelineService creates a service over an explicit pipeline
func NewPipelineService(p Pipeline) *Service {
	return &Service{pipeline: p}
}

// ConfigError returns the configuration error recorded at construction
func (s *Service) ConfigError() error {
	return s.configErr
}

// Provider returns the name of the candidates completer, or "" when unset
func (s *Service) Provider() string {
	if s.pipeline.Candidates == nil {
		return ""
	}
	return s.pipeline.Candidates.Name()
}

// LastTrace returns a copy of the most recent generation record
func (s *Service) LastTrace() Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Generate produces a note for name in style. It always returns a
// non-empty string.
func (s *Service) Generate(ctx context.Context, name string, style Style) (note string) {
	if !style.Valid() {
		style = DefaultStyle
	}

	trace := Trace{Name: name, Style: style}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Note generation panicked", zap.Any("panic", r))
			trace.Err = fmt.Errorf("panic: %v", r)
			trace.Outcome = OutcomeLongFallback
			note = LongFallback(name)
		}
		trace.Duration = time.Since(start)
		s.mu.Lock()
		s.last = trace
		s.mu.Unlock()
	}()

	if s.configErr != nil || s.pipeline.Candidates == nil || s.pipeline.Pick == nil {
		trace.Err = s.configErr
		trace.Outcome = OutcomeLongFallback
		return LongFallback(name)
	}

	candidates, err := s.run(ctx, StepCandidates, s.pipeline.Candidates, CandidatesPrompt(name, style), style)
	trace.Candidates = candidates
	if err != nil {
		trace.Err = err
		trace.Outcome = OutcomeShortFallback
		return ShortFallback(name)
	}

	picked, err := s.run(ctx, StepPick, s.pipeline.Pick, PickPrompt(candidates, style), style)
	trace.Picked = picked
	if err != nil {
		trace.Err = err
		trace.Outcome = OutcomeShortFallback
		return ShortFallback(name)
	}

	trace.Outcome = OutcomeGenerated
	return picked
}

// run performs one step. Whitespace-only text counts as empty.
func (s *Service) run(ctx context.Context, step Step, c llm.Completer, prompt string, style Style) (string, error) {
	s.notify(StepEvent{Step: step, Status: StepStarted})
	start := time.Now()

	text, err := c.Complete(ctx, prompt)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = llm.NewEmptyResultError(c.Name())
	}

	elapsed := time.Since(start)
	logging.LogGenerationStep(string(step), string(style), elapsed, len(text), err)

	if err != nil {
		s.notify(StepEvent{Step: step, Status: StepFailed, Duration: elapsed, Err: err})
		return "", fmt.Errorf("%s step: %w", step, err)
	}
	s.notify(StepEvent{Step: step, Status: StepDone, Duration: elapsed})
	return text, nil
}

func (s *Service) notify(ev StepEvent) {
	if s.OnStep != nil {
		s.OnStep(ev)
	}
}
