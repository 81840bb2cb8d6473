package effects

import (
	"io"
	"sync"
	"time"
)

// Cue is a sound event
type Cue int

const (
	// CueChime plays when the style is confirmed
	CueChime Cue = iota
	// CueRustle plays when the note arrives
	CueRustle
	// CueTypeClick plays for each revealed word
	CueTypeClick
)

// String returns the cue name used in logs
func (c Cue) String() string {
	switch c {
	case CueChime:
		return "chime"
	case CueRustle:
		return "rustle"
	case CueTypeClick:
		return "type_click"
	default:
		return "unknown"
	}
}

// Player plays sound cues
type Player interface {
	Play(Cue)
}

// Nop is a silent Player
type Nop struct{}

// Play implements Player
func (Nop) Play(Cue) {}

// DefaultClickInterval is the minimum gap between two type clicks
const DefaultClickInterval = 150 * time.Millisecond

// Bell rings the terminal bell. A terminal has one sound, so cues differ by
// count: the chime rings twice, the rustle and clicks once. Type clicks are
// throttled so a fast reveal does not turn into a buzz.
type Bell struct {
	W             io.Writer
	ClickInterval time.Duration

	mu        sync.Mutex
	lastClick time.Time
	now       func() time.Time
	rings     int
}

// NewBell creates a Bell writing to w
func NewBell(w io.Writer) *Bell {
	return &Bell{W: w, ClickInterval: DefaultClickInterval, now: time.Now}
}

// NewPlayer returns a Bell when enabled, Nop otherwise
func NewPlayer(enabled bool, w io.Writer) Player {
	if !enabled || w == nil {
		return Nop{}
	}
	return NewBell(w)
}

// Play implements Player
func (b *Bell) Play(c Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch c {
	case CueChime:
		b.ring(2)
	case CueRustle:
		b.ring(1)
	case CueTypeClick:
		now := b.clock()
		if !b.lastClick.IsZero() && now.Sub(b.lastClick) < b.ClickInterval {
			return
		}
		b.lastClick = now
		b.ring(1)
	}
}

// Rings returns how many bells were written
func (b *Bell) Rings() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rings
}

func (b *Bell) clock() time.Time {
	if b.now == nil {
		return time.Now()
	}
	return b.now()
}

func (b *Bell) ring(n int) {
	for i := 0; i < n; i++ {
		if _, err := b.W.Write([]byte{'\a'}); err != nil {
			return
		}
		b.rings++
	}
}
