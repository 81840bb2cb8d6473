package session

import (
	"strings"
	"sync"

	"github.com/muurk/roseday/internal/logging"
	"github.com/muurk/roseday/internal/note"
)

// Screen identifies one of the four states of the card
type Screen string

const (
	ScreenInitial   Screen = "initial"
	ScreenNameInput Screen = "name_input"
	ScreenChoice    Screen = "choice"
	ScreenResult    Screen = "result"
)

// Session is the user data of one pass through the card
type Session struct {
	Screen        Screen
	RecipientName string
	SelectedStyle note.Style
	GeneratedNote string
	IsGenerating  bool
	Epoch         uint64
}

// AdvanceTicket authorises one auto-advance out of Initial
type AdvanceTicket struct {
	Epoch uint64
}

// GenerationTicket carries what a generation needs and the epoch its result
// belongs to
type GenerationTicket struct {
	Epoch uint64
	Name  string
	Style note.Style
}

// Controller owns the session and every transition
type Controller struct {
	mu      sync.Mutex
	session Session
	closed  bool
}

// NewController creates a controller in Initial
func NewController() *Controller {
	return &Controller{session: Session{Screen: ScreenInitial, SelectedStyle: note.DefaultStyle}}
}

// Start arms the auto-advance timer for the current epoch
func (c *Controller) Start() AdvanceTicket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return AdvanceTicket{Epoch: c.session.Epoch}
}

// Advance moves Initial to NameInput when the ticket is current
func (c *Controller) Advance(t AdvanceTicket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || t.Epoch != c.session.Epoch || c.session.Screen != ScreenInitial {
		return false
	}
	c.transition(ScreenNameInput)
	return true
}

// SubmitName stores the trimmed name and moves to Choice. Blank input is
// ignored.
func (c *Controller) SubmitName(raw string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := strings.TrimSpace(raw)
	if c.closed || c.session.Screen != ScreenNameInput || name == "" {
		return false
	}
	c.session.RecipientName = name
	c.transition(ScreenChoice)
	return true
}

// SelectStyle changes the highlighted style while in Choice
func (c *Controller) SelectStyle(style note.Style) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.session.Screen != ScreenChoice || !style.Valid() {
		return false
	}
	c.session.SelectedStyle = style
	return true
}

// ConfirmStyle moves to Result with IsGenerating set and returns the ticket
// for the asynchronous generation. An invalid style keeps the current
// selection.
func (c *Controller) ConfirmStyle(style note.Style) (GenerationTicket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.session.Screen != ScreenChoice {
		return GenerationTicket{}, false
	}
	if style.Valid() {
		c.session.SelectedStyle = style
	}
	if !c.session.SelectedStyle.Valid() {
		c.session.SelectedStyle = note.DefaultStyle
	}

	c.session.GeneratedNote = ""
	c.session.IsGenerating = true
	c.transition(ScreenResult)

	return GenerationTicket{
		Epoch: c.session.Epoch,
		Name:  c.session.RecipientName,
		Style: c.session.SelectedStyle,
	}, true
}

// Deliver applies a finished note if its ticket still belongs to the
// current epoch
func (c *Controller) Deliver(t GenerationTicket, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || t.Epoch != c.session.Epoch || !c.session.IsGenerating || text == "" {
		logging.Debug("Dropped stale generation result")
		return false
	}
	c.session.GeneratedNote = text
	c.session.IsGenerating = false
	return true
}

// Reset clears the session, returns to Initial and invalidates every
// outstanding ticket
func (c *Controller) Reset() AdvanceTicket {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.session.Screen
	c.session = Session{
		Screen:        ScreenInitial,
		SelectedStyle: note.DefaultStyle,
		Epoch:         c.session.Epoch + 1,
	}
	logging.LogScreenTransition(string(from), string(ScreenInitial), c.session.Epoch)
	return AdvanceTicket{Epoch: c.session.Epoch}
}

// Close tears the controller down; later Advance and Deliver calls are
// no-ops
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Session returns a copy of the current session
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Note returns the generated note once generation has settled
func (c *Controller) Note() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.IsGenerating || c.session.GeneratedNote == "" {
		return "", false
	}
	return c.session.GeneratedNote, true
}

// transition must be called with mu held
func (c *Controller) transition(to Screen) {
	from := c.session.Screen
	c.session.Screen = to
	logging.LogScreenTransition(string(from), string(to), c.session.Epoch)
}
