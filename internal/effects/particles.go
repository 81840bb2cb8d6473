package effects

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Motion is how a particle moves over its life
type Motion int

const (
	MotionFloatUp Motion = iota
	MotionSparkle
	MotionPetal
	MotionZoom
	MotionSpin
	MotionDrift
	MotionFly
	MotionArc
	MotionConfetti
)

// Variation is one of the click effects
type Variation struct {
	Glyph  string
	Motion Motion
}

// Variations is the fixed effect table indexed by click rotation
var Variations = [10]Variation{
	{"❤️", MotionFloatUp},
	{"✨", MotionSparkle},
	{"🌸", MotionPetal},
	{"💖", MotionZoom},
	{"💋", MotionSpin},
	{"💝", MotionDrift},
	{"💕", MotionFloatUp},
	{"🎈", MotionPetal},
	{"🕊️", MotionFly},
	{"🌈", MotionArc},
}

// Petals are the background glyphs drifting on the result screen
var Petals = []string{"🌸", "🌹", "🌷", "🌺", "🍃", "✨", "💖"}

// Confetti palettes
var (
	ConfirmConfetti = []string{"❤️", "🩷", "🤍"}
	ResetConfetti   = []string{"🌸", "💖", "✨"}
)

const (
	// ParticleLife is how long a click effect stays visible
	ParticleLife = 1500 * time.Millisecond
	// ConfettiLife is how long a confetti piece stays visible
	ConfettiLife = 2 * time.Second
	// BloomDuration is how long the rose stays in bloom after selection
	BloomDuration = 4 * time.Second

	// RoseWord is the word index that selects the rose itself
	RoseWord = -1
)

// Particle is one glyph moving across the effect canvas. Positions are in
// unit coordinates: (0,0) top left, (1,1) bottom right.
type Particle struct {
	ID     int
	Glyph  string
	Motion Motion
	Word   int
	X, Y   float64 // origin
	VX, VY float64 // units per second, used by confetti
	Born   time.Time
	Life   time.Duration
}

// Alive reports whether the particle is still visible at now
func (p Particle) Alive(now time.Time) bool {
	return now.Sub(p.Born) < p.Life
}

// Position returns where the particle is drawn at now
func (p Particle) Position(now time.Time) (x, y float64) {
	age := now.Sub(p.Born).Seconds()
	frac := age / p.Life.Seconds()
	if frac < 0 {
		frac = 0
	}

	switch p.Motion {
	case MotionFloatUp:
		return p.X, p.Y - 0.5*frac
	case MotionSparkle:
		return p.X + 0.05*math.Sin(frac*4*math.Pi), p.Y - 0.1*frac
	case MotionPetal:
		return p.X + 0.15*math.Sin(frac*2*math.Pi), p.Y + 0.4*frac
	case MotionZoom:
		return p.X, p.Y - 0.2*frac
	case MotionSpin:
		return p.X + 0.1*math.Cos(frac*2*math.Pi), p.Y + 0.1*math.Sin(frac*2*math.Pi)
	case MotionDrift:
		return p.X + 0.3*frac, p.Y - 0.15*frac
	case MotionFly:
		return p.X + 0.5*frac, p.Y - 0.4*frac
	case MotionArc:
		return p.X + 0.4*frac, p.Y - 0.6*frac*(1-frac)
	case MotionConfetti:
		const gravity = 0.6
		return p.X + p.VX*age, p.Y + p.VY*age + 0.5*gravity*age*age
	default:
		return p.X, p.Y
	}
}

// Field holds the live particles and the click counters
type Field struct {
	rng        *rand.Rand
	clicks     map[int]int
	particles  []Particle
	bloomUntil time.Time
	nextID     int
}

// NewField creates an empty field. The seed makes confetti placement
// reproducible in tests.
func NewField(seed int64) *Field {
	return &Field{rng: rand.New(rand.NewSource(seed)), clicks: make(map[int]int)}
}

// VariationIndex returns the effect used for the next selection of word
// after clicks previous selections
func VariationIndex(clicks, word int) int {
	if word < 0 {
		word = 0
	}
	return (clicks + word + 1) % len(Variations)
}

// Select spawns the click effect for word at (x, y). Selecting RoseWord
// also puts the rose in bloom.
func (f *Field) Select(word int, x, y float64, now time.Time) Particle {
	v := Variations[VariationIndex(f.clicks[word], word)]
	f.clicks[word]++

	if word == RoseWord {
		f.bloomUntil = now.Add(BloomDuration)
	}

	p := Particle{
		ID:     f.id(),
		Glyph:  v.Glyph,
		Motion: v.Motion,
		Word:   word,
		X:      x,
		Y:      y,
		Born:   now,
		Life:   ParticleLife,
	}
	f.particles = append(f.particles, p)
	return p
}

// Burst scatters n confetti pieces from the top centre
func (f *Field) Burst(n int, palette []string, now time.Time) {
	if len(palette) == 0 {
		palette = ConfirmConfetti
	}
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, Particle{
			ID:     f.id(),
			Glyph:  palette[f.rng.Intn(len(palette))],
			Motion: MotionConfetti,
			Word:   RoseWord,
			X:      0.5,
			Y:      0.3,
			VX:     (f.rng.Float64() - 0.5) * 1.2,
			VY:     -0.3 - f.rng.Float64()*0.5,
			Born:   now,
			Life:   ConfettiLife,
		})
	}
}

// Blooming reports whether the rose is in bloom at now
func (f *Field) Blooming(now time.Time) bool {
	return now.Before(f.bloomUntil)
}

// Clicks returns how many times word has been selected
func (f *Field) Clicks(word int) int {
	return f.clicks[word]
}

// Prune drops expired particles and returns how many remain
func (f *Field) Prune(now time.Time) int {
	live := f.particles[:0]
	for _, p := range f.particles {
		if p.Alive(now) {
			live = append(live, p)
		}
	}
	f.particles = live
	return len(f.particles)
}

// Particles returns the particles alive at now
func (f *Field) Particles(now time.Time) []Particle {
	out := make([]Particle, 0, len(f.particles))
	for _, p := range f.particles {
		if p.Alive(now) {
			out = append(out, p)
		}
	}
	return out
}

// Reset clears particles, counters and bloom
func (f *Field) Reset() {
	f.particles = nil
	f.clicks = make(map[int]int)
	f.bloomUntil = time.Time{}
}

func (f *Field) id() int {
	f.nextID++
	return f.nextID
}

// Render draws the live particles into a width x height block of text.
// Each glyph occupies a two column slot.
func (f *Field) Render(width, height int, now time.Time) string {
	slots := width / 2
	if slots < 1 || height < 1 {
		return ""
	}

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, slots)
	}

	place := func(glyph string, x, y float64) {
		col := int(math.Round(x * float64(slots-1)))
		row := int(math.Round(y * float64(height-1)))
		if col < 0 || col >= slots || row < 0 || row >= height {
			return
		}
		grid[row][col] = glyph
	}

	for i, glyph := range BackgroundPetals(slots, now) {
		if glyph.Glyph != "" {
			place(glyph.Glyph, float64(i)/float64(max(slots-1, 1)), glyph.Y)
		}
	}
	for _, p := range f.particles {
		if !p.Alive(now) {
			continue
		}
		x, y := p.Position(now)
		place(p.Glyph, x, y)
	}

	var b strings.Builder
	for r, row := range grid {
		for _, cell := range row {
			b.WriteString(pad2(cell))
		}
		if r < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Sprite is a background petal position for one column
type Sprite struct {
	Glyph string
	Y     float64
}

// petalPeriod is how long a petal takes to fall through the canvas
const petalPeriod = 6 * time.Second

// BackgroundPetals returns a falling petal for every fourth column. The
// positions depend only on now, so redraws are stable.
func BackgroundPetals(columns int, now time.Time) []Sprite {
	out := make([]Sprite, columns)
	ms := now.UnixMilli()
	for c := 0; c < columns; c += 4 {
		offset := int64(c) * 733 // spread start times
		phase := float64((ms+offset)%petalPeriod.Milliseconds()) / float64(petalPeriod.Milliseconds())
		out[c] = Sprite{Glyph: Petals[(c/4)%len(Petals)], Y: phase}
	}
	return out
}

func pad2(glyph string) string {
	if glyph == "" {
		return "  "
	}
	if runewidth.StringWidth(glyph) < 2 {
		return glyph + " "
	}
	return glyph
}
