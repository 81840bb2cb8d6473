// Package effects provides the decorative layer of the result screen:
// sound cues, click particles, confetti and background petals.
//
// Nothing here knows about Bubble Tea. Field is advanced with explicit
// timestamps and rendered to plain text, so the UI drives it from its tick
// messages and tests drive it with fixed times.
package effects
