package note

import (
	"fmt"
	"strings"
)

// Style is one of the five tone categories a note can be written in
type Style string

const (
	Poetic     Style = "Poetic"
	Simple     Style = "Simple"
	Playful    Style = "Playful"
	Humorous   Style = "Humorous"
	Empathetic Style = "Empathetic"
)

// DefaultStyle is used when no style was chosen
const DefaultStyle = Poetic

// StyleInfo describes how a style is presented and prompted
type StyleInfo struct {
	Tag   Style
	Label string
	Icon  string
	Tone  string
}

var styles = []StyleInfo{
	{Poetic, "Poetic", "🖋️", "romantic, metaphorical, soul-stirring, about fate and eternity"},
	{Simple, "Simple", "✨", "concise, minimalist, pure, heartfelt"},
	{Playful, "Cute", "😋", "cheeky, flirtatious, lighthearted, cute puns"},
	{Humorous, "Funny", "😂", "funny, witty, sarcastic in a cute way, clever jokes"},
	{Empathetic, "Warm", "🫂", "deeply understanding, supportive, warm, acknowledging distance"},
}

// Styles returns the style table in display order
func Styles() []StyleInfo {
	out := make([]StyleInfo, len(styles))
	copy(out, styles)
	return out
}

// Info returns the table entry for s, or the default style's entry
func (s Style) Info() StyleInfo {
	for _, info := range styles {
		if info.Tag == s {
			return info
		}
	}
	return styles[0]
}

// Valid reports whether s is one of the five tags
func (s Style) Valid() bool {
	for _, info := range styles {
		if info.Tag == s {
			return true
		}
	}
	return false
}

// Tone returns the prompt instruction for s
func (s Style) Tone() string {
	return s.Info().Tone
}

// Label returns the display label for s
func (s Style) Label() string {
	return s.Info().Label
}

// Index returns the position of s in the style table (0 for unknown)
func (s Style) Index() int {
	for i, info := range styles {
		if info.Tag == s {
			return i
		}
	}
	return 0
}

// ParseStyle accepts a tag or a display label, case-insensitively
func ParseStyle(raw string) (Style, error) {
	want := strings.TrimSpace(raw)
	for _, info := range styles {
		if strings.EqualFold(want, string(info.Tag)) || strings.EqualFold(want, info.Label) {
			return info.Tag, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (expected one of %s)", raw, strings.Join(tagNames(), ", "))
}

func tagNames() []string {
	names := make([]string, len(styles))
	for i, info := range styles {
		names[i] = string(info.Tag)
	}
	return names
}
