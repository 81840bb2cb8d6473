package note

import "fmt"

// CandidateCount is how many drafts the first call asks for
const CandidateCount = 3

// CandidatesPrompt asks for CandidateCount differently worded notes
func CandidatesPrompt(name string, style Style) string {
	return fmt.Sprintf("Write %d different %s Rose Day messages for %s. Style: %s. "+
		"Each should mention the digital rose won't wilt, have 2-3 love emojis (💋❤️💖), "+
		"be 25-40 words, and sound completely different. Format as: 1) ... 2) ... 3) ...",
		CandidateCount, style, name, style.Tone())
}

// PickPrompt embeds the raw candidates text and asks for the best one only
func PickPrompt(candidates string, style Style) string {
	return fmt.Sprintf("Below are %d Rose Day messages:\n%s\n\n"+
		"Choose the BEST one that matches %q style: %s. Return ONLY that message text, nothing else.",
		CandidateCount, candidates, string(style), style.Tone())
}

// ShortFallback is shown when a generation step fails or returns nothing
func ShortFallback(name string) string {
	return fmt.Sprintf("My dear %s, just like this rose, my feelings for you grow more beautiful every single day.", name)
}

// LongFallback is shown when the provider cannot be used at all
func LongFallback(name string) string {
	return ShortFallback(name) + " You make everything feel like springtime. " +
		"This digital rose is for you, because you deserve a beauty that never wilts."
}
