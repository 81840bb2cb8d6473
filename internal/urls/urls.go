package urls

// Provider and project URLs shown in help text and troubleshooting tips

// TogetherAPIKeys is where a Together AI key is created
const TogetherAPIKeys = "https://api.together.xyz/settings/api-keys"

// GeminiAPIKeys is where a Gemini API key is created
const GeminiAPIKeys = "https://aistudio.google.com/apikey"

// TogetherStatus reports Together AI outages
const TogetherStatus = "https://status.together.ai/"

// Troubleshooting covers provider setup and the fallback notes
const Troubleshooting = "https://github.com/muurk/roseday#troubleshooting"

// APIKeys returns the key page for a provider, or "" when unknown
func APIKeys(provider string) string {
	switch provider {
	case "together":
		return TogetherAPIKeys
	case "gemini":
		return GeminiAPIKeys
	default:
		return ""
	}
}
