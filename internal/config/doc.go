// Package config provides user configuration management for roseday.
//
// Settings live in a YAML file that selects the text-generation provider,
// its sampling parameters, interactive preferences and the share server
// port. The file follows OS-specific conventions:
//   - Linux: $XDG_CONFIG_HOME/roseday/config.yaml or $HOME/.config/roseday/config.yaml
//   - macOS: $HOME/.config/roseday/config.yaml
//   - Windows: %LOCALAPPDATA%\roseday\config.yaml
//
// A missing file is not an error; Load returns the defaults
// (Together AI, Llama 2 7B chat, 200 tokens, temperature 0.7,
// 2.5 second loading screen).
//
// # Security
//
// API keys are NEVER written to the file. They are read from the
// environment by APIKey, checking the ROSEDAY_* names first and the legacy
// VITE_* names last.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	settings.Provider = config.ProviderGemini
//	if err := settings.Save(""); err != nil {
//	    return err
//	}
package config
