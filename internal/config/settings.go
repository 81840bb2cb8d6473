package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "roseday"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/roseday or $HOME/.config/roseday
//   - macOS: $HOME/.config/roseday
//   - Windows: %LOCALAPPDATA%\roseday
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// resolvePath returns path, or the default location when path is empty.
func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return GetConfigPath()
}

// Load reads settings from path (default location when empty).
// A missing file yields defaults; a present file is validated.
func Load(path string) (*Settings, error) {
	configPath, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	return settings, nil
}

func parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if s.Version == 0 {
		s.Version = 1
	}
	if s.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", s.Version)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal renders the settings as YAML with the explanatory header.
func (s *Settings) Marshal(location string) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# roseday configuration file
#
# API keys are NEVER stored here. Export one of:
#   ROSEDAY_TOGETHER_API_KEY / TOGETHER_API_KEY   (provider: together)
#   ROSEDAY_GEMINI_API_KEY / GEMINI_API_KEY       (provider: gemini)
#
# Location: ` + location + `

`)
	return append(header, data...), nil
}

// Save writes the settings to path (default location when empty).
// Performs an atomic write to prevent corruption on crash.
func (s *Settings) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	configPath, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := s.Marshal(configPath)
	if err != nil {
		return err
	}

	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// WriteDefault writes a default configuration file. Unless force is set it
// refuses to replace an existing file and returns ErrConfigExists.
func WriteDefault(path string, force bool) (string, error) {
	configPath, err := resolvePath(path)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, ErrConfigExists
		}
	}

	return configPath, NewSettings().Save(configPath)
}
