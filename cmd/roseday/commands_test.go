package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/logging"
	"github.com/muurk/roseday/internal/note"
)

// execute runs the root command with args against a temporary config file
// and no API keys in the environment
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	for _, v := range append(append([]string{}, config.TogetherKeyEnvVars...), config.GeminiKeyEnvVars...) {
		t.Setenv(v, "")
	}
	t.Setenv(logging.LogLevelEnvVar, "")

	// flags are package globals; reset them between runs
	configPath, provider, logLevel = "", "", ""
	recipient, styleName, outputFormat = "", "", "text"
	verbose, forceInit = false, false

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerate_JSONWithoutKeyUsesFallback(t *testing.T) {
	out, err := execute(t, "", "generate", "--name", "Alex", "--style", "Cute", "--format", "json")
	require.NoError(t, err)

	var got noteOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, note.Playful, got.Style)
	assert.Equal(t, note.LongFallback("Alex"), got.Note)
	assert.Equal(t, note.OutcomeLongFallback, got.Outcome)
	assert.Empty(t, got.Provider)
}

func TestGenerate_TextShowsWarning(t *testing.T) {
	out, err := execute(t, "", "generate", "--name", "Sam")
	require.NoError(t, err)

	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "Used the built-in note")
	assert.Contains(t, out, "together (not configured)")
	assert.Contains(t, out, "Sam")
}

func TestGenerate_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "", "generate", "--name", "   ")
	assert.ErrorContains(t, err, "blank")

	_, err = execute(t, "", "generate", "--name", "Alex", "--style", "Gothic")
	assert.ErrorContains(t, err, "unknown style")

	_, err = execute(t, "", "generate", "--name", "Alex", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "", "--provider", "openai", "generate", "--name", "Alex")
	assert.Error(t, err)
}

func TestCheck_MissingKeyFails(t *testing.T) {
	out, err := execute(t, "", "check")
	require.Error(t, err)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "TOGETHER_API_KEY")
}

func TestStyles_ListsAll(t *testing.T) {
	out, err := execute(t, "", "styles")
	require.NoError(t, err)
	for _, s := range note.Styles() {
		assert.Contains(t, out, string(s.Tag))
		assert.Contains(t, out, s.Label)
	}
}

func TestConfigInit_AsksBeforeOverwrite(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")

	for _, v := range append(append([]string{}, config.TogetherKeyEnvVars...), config.GeminiKeyEnvVars...) {
		t.Setenv(v, "")
	}
	run := func(stdin string, args ...string) string {
		configPath, forceInit = "", false
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	run("", "config", "init")
	_, err := os.Stat(cfg)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg, []byte("version: 1\nprovider: gemini\n"), 0600))
	out := run("n\n", "config", "init")
	assert.Contains(t, out, "Cancelled")
	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: gemini")

	run("y\n", "config", "init")
	data, err = os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: together")

	out = run("", "config", "show")
	assert.Contains(t, out, "API keys are NEVER stored")
	assert.Contains(t, out, "together.xyz")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "roseday "), out)
}

func TestSetupLogging_OnlyCardLogsToFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir follows XDG_CONFIG_HOME on linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(logging.LogFileEnvVar, "")
	logFile := filepath.Join(dir, "roseday", "roseday.log")

	logLevel = "info"
	t.Cleanup(func() {
		logLevel = ""
		_ = logging.Initialize("", "")
	})

	require.NoError(t, setupLogging(versionCmd, nil))
	assert.NoFileExists(t, logFile, "subcommands log to stderr")

	require.NoError(t, setupLogging(rootCmd, nil))
	logging.Info("card started")
	logging.Sync()
	assert.FileExists(t, logFile)
}
