package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/roseday/internal/card/tui"
	"github.com/muurk/roseday/internal/config"
	"github.com/muurk/roseday/internal/discovery"
	"github.com/muurk/roseday/internal/effects"
	"github.com/muurk/roseday/internal/llm"
	"github.com/muurk/roseday/internal/logging"
	"github.com/muurk/roseday/internal/note"
	"github.com/muurk/roseday/internal/share"
	"github.com/muurk/roseday/internal/ui"
	"github.com/muurk/roseday/internal/urls"
)

// Global flags
var (
	configPath string
	provider   string
	logLevel   string
)

// Command flags
var (
	recipient    string
	styleName    string
	verbose      bool
	outputFormat string
	sharePort    int
	noAdvertise  bool
	findTimeout  int
	forceInit    bool
)

// probePrompt is the fixed prompt sent by check
const probePrompt = "Say 'Hello! Real AI is working!' in exactly those words."

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/roseday/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "Note provider (together, gemini)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logging is off by default")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging starts the logger. The card owns the terminal, so it logs
// to a file in the config directory unless ROSEDAY_LOG_FILE says otherwise.
func setupLogging(cmd *cobra.Command, args []string) error {
	output := ""
	if cmd.Parent() == nil && os.Getenv(logging.LogFileEnvVar) == "" {
		if dir, err := config.GetConfigDir(); err == nil && os.MkdirAll(dir, 0700) == nil {
			output = filepath.Join(dir, "roseday.log")
		}
	}
	return logging.Initialize(logLevel, output)
}

// loadSettings reads the config file and applies the --provider override
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if provider != "" {
		settings.Provider = strings.ToLower(provider)
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// providerLabel names the provider for display, marking a missing key
func providerLabel(service *note.Service, settings *config.Settings) string {
	if p := service.Provider(); p != "" {
		return p
	}
	return settings.Provider + " (not configured)"
}

func parseStyle() (note.Style, error) {
	if styleName == "" {
		return note.DefaultStyle, nil
	}
	return note.ParseStyle(styleName)
}

func runCard(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	service, cfgErr := note.NewService(settings)
	warning := ""
	if cfgErr != nil {
		warning = "No " + settings.Provider + " API key, notes will use the built-in fallback"
	}

	defer logging.Sync()
	return tui.Run(tui.Options{
		Context:     cmd.Context(),
		Generator:   service,
		Player:      effects.NewPlayer(settings.Preferences.Sound, os.Stderr),
		AutoAdvance: settings.AutoAdvance(),
		NameHint:    settings.Preferences.NameHint,
		Provider:    providerLabel(service, settings),
		Warning:     warning,
	})
}

// generateCmd writes one note without the card
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a note without the interactive card",
	Long: `Write a note for a recipient and print it.

The note is written in two calls: three candidates, then the provider
picks the best one. Any failure falls back to a built-in note, so this
command always prints something; the result box says which path was taken.`,
	Example: `  # A poetic note for Alex
  roseday generate --name Alex

  # A funny one, showing the raw provider text
  roseday generate --name Sam --style Funny --verbose

  # JSON for scripting
  roseday generate --name Kay --style Simple --format json`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&recipient, "name", "", "Recipient name (required)")
	generateCmd.Flags().StringVar(&styleName, "style", "", "Note style: tag or label (default Poetic)")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show candidates and the pick response")
	generateCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")
	_ = generateCmd.MarkFlagRequired("name")
}

// noteOutput is the JSON shape of generate --format json
type noteOutput struct {
	Name     string       `json:"name"`
	Style    note.Style   `json:"style"`
	Note     string       `json:"note"`
	Outcome  note.Outcome `json:"outcome"`
	Provider string       `json:"provider"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(recipient)
	if name == "" {
		return errors.New("--name must not be blank")
	}
	style, err := parseStyle()
	if err != nil {
		return err
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("unknown format %q (expected text or json)", outputFormat)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	service, _ := note.NewService(settings)
	out := cmd.OutOrStdout()

	if outputFormat == "json" {
		text := service.Generate(cmd.Context(), name, style)
		trace := service.LastTrace()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(noteOutput{
			Name:     name,
			Style:    trace.Style,
			Note:     text,
			Outcome:  trace.Outcome,
			Provider: service.Provider(),
		})
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Rose Day Note",
		Command: "roseday generate",
		Params: []ui.Detail{
			{Key: "Recipient", Value: name},
			{Key: "Style", Value: style.Info().Icon + " " + style.Label()},
			{Key: "Provider", Value: providerLabel(service, settings)},
		},
		StepNames: []string{"Writing candidates", "Picking the best"},
		Verbose:   verbose,
		Output:    out,
		Hints:     llm.TroubleshootingHints,
	})

	var text string
	err = runner.Run(cmd.Context(), func(ctx context.Context, onStep ui.StepCallback) ([]ui.Detail, error) {
		service.OnStep = stepReporter(onStep)
		text = service.Generate(ctx, name, style)
		trace := service.LastTrace()

		if trace.Candidates != "" {
			runner.AddTranscript("Candidates", trace.Candidates)
		}
		if trace.Picked != "" {
			runner.AddTranscript("Pick response", trace.Picked)
		}

		details := []ui.Detail{{Key: "Outcome", Value: string(trace.Outcome)}}
		if trace.Outcome != note.OutcomeGenerated {
			runner.Warn("Used the built-in note")
			if trace.Err != nil {
				details = append(details, ui.Detail{Key: "Reason", Value: trace.Err.Error()})
			}
		}
		return details, nil
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)
	ui.NewPrinter(out).PrintNote(name, text)
	return nil
}

// stepReporter maps pipeline steps onto runner progress lines
func stepReporter(onStep ui.StepCallback) func(note.StepEvent) {
	return func(ev note.StepEvent) {
		number := 1
		if ev.Step == note.StepPick {
			number = 2
		}
		switch ev.Status {
		case note.StepStarted:
			onStep(number, ui.StepRunning, "")
		case note.StepDone:
			onStep(number, ui.StepComplete, ev.Duration.Round(time.Millisecond).String())
		case note.StepFailed:
			msg := "failed"
			if ev.Err != nil {
				msg = ev.Err.Error()
			}
			onStep(number, ui.StepFailed, msg)
		}
	}
}

// checkCmd verifies the provider answers
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the note provider works",
	Long: `Send a short fixed prompt to the configured provider and report
whether a real model answered.`,
	Example: `  roseday check
  roseday check --provider gemini`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:     "Provider Check",
		Command:   "roseday check",
		Params:    []ui.Detail{{Key: "Provider", Value: settings.Provider}},
		StepNames: []string{"Sending probe prompt"},
		Verbose:   true,
		Output:    cmd.OutOrStdout(),
		Hints:     llm.TroubleshootingHints,
	})

	return runner.Run(cmd.Context(), func(ctx context.Context, onStep ui.StepCallback) ([]ui.Detail, error) {
		zero := 0.0
		completer, err := llm.NewWithOptions(settings, llm.Options{MaxTokens: 50, Temperature: &zero})
		if err != nil {
			onStep(1, ui.StepFailed, "not configured")
			return nil, err
		}

		onStep(1, ui.StepRunning, "")
		start := time.Now()
		reply, err := completer.Complete(ctx, probePrompt)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			onStep(1, ui.StepFailed, err.Error())
			return nil, err
		}
		onStep(1, ui.StepComplete, elapsed.String())
		runner.AddTranscript("Reply", reply)

		if !strings.Contains(reply, "Real AI is working") {
			runner.Warn("The provider answered with something else")
		}
		return []ui.Detail{
			{Key: "Provider", Value: completer.Name()},
			{Key: "Latency", Value: elapsed.String()},
		}, nil
	})
}

// stylesCmd lists the note styles
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the note styles",
	Run: func(cmd *cobra.Command, args []string) {
		rows := make([][]string, 0, len(note.Styles()))
		for _, s := range note.Styles() {
			rows = append(rows, []string{s.Icon, string(s.Tag), s.Label, s.Tone})
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintTable([]string{"", "TAG", "LABEL", "TONE"}, rows)
	},
}

// shareCmd serves a note on the local network
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Write a note and share it on the local network",
	Long: `Write a note and serve it as a web page on the local network.

The page reveals the note word by word over a websocket. Unless
--no-advertise is given the card is announced over mDNS, so
'roseday find' on another machine lists it. Stop with Ctrl+C.`,
	Example: `  roseday share --name Alex --style Warm
  roseday share --name Alex --port 9000 --no-advertise`,
	RunE: runShare,
}

func init() {
	shareCmd.Flags().StringVar(&recipient, "name", "", "Recipient name (required)")
	shareCmd.Flags().StringVar(&styleName, "style", "", "Note style: tag or label (default Poetic)")
	shareCmd.Flags().IntVar(&sharePort, "port", 0, "HTTP port (default from config, 8080)")
	shareCmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Do not announce the card over mDNS")
	_ = shareCmd.MarkFlagRequired("name")
}

func runShare(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(recipient)
	if name == "" {
		return errors.New("--name must not be blank")
	}
	style, err := parseStyle()
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	port := settings.Share.Port
	if sharePort > 0 {
		port = sharePort
	}

	service, _ := note.NewService(settings)
	text := service.Generate(cmd.Context(), name, style)

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintNote(name, text)
	p.Newline()
	p.PrintSuccess("Sharing the rose",
		ui.Detail{Key: "Address", Value: fmt.Sprintf("http://localhost:%d/", port)},
		ui.Detail{Key: "Advertised", Value: fmt.Sprint(settings.Share.Advertise && !noAdvertise)},
		ui.Detail{Key: "Stop", Value: "Ctrl+C"},
	)

	srv := share.New(share.Config{
		Port:      port,
		Advertise: settings.Share.Advertise && !noAdvertise,
	}, share.Card{Name: name, Style: service.LastTrace().Style, Note: text})

	return srv.Run(cmd.Context())
}

// findCmd lists shared roses on the network
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find roses shared on the local network",
	Example: `  roseday find
  roseday find --timeout 10`,
	RunE: runFind,
}

func init() {
	findCmd.Flags().IntVar(&findTimeout, "timeout", 5, "Browse timeout in seconds")
}

func runFind(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Looking for shared roses (timeout: %ds)...\n\n", findTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(findTimeout) * time.Second

	roses, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if len(roses) == 0 {
		fmt.Fprintln(out, "No roses found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Ensure 'roseday share' is running without --no-advertise")
		fmt.Fprintln(out, "  - Check that both machines are on the same network")
		fmt.Fprintln(out, "  - Allow mDNS (UDP port 5353) through the firewall")
		fmt.Fprintln(out, "  - Try increasing --timeout")
		return nil
	}

	rows := make([][]string, 0, len(roses))
	for _, r := range roses {
		rows = append(rows, []string{r.Name, r.Style, r.URL()})
	}
	ui.NewPrinter(out).PrintTable([]string{"FOR", "STYLE", "URL"}, rows)
	logging.Debug("Browse finished", zap.Int("found", len(roses)))
	return nil
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the roseday configuration file.

API keys are never stored in the file; export ROSEDAY_TOGETHER_API_KEY or
ROSEDAY_GEMINI_API_KEY (or the provider's own variable) instead.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		location := configPath
		if location == "" {
			location, _ = config.GetConfigPath()
		}
		data, err := settings.Marshal(location)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		if err == nil && config.APIKey(settings.Provider) == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n# No API key set for %s. Create one at %s\n", settings.Provider, urls.APIKeys(settings.Provider))
		}
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(configPath, forceInit)
		if errors.Is(err, config.ErrConfigExists) {
			if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Config file exists",
				[]string{path, "Your current settings will be replaced with the defaults"},
				"Overwrite it?") {
				return nil
			}
			path, err = config.WriteDefault(configPath, true)
		}
		if err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Config written", ui.Detail{Key: "Path", Value: path})
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
