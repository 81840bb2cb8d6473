// Roseday is a digital rose for someone special.
//
// Running without arguments opens the interactive card: a rose grows, asks
// who it is for, offers five styles of note and then writes one with a
// language model, falling back to a built-in note when no provider is
// reachable.
//
// Usage:
//
//	roseday [command] [flags]
//
// See 'roseday --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/roseday/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roseday",
	Short: "A digital rose with a love note",
	Long: `A digital rose with a love note written just for them.

The card asks who the rose is for, lets you pick how to say it (Poetic,
Simple, Cute, Funny or Warm) and writes the note with Together AI or Gemini.
Without an API key the card still works with a built-in note.

If no command is specified, the interactive card opens.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runCard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "roseday %s (commit: %s)\n", version.Version, version.Commit)
	},
}
