package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the card full screen until the user quits or opts.Context is
// cancelled
func Run(opts Options) error {
	app := NewAppModel(opts)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}

	final, err := tea.NewProgram(app, programOpts...).Run()
	if m, ok := final.(AppModel); ok {
		m.Controller.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running card: %w", err)
	}
	return nil
}
