package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"listkeep/internal/listview"
)

// Run starts the interactive list. It blocks until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *listview.Controller, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	if w := opts.Watcher; w != nil {
		if err := w.Start(ctx); err != nil {
			if opts.Log != nil {
				opts.Log.Warn("storage watcher disabled", "err", err)
			}
			opts.Watcher = nil
		} else {
			defer w.Stop()
		}
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(newAppModel(ctx, ctrl, opts), progOpts...).Run()
	return err
}
