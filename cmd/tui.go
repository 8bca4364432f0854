package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for catalog browsing.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: catalog engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/telaflix-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, r.catalog, r.channels, r.store, r.config.App.Language)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
