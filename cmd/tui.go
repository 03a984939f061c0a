package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"jrlgen/internal/ui"
)

// runInteractive runs the Bubble Tea program and prints the last exported
// document once the terminal is restored
func (a *app) runInteractive(ctx context.Context, out io.Writer) error {
	model := ui.NewModel(ctx, a.newSession(), a.newLoader(), a.cfg.Index, a.cfg, a.logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	a.logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("error running program", slog.String("error", err.Error()))
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("UI exited normally")

	if doc := model.LastExport(); doc != nil {
		if _, err := out.Write(doc); err != nil {
			return err
		}
	}
	return nil
}
