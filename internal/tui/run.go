package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightsky/seqview/internal/config"
	"github.com/nightsky/seqview/internal/format"
)

// Run starts the live view on the sequence file at path and blocks until
// the user quits.
func Run(path string, cfg *config.Config, f *format.Formatter, logger *slog.Logger, targetID string) error {
	model := New(path, cfg, f, WithLogger(logger), WithTarget(targetID))
	logger.Info("watching sequence", "path", path, "refresh", model.refresh)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
