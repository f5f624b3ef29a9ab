package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightsky/seqview/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.SequenceLoadedMsg:
		m.applySequence(msg.Sequence)
		m.logger.Debug("sequence loaded",
			"path", m.path,
			"targets", len(msg.Sequence.Targets),
			"modified", msg.ModTime)
		return m, nil

	case commands.LoadFailedMsg:
		// The last good sequence stays on screen.
		m.loadErr = msg.Err
		m.logger.Warn("reload failed", "path", m.path, "err", msg.Err)
		return m, nil

	case commands.TickMsg:
		return m, tea.Batch(commands.LoadSequence(m.path), commands.Tick(m.refresh))

	case commands.CopiedMsg:
		return m.withStatus("Copied " + msg.Text)

	case commands.ErrMsg:
		m.logger.Error("command failed", "err", msg.Err)
		return m.withStatus(fmt.Sprintf("Error: %v", msg.Err))

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}
