package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightsky/seqview/internal/tui/commands"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// keyMap lists the live view bindings.
type keyMap struct {
	NextTarget key.Binding
	PrevTarget key.Binding
	RowDown    key.Binding
	RowUp      key.Binding
	Theme      key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTarget: key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "next target")),
		PrevTarget: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "prev target")),
		RowDown:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next exposure")),
		RowUp:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev exposure")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTarget, k.PrevTarget, k.Theme, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTarget, k.PrevTarget, k.RowDown, k.RowUp},
		{k.Theme, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", "key", msg.String())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTarget):
		m.moveTarget(1)
	case key.Matches(msg, m.keys.PrevTarget):
		m.moveTarget(-1)

	case key.Matches(msg, m.keys.RowDown):
		m.moveRow(1)
	case key.Matches(msg, m.keys.RowUp):
		m.moveRow(-1)

	case key.Matches(msg, m.keys.Theme):
		m.setTheme(theme.Next(m.themeName))
		return m.withStatus("Theme: " + m.themeName)

	case key.Matches(msg, m.keys.Copy):
		if m.selectedID == "" {
			return m.withStatus("No target selected")
		}
		return m, m.copyCmd(m.selectedID)

	case key.Matches(msg, m.keys.Reload):
		return m, commands.LoadSequence(m.path)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// moveTarget moves the target selection by delta, clamped to the list.
// The exposure row resets when the target changes.
func (m *Model) moveTarget(delta int) {
	if m.seq == nil || len(m.seq.Targets) == 0 {
		return
	}
	idx := m.seq.TargetIndex(m.selectedID)
	if idx < 0 {
		idx = 0
	} else {
		idx += delta
	}
	idx = max(0, min(idx, len(m.seq.Targets)-1))

	if id := m.seq.Targets[idx].ID; id != m.selectedID {
		m.selectedID = id
		m.selectedRow = 0
	}
}

// moveRow moves the exposure row selection by delta within the selected target.
func (m *Model) moveRow(delta int) {
	t := m.selectedTarget()
	if t == nil || len(t.Exposures) == 0 {
		return
	}
	m.selectedRow = max(0, min(m.selectedRow+delta, len(t.Exposures)-1))
}
