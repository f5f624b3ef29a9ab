package tui

import (
	"fmt"
	"path/filepath"

	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	return view.RenderScreen(m.screenState(), m.styles)
}

func (m Model) screenState() view.ScreenState {
	state := view.ScreenState{
		Width:  m.width,
		Height: m.height,
		Help:   m.help.View(m.keys),
	}

	if m.seq == nil {
		state.Empty = "Loading sequence..."
		if m.loadErr != nil {
			state.Empty = m.loadErr.Error()
		}
		state.StatusBar = view.StatusBarState{
			Status:      format.StatusCreated,
			StatusLabel: m.format.StatusLabel(format.StatusCreated),
			Selection:   m.format.Identifier(""),
			Frames:      format.Placeholder,
			Remaining:   format.Placeholder,
			Theme:       m.themeName,
			Message:     m.statusMsg,
		}
		return state
	}

	state.Header = filepath.Base(m.path)
	if !m.loadedAt.IsZero() {
		state.Header += "  updated " + m.loadedAt.Format("15:04:05")
	}

	bar, err := view.BuildStatusBar(m.seq, m.selectedID, m.format)
	if err != nil {
		bar = view.StatusBarState{Title: m.seq.Title, Selection: m.format.Identifier(m.selectedID),
			Frames: format.Placeholder, Remaining: format.Placeholder, Message: err.Error()}
	}
	bar.Theme = m.themeName
	switch {
	case m.statusMsg != "":
		bar.Message = m.statusMsg
	case m.loadErr != nil:
		bar.Message = fmt.Sprintf("reload failed: %v", m.loadErr)
	}
	state.StatusBar = bar

	if items, err := view.BuildTargetList(m.seq, m.selectedID, m.format); err == nil {
		state.Targets = items
	}

	if t := m.selectedTarget(); t != nil {
		rows, err := view.BuildExposureRows(t, m.seq.EstimatedDownloadTime, m.format, m.selectedRow)
		if err == nil {
			state.Exposures = view.ExposureTableState{Rows: rows}
		}
	}

	return state
}
