package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nightsky/seqview/internal/tui/theme"
)

// ScreenState contains everything the live view shows in one frame.
type ScreenState struct {
	Width  int
	Height int

	Header    string
	Targets   []TargetItem
	Exposures ExposureTableState
	StatusBar StatusBarState
	Help      string

	// Empty replaces the body when no sequence has been loaded yet.
	Empty string
}

// RenderScreen composes the full-screen view: header, target list and
// exposure table on top, status bar and help pinned to the bottom.
func RenderScreen(state ScreenState, styles *theme.Styles) string {
	if state.Width == 0 || state.Height == 0 {
		return "Loading..."
	}

	bg := styles.Palette.Bg
	footer := RenderStatusBar(state.StatusBar, styles, state.Width)
	if state.Help != "" {
		footer += "\n" + TruncateLines(state.Help, state.Width)
	}

	// Full help spans several lines; the body gets what is left.
	bodyH := state.Height - lipgloss.Height(footer)
	if bodyH < 1 {
		return PadLinesWithBackground(footer, state.Width, state.Height, bg)
	}

	var body string
	if state.Empty != "" {
		body = lipgloss.Place(state.Width, bodyH, lipgloss.Center, lipgloss.Center,
			styles.MutedStyle.Render(state.Empty), lipgloss.WithWhitespaceBackground(bg))
	} else {
		header := styles.TitleStyle.Render(Truncate(state.Header, state.Width))
		targets := RenderTargetList(state.Targets, styles, state.Width)
		exposures := state.Exposures
		if exposures.Width == 0 || exposures.Width > state.Width {
			exposures.Width = state.Width
		}
		table := RenderExposureTable(exposures, styles)
		body = lipgloss.JoinVertical(lipgloss.Left, header, "", targets, "", table)
	}

	screen := PlaceBox(state.Width, bodyH, lipgloss.Top, body, bg) + "\n" + footer
	return PadLinesWithBackground(screen, state.Width, state.Height, bg)
}
