// Package view turns sequence state into rendered status views.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// StatusBarState holds the formatted values shown in the status bar.
type StatusBarState struct {
	Title       string
	Status      format.EntityStatus
	StatusLabel string
	Selection   string // shortened selected target id, or the no-selection label
	TargetName  string
	Targets     int
	Frames      string // "completed / total"
	Remaining   string // remaining runtime
	ETA         string // wall-clock end, empty when unknown
	Theme       string
	Message     string // transient message, e.g. a reload error
}

// BuildStatusBar formats the sequence-wide values for the status bar.
// selectedID may be empty, in which case the selection label is shown.
func BuildStatusBar(seq *sequence.Sequence, selectedID string, f *format.Formatter) (StatusBarState, error) {
	state := StatusBarState{
		Title:     seq.Title,
		Status:    seq.Status(),
		Selection: f.Identifier(selectedID),
		Targets:   len(seq.Targets),
	}
	state.StatusLabel = f.StatusLabel(state.Status)

	if selectedID != "" {
		if t, err := seq.FindTarget(selectedID); err == nil {
			state.TargetName = t.TargetName
		}
	}

	frames, err := f.Progress(seq.CompletedExposureCount(), seq.TotalExposureCount())
	if err != nil {
		return StatusBarState{}, fmt.Errorf("formatting frames: %w", err)
	}
	state.Frames = frames

	remaining, err := f.Duration(format.Seconds(int64(seq.TotalRuntime())))
	if err != nil {
		return StatusBarState{}, fmt.Errorf("formatting remaining time: %w", err)
	}
	state.Remaining = remaining

	if eta, ok := seq.OverallETA(); ok {
		state.ETA = eta.End.Local().Format("15:04")
	}

	return state, nil
}

// RenderStatusBar renders the status bar as a single line of exactly width
// cells. Content that does not fit is truncated with an ellipsis.
func RenderStatusBar(state StatusBarState, styles *theme.Styles, width int) string {
	badge := styles.IdleBadge
	if state.Status == format.StatusRunning {
		badge = styles.RunningBadge
	}

	key := styles.StatusKeyStyle
	val := styles.StatusBarStyle
	sep := val.Render("  ")

	parts := []string{
		badge.Render(state.StatusLabel),
		val.Render(" " + state.Title),
		sep + key.Render("target ") + val.Render(state.Selection),
	}
	if state.TargetName != "" {
		parts = append(parts, val.Render(" ("+state.TargetName+")"))
	}
	parts = append(parts,
		sep+key.Render("frames ")+val.Render(state.Frames),
		sep+key.Render("remaining ")+val.Render(state.Remaining),
	)
	if state.ETA != "" {
		parts = append(parts, sep+key.Render("eta ")+val.Render(state.ETA))
	}
	if state.Message != "" {
		parts = append(parts, sep+styles.ErrorStyle.Inherit(val).Render(state.Message))
	}

	left := strings.Join(parts, "")
	right := key.Render(state.Theme + " ")
	return fitLine(left, right, width, val)
}

// fitLine places left and right on one line of width cells, filling the gap
// with the fill style. Left is truncated first; right is dropped when there
// is no room for it.
func fitLine(left, right string, width int, fill lipgloss.Style) string {
	if width <= 0 {
		return left + right
	}

	rw := lipgloss.Width(right)
	if rw >= width {
		right, rw = "", 0
	}
	avail := width - rw
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	}
	gap := width - lipgloss.Width(left) - rw
	if gap < 0 {
		gap = 0
	}
	return left + fill.Render(strings.Repeat(" ", gap)) + right
}

// Truncate shortens s to width cells, keeping ANSI styling intact.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// TruncateLines applies Truncate to every line of s.
func TruncateLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = Truncate(line, width)
	}
	return strings.Join(lines, "\n")
}
