package ui

import (
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// Color definitions for consistent styling across the UI.
var (
	// Running: bold cyan, the thing to watch
	colorRunning = color.New(color.FgCyan, color.Bold)

	// Finished: green
	colorFinished = color.New(color.FgGreen)

	// Failed: bold red
	colorFailed = color.New(color.FgRed, color.Bold)

	// Warnings: yellow to make them pop
	colorWarning = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output, including lipgloss tables.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// formatStatus colors a status label by its status.
func formatStatus(status format.EntityStatus, label string) string {
	switch status {
	case format.StatusRunning:
		return colorRunning.Sprint(label)
	case format.StatusFinished:
		return colorFinished.Sprint(label)
	case format.StatusFailed:
		return colorFailed.Sprint(label)
	case format.StatusSkipped, format.StatusDisabled:
		return colorMuted.Sprint(label)
	default:
		return label
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatWarning formats text as a warning.
func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

// formatError formats text as an error.
func formatError(s string) string {
	return colorFailed.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func joinThemes() string {
	return strings.Join(theme.Available(), ", ")
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}
