// Package commands provides TUI command constructors and message types.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightsky/seqview/internal/sequence"
)

// SequenceLoadedMsg is sent when the sequence file has been read.
type SequenceLoadedMsg struct {
	Sequence *sequence.Sequence
	ModTime  time.Time
}

// LoadFailedMsg is sent when the sequence file could not be read or decoded.
type LoadFailedMsg struct {
	Err error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// TickMsg triggers a periodic reload.
type TickMsg struct {
	At time.Time
}

// CopiedMsg is sent after text was written to the clipboard.
type CopiedMsg struct {
	Text string
}

// LoadSequence reads and decodes the sequence file at path.
func LoadSequence(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return LoadFailedMsg{Err: fmt.Errorf("reading sequence: %w", err)}
		}

		seq, err := sequence.Load(path)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}

		return SequenceLoadedMsg{Sequence: seq, ModTime: info.ModTime()}
	}
}

// Tick schedules the next periodic reload.
func Tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// ClearStatusAfter clears the status message after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return copyWith(clipboard.WriteAll, text)
}

func copyWith(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return ErrMsg{Err: fmt.Errorf("nothing to copy")}
		}
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Text: text}
	}
}
