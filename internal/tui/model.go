// Package tui provides the live terminal view of a sequence file.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightsky/seqview/internal/config"
	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/logging"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/tui/commands"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// statusDuration is how long transient status messages stay visible.
const statusDuration = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	path   string
	config *config.Config
	format *format.Formatter
	logger *slog.Logger

	// Theme and styles
	themeName string
	styles    *theme.Styles

	// Sequence state. seq is the last sequence that loaded successfully;
	// loadErr is the error of the most recent failed reload, if any.
	seq         *sequence.Sequence
	selectedID  string
	selectedRow int
	loadErr     error
	loadedAt    time.Time

	// Components
	keys keyMap
	help help.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status message
	statusTime time.Time // When to clear message

	refresh time.Duration
	now     func() time.Time
	copyCmd func(string) tea.Cmd
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithTarget preselects a target id.
func WithTarget(id string) ModelOption {
	return func(m *Model) {
		m.selectedID = id
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithCopyCmd replaces the clipboard command.
func WithCopyCmd(fn func(string) tea.Cmd) ModelOption {
	return func(m *Model) {
		m.copyCmd = fn
	}
}

// New creates a new TUI model watching the sequence file at path.
func New(path string, cfg *config.Config, f *format.Formatter, opts ...ModelOption) *Model {
	m := &Model{
		path:    path,
		config:  cfg,
		format:  f,
		logger:  logging.Discard(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		refresh: time.Duration(cfg.UI.RefreshSeconds) * time.Second,
		now:     time.Now,
		copyCmd: commands.CopyToClipboard,
	}
	if m.refresh <= 0 {
		m.refresh = 5 * time.Second
	}
	m.setTheme(cfg.UI.Theme)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init loads the sequence and starts the reload ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(commands.LoadSequence(m.path), commands.Tick(m.refresh))
}

// setTheme switches to the named theme; unknown names fall back to the default.
func (m *Model) setTheme(name string) {
	if !theme.IsAvailable(name) {
		m.logger.Warn("unknown theme, using default", "theme", name)
		name = theme.DefaultName
	}
	t, err := theme.Load(name)
	if err != nil {
		m.logger.Error("loading theme", "theme", name, "err", err)
	}
	m.themeName = strings.ToLower(name)
	m.styles = theme.NewStyles(t)

	m.help.Styles.ShortKey = m.styles.TitleStyle
	m.help.Styles.ShortDesc = m.styles.HelpStyle
	m.help.Styles.ShortSeparator = m.styles.MutedStyle
	m.help.Styles.FullKey = m.styles.TitleStyle
	m.help.Styles.FullDesc = m.styles.HelpStyle
	m.help.Styles.FullSeparator = m.styles.MutedStyle
	m.help.Styles.Ellipsis = m.styles.MutedStyle
}

// selectedTarget returns the selected target, or nil.
func (m Model) selectedTarget() *sequence.Target {
	if m.seq == nil || m.selectedID == "" {
		return nil
	}
	t, err := m.seq.FindTarget(m.selectedID)
	if err != nil {
		return nil
	}
	return t
}

// applySequence installs a freshly loaded sequence, keeping the current
// selection when the target still exists.
func (m *Model) applySequence(seq *sequence.Sequence) {
	m.config.ApplyDownloadTime(seq)
	seq.CalculateETAs(m.now())

	m.seq = seq
	m.loadErr = nil
	m.loadedAt = m.now()

	if _, err := seq.FindTarget(m.selectedID); m.selectedID == "" || err != nil {
		m.selectedID = ""
		m.selectedRow = 0
		if t, err := seq.ResolveTarget(""); err == nil {
			m.selectedID = t.ID
		}
	}

	if t := m.selectedTarget(); t != nil {
		m.selectedRow = max(0, min(m.selectedRow, len(t.Exposures)-1))
	}
}

// withStatus shows a transient status message.
func (m Model) withStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(statusDuration)
	return m, commands.ClearStatusAfter(statusDuration)
}
