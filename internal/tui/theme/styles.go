package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nightsky/seqview/internal/format"
)

// Styles holds the lipgloss styles for every view, derived from a theme.
type Styles struct {
	Name    string
	Palette *Palette

	// tokens maps formatter style tokens to their rendering.
	tokens map[format.StyleToken]lipgloss.Style

	TitleStyle      lipgloss.Style
	StatusBarStyle  lipgloss.Style
	StatusKeyStyle  lipgloss.Style
	RunningBadge    lipgloss.Style
	IdleBadge       lipgloss.Style
	HeaderStyle     lipgloss.Style
	CellStyle       lipgloss.Style
	BorderStyle     lipgloss.Style
	MutedStyle      lipgloss.Style
	WarningStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	HelpStyle       lipgloss.Style
	ListItemStyle   lipgloss.Style
	ListActiveStyle lipgloss.Style
}

// NewStyles creates all styles from a theme.
func NewStyles(t *Theme) *Styles {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	p := NewPalette(t)

	s := &Styles{
		Name:    t.Name,
		Palette: p,
		tokens:  make(map[format.StyleToken]lipgloss.Style),
	}

	for _, status := range []format.StyleToken{
		format.TokenStatusCreated,
		format.TokenStatusRunning,
		format.TokenStatusFinished,
		format.TokenStatusFailed,
		format.TokenStatusSkipped,
		format.TokenStatusDisabled,
		format.TokenStatusNeutral,
	} {
		s.tokens[status] = lipgloss.NewStyle().Foreground(p.StatusColor(status))
	}
	s.tokens[format.TokenStatusRunning] = s.tokens[format.TokenStatusRunning].Bold(true)
	s.tokens[format.TokenStatusFailed] = s.tokens[format.TokenStatusFailed].Bold(true)

	s.tokens[format.TokenSelected] = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.TextOnSelection).
		Bold(true)
	s.tokens[format.TokenDisabled] = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Faint(true)

	s.TitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.StatusBarStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.Fg)

	s.StatusKeyStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.FgMuted)

	s.RunningBadge = lipgloss.NewStyle().
		Background(p.RunningBg).
		Foreground(p.TextOnRunning).
		Bold(true).
		Padding(0, 1)

	s.IdleBadge = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Padding(0, 1)

	s.HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Padding(0, 1)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.StatusColor(format.TokenStatusFailed)).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.ListItemStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Padding(0, 1)

	s.ListActiveStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.TextOnSelection).
		Bold(true).
		Padding(0, 1)

	return s
}

// Token returns the style for a single token. Unknown tokens get an empty style.
func (s *Styles) Token(tok format.StyleToken) lipgloss.Style {
	if st, ok := s.tokens[tok]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Compose layers the styles of every token onto base. Earlier tokens win
// when two tokens set the same property. Padding always comes from base.
func (s *Styles) Compose(base lipgloss.Style, tokens format.TokenSet) lipgloss.Style {
	out := lipgloss.NewStyle()
	for _, tok := range tokens {
		out = out.Inherit(s.Token(tok))
	}
	return out.Inherit(base).Padding(base.GetPadding())
}

// Apply renders text with the composed style of tokens.
func (s *Styles) Apply(tokens format.TokenSet, text string) string {
	return s.Compose(lipgloss.NewStyle(), tokens).Render(text)
}
