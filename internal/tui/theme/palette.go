package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/nightsky/seqview/internal/format"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	Status map[format.StyleToken]lipgloss.Color

	// Tinted backgrounds used for status badges.
	RunningBg lipgloss.Color
	FailedBg  lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnSelection lipgloss.Color
	TextOnRunning   lipgloss.Color
	TextOnFailed    lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	runningBg := badgeBg(t.Running, t.Bg, isLight)
	failedBg := badgeBg(t.Failed, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(coalesce(t.BgHighlight, t.Bg)),
		BgSelection: lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Accent)),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),

		Status: map[format.StyleToken]lipgloss.Color{
			format.TokenStatusCreated:  lipgloss.Color(t.Created),
			format.TokenStatusRunning:  lipgloss.Color(t.Running),
			format.TokenStatusFinished: lipgloss.Color(t.Finished),
			format.TokenStatusFailed:   lipgloss.Color(t.Failed),
			format.TokenStatusSkipped:  lipgloss.Color(t.Skipped),
			format.TokenStatusDisabled: lipgloss.Color(t.FgMuted),
			format.TokenStatusNeutral:  lipgloss.Color(t.Fg),
		},

		RunningBg: lipgloss.Color(runningBg),
		FailedBg:  lipgloss.Color(failedBg),

		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnSelection: lipgloss.Color(chooseTextColor(coalesce(t.BgSelection, t.Accent), t.Bg, t.Fg)),
		TextOnRunning:   lipgloss.Color(chooseTextColor(runningBg, t.Bg, t.Fg)),
		TextOnFailed:    lipgloss.Color(chooseTextColor(failedBg, t.Bg, t.Fg)),
	}
}

// StatusColor returns the color for a status token, or Fg for anything else.
func (p *Palette) StatusColor(tok format.StyleToken) lipgloss.Color {
	if c, ok := p.Status[tok]; ok {
		return c
	}
	return p.Fg
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// badgeBg tints the status color towards the background so badge text stays
// readable on both light and dark themes.
func badgeBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// darkenColor halves the brightness of a hex color, with a floor so the
// result stays visible on dark backgrounds.
func darkenColor(hex string) string {
	r, g, b, ok := splitHex(hex)
	if !ok {
		return hex
	}

	const minBrightness = 40
	r = max(int(float64(r)*0.5), minBrightness)
	g = max(int(float64(g)*0.5), minBrightness)
	b = max(int(float64(b)*0.5), minBrightness)

	return formatHexColor(r, g, b)
}

func splitHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return r, g, b, true
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := splitHex(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := splitHex(a)
	br, bg, bb, okB := splitHex(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Min(math.Max(ratio, 0), 1)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
