package view

import (
	"fmt"
	"strings"

	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// TargetItem is one entry of the target list.
type TargetItem struct {
	ID          string
	Label       string // shortened id
	Name        string
	Status      string
	StatusToken format.StyleToken
	Frames      string
	Runtime     string
	Active      bool
	Tokens      format.TokenSet
}

// BuildTargetList formats every target, marking selectedID.
func BuildTargetList(seq *sequence.Sequence, selectedID string, f *format.Formatter) ([]TargetItem, error) {
	items := make([]TargetItem, 0, len(seq.Targets))
	for _, t := range seq.Targets {
		frames, err := f.Progress(t.TotalExposureCount()-t.RemainingExposureCount(), t.TotalExposureCount())
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.TargetName, err)
		}
		runtime, err := f.Duration(format.Seconds(int64(t.Runtime(seq.EstimatedDownloadTime))))
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.TargetName, err)
		}

		enabled := t.Status != format.StatusDisabled && t.Status != format.StatusSkipped
		items = append(items, TargetItem{
			ID:          t.ID,
			Label:       f.Identifier(t.ID),
			Name:        t.TargetName,
			Status:      f.StatusLabel(t.Status),
			StatusToken: format.StatusStyleClass(t.Status),
			Frames:      frames,
			Runtime:     runtime,
			Active:      t.ID == seq.ActiveTargetID,
			Tokens:      format.RowStateClasses(t.ID == selectedID, enabled),
		})
	}
	return items, nil
}

// RenderTargetList renders one line per target, truncated to width.
func RenderTargetList(items []TargetItem, styles *theme.Styles, width int) string {
	if len(items) == 0 {
		return styles.MutedStyle.Render("no targets")
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		marker := " "
		if it.Active {
			marker = "▶"
		}
		status := styles.Token(it.StatusToken).Render(it.Status)
		text := fmt.Sprintf("%s %s  %s  %s  %s", marker, it.Name, status, it.Frames, it.Runtime)

		base := styles.ListItemStyle
		if it.Tokens.Has(format.TokenSelected) {
			base = styles.ListActiveStyle
		}
		line := styles.Compose(base, it.Tokens).Render(text)
		lines = append(lines, Truncate(line, width))
	}
	return strings.Join(lines, "\n")
}
