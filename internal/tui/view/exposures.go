package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/tui/theme"
)

// ExposureHeaders are the column titles of the exposure table.
var ExposureHeaders = []string{"#", "Type", "Filter", "Bin", "Time", "Progress", "Runtime", "Status"}

// ExposureRow is one formatted exposure.
type ExposureRow struct {
	Index       int
	ID          string
	ImageType   string
	Filter      string
	Binning     string
	Exposure    string
	Progress    string
	Runtime     string
	Status      string
	StatusToken format.StyleToken
	Tokens      format.TokenSet
}

// Cells returns the row as table cells, in ExposureHeaders order.
func (r ExposureRow) Cells() []string {
	return []string{
		strconv.Itoa(r.Index),
		r.ImageType,
		r.Filter,
		r.Binning,
		r.Exposure,
		r.Progress,
		r.Runtime,
		r.Status,
	}
}

// BuildExposureRows formats every exposure of t. selectedRow is a zero-based
// index; pass -1 for no selection.
func BuildExposureRows(t *sequence.Target, downloadTime float64, f *format.Formatter, selectedRow int) ([]ExposureRow, error) {
	rows := make([]ExposureRow, 0, len(t.Exposures))
	for i, e := range t.Exposures {
		progress, err := f.Progress(e.ProgressCount, e.TotalCount)
		if err != nil {
			return nil, fmt.Errorf("exposure %d: %w", i+1, err)
		}
		runtime, err := f.Duration(format.Seconds(int64(e.Runtime(downloadTime))))
		if err != nil {
			return nil, fmt.Errorf("exposure %d: %w", i+1, err)
		}

		status := e.Status
		if !e.Enabled {
			status = format.StatusDisabled
		}

		filter := e.FilterName()
		if filter == "" {
			filter = "-"
		}

		rows = append(rows, ExposureRow{
			Index:       i + 1,
			ID:          e.ID,
			ImageType:   string(e.ImageType),
			Filter:      filter,
			Binning:     e.Binning.String(),
			Exposure:    strconv.FormatFloat(e.ExposureTime, 'f', -1, 64) + "s",
			Progress:    progress,
			Runtime:     runtime,
			Status:      f.StatusLabel(status),
			StatusToken: format.StatusStyleClass(status),
			Tokens:      format.RowStateClasses(i == selectedRow, e.Enabled),
		})
	}
	return rows, nil
}

// ExposureTableState holds what RenderExposureTable needs.
type ExposureTableState struct {
	Rows   []ExposureRow
	Width  int
	Height int // 0 lets the table grow with its rows
}

// RenderExposureTable renders rows with a lipgloss table. Row tokens style
// the whole row; the status column also gets its status color.
func RenderExposureTable(state ExposureTableState, styles *theme.Styles) string {
	statusCol := len(ExposureHeaders) - 1

	data := make([][]string, len(state.Rows))
	for i, r := range state.Rows {
		data[i] = r.Cells()
	}

	t := table.New().
		Headers(ExposureHeaders...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.BorderStyle).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle
			}
			if row < 0 || row >= len(state.Rows) {
				return styles.CellStyle
			}
			r := state.Rows[row]
			tokens := r.Tokens
			if col == statusCol {
				tokens = append(append(format.TokenSet{}, tokens...), r.StatusToken)
			}
			return styles.Compose(styles.CellStyle, tokens)
		})

	if state.Width > 0 {
		t = t.Width(state.Width)
	}
	if state.Height > 0 {
		t = t.Height(state.Height)
	}
	return t.Render()
}
