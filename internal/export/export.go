// Package export writes sequences in formats other planning tools import.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nightsky/seqview/internal/sequence"
)

// ErrUnknownFormat is returned for format names Export does not know.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an output format.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatTelescopius Format = "telescopius"
	FormatXML         Format = "xml"
	FormatAPT         Format = "apt"
	FormatStellarium  Format = "stellarium"
	FormatVoyager     Format = "voyager"
	FormatNINA        Format = "nina"
	FormatJSON        Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{
		FormatCSV, FormatTelescopius, FormatXML, FormatAPT,
		FormatStellarium, FormatVoyager, FormatNINA, FormatJSON,
	}
}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options controls what an export contains.
type Options struct {
	Format           Format
	IncludeExposures bool
	IncludeSettings  bool
	IncludeProgress  bool
	DecimalPlaces    int
	Coordinates      CoordinateFormat
	Now              time.Time // stamped into formats that carry an export date
}

// DefaultOptions returns CSV with exposures and settings, no progress.
func DefaultOptions() Options {
	return Options{
		Format:           FormatCSV,
		IncludeExposures: true,
		IncludeSettings:  true,
		DecimalPlaces:    2,
		Coordinates:      CoordSexagesimal,
	}
}

// Result is a rendered export.
type Result struct {
	Format  Format
	Content []byte
	Targets int
}

// Export renders seq in opts.Format.
func Export(seq *sequence.Sequence, opts Options) (Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var (
		content []byte
		err     error
	)
	switch opts.Format {
	case FormatCSV:
		content, err = writeCSV(seq, opts)
	case FormatTelescopius:
		content, err = writeTelescopius(seq)
	case FormatXML:
		content, err = writeXML(seq, opts)
	case FormatAPT:
		content, err = writeAPT(seq)
	case FormatStellarium:
		content = writeStellarium(seq, opts)
	case FormatVoyager:
		content = writeVoyager(seq, opts)
	case FormatNINA:
		content, err = json.MarshalIndent(ninaTargetSet(seq), "", "  ")
	case FormatJSON:
		content, err = json.MarshalIndent(seq, "", "  ")
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return Result{}, fmt.Errorf("exporting %s: %w", opts.Format, err)
	}
	return Result{Format: opts.Format, Content: content, Targets: len(seq.Targets)}, nil
}

func writeCSV(seq *sequence.Sequence, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Name", "RA", "Dec", "Position Angle"}
	if opts.IncludeExposures {
		header = append(header, "Exposure Time", "Filter", "Binning", "Gain", "Offset", "Count")
	}
	if opts.IncludeProgress {
		header = append(header, "Progress")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range seq.Targets {
		base := []string{
			t.TargetName,
			FormatRA(t.Coordinates, opts.Coordinates, opts.DecimalPlaces),
			FormatDec(t.Coordinates, opts.Coordinates, opts.DecimalPlaces),
			fixed1(t.PositionAngle),
		}

		if !opts.IncludeExposures || len(t.Exposures) == 0 {
			row := base
			if opts.IncludeExposures {
				row = append(row, make([]string, 6)...)
			}
			if opts.IncludeProgress {
				row = append(row, "")
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
			continue
		}

		for _, e := range t.Exposures {
			row := append(append([]string{}, base...),
				fixed1(e.ExposureTime),
				e.FilterName(),
				e.Binning.String(),
				fmt.Sprint(e.Gain),
				fmt.Sprint(e.Offset),
				fmt.Sprint(e.TotalCount),
			)
			if opts.IncludeProgress {
				row = append(row, fmt.Sprint(e.ProgressCount))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeTelescopius(seq *sequence.Sequence) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Pane", "Familiar Name", "Catalogue Entry", "RA", "Dec", "Position Angle"}); err != nil {
		return nil, err
	}
	for i, t := range seq.Targets {
		row := []string{
			fmt.Sprint(i + 1),
			t.TargetName,
			t.Name,
			FormatRA(t.Coordinates, CoordColon, 2),
			FormatDec(t.Coordinates, CoordColon, 2),
			fixed1(t.PositionAngle),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeStellarium(seq *sequence.Sequence, opts Options) []byte {
	var b strings.Builder
	b.WriteString("# Stellarium Skylist\n")
	fmt.Fprintf(&b, "# Exported from: %s\n", seq.Title)
	fmt.Fprintf(&b, "# Date: %s\n\n", opts.Now.UTC().Format("2006-01-02 15:04:05 UTC"))
	for _, t := range seq.Targets {
		fmt.Fprintf(&b, "%s %s %s\n",
			strings.ReplaceAll(t.TargetName, " ", "_"),
			shortest(t.Coordinates.RADecimal()),
			shortest(t.Coordinates.DecDecimal()))
	}
	return []byte(b.String())
}

func writeVoyager(seq *sequence.Sequence, opts Options) []byte {
	var b strings.Builder
	b.WriteString("; Voyager Target List\n")
	fmt.Fprintf(&b, "; Title: %s\n", seq.Title)
	fmt.Fprintf(&b, "; Exported: %s\n\n", opts.Now.UTC().Format("2006-01-02 15:04:05"))

	for _, t := range seq.Targets {
		fmt.Fprintf(&b, "[%s]\n", t.TargetName)
		fmt.Fprintf(&b, "RA=%s\n", FormatRA(t.Coordinates, CoordColon, 2))
		fmt.Fprintf(&b, "Dec=%s\n", FormatDec(t.Coordinates, CoordColon, 2))
		fmt.Fprintf(&b, "PA=%s\n", fixed1(t.PositionAngle))
		if opts.IncludeSettings {
			fmt.Fprintf(&b, "Slew=%t\nCenter=%t\nGuide=%t\n", t.SlewToTarget, t.CenterTarget, t.StartGuiding)
		}
		if opts.IncludeExposures {
			for i, e := range t.Exposures {
				n := i + 1
				fmt.Fprintf(&b, "Exposure%dTime=%s\n", n, fixed1(e.ExposureTime))
				fmt.Fprintf(&b, "Exposure%dCount=%d\n", n, e.TotalCount)
				if name := e.FilterName(); name != "" {
					fmt.Fprintf(&b, "Exposure%dFilter=%s\n", n, name)
				}
			}
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
