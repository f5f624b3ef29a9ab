package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
)

var exportNow = time.Date(2025, 1, 9, 20, 0, 0, 0, time.UTC)

func testSequence() *sequence.Sequence {
	return &sequence.Sequence{
		Title: "Stars & Dust",
		StartOptions: sequence.StartOptions{
			CoolCamera:      true,
			CoolTemperature: -10,
		},
		Targets: []sequence.Target{
			{
				ID:            "t1",
				Name:          "Orion",
				TargetName:    "M42, Orion",
				Status:        format.StatusRunning,
				Coordinates:   sequence.Coordinates{RAHours: 5, RAMinutes: 35, RASeconds: 17.3, DecDegrees: 5, DecMinutes: 23, DecSeconds: 28, NegativeDec: true},
				PositionAngle: 12.5,
				Mode:          sequence.ModeStandard,
				SlewToTarget:  true,
				CenterTarget:  true,
				StartGuiding:  true,
				AutoFocusOptions: sequence.AutoFocusOptions{
					AutoFocusOnStart:              true,
					AutoFocusAfterHFRChangeAmount: 15,
				},
				Exposures: []sequence.Exposure{{
					ID: "e1", Enabled: true, Status: format.StatusRunning, ExposureTime: 120,
					ImageType: sequence.ImageLight, Filter: &sequence.Filter{Name: "Ha", Position: 2},
					Binning: sequence.Binning{X: 1, Y: 1}, Gain: 100, Offset: 10,
					TotalCount: 20, ProgressCount: 5, DitherEvery: 1,
				}},
			},
			{ID: "t2", Name: "Mairan", TargetName: "M43", Status: format.StatusCreated},
		},
	}
}

func export(t *testing.T, opts Options) string {
	t.Helper()
	opts.Now = exportNow
	res, err := Export(testSequence(), opts)
	if err != nil {
		t.Fatalf("Export(%s) error = %v", opts.Format, err)
	}
	if res.Targets != 2 || res.Format != opts.Format {
		t.Errorf("Result = %s/%d targets", res.Format, res.Targets)
	}
	return string(res.Content)
}

func withFormat(f Format) Options {
	opts := DefaultOptions()
	opts.Format = f
	return opts
}

func readCSV(t *testing.T, content string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v\n%s", err, content)
	}
	return records
}

func TestExportCSV(t *testing.T) {
	records := readCSV(t, export(t, DefaultOptions()))
	if len(records) != 3 {
		t.Fatalf("got %d records, want header and 2 rows", len(records))
	}

	wantHeader := []string{"Name", "RA", "Dec", "Position Angle", "Exposure Time", "Filter", "Binning", "Gain", "Offset", "Count"}
	if strings.Join(records[0], "|") != strings.Join(wantHeader, "|") {
		t.Errorf("header = %v", records[0])
	}
	wantRow := []string{"M42, Orion", "05h 35m 17.30s", `-5° 23' 28.00"`, "12.5", "120.0", "Ha", "1x1", "100", "10", "20"}
	if strings.Join(records[1], "|") != strings.Join(wantRow, "|") {
		t.Errorf("row = %v, want %v", records[1], wantRow)
	}
	// Targets without exposures keep the exposure columns empty.
	if len(records[2]) != len(wantHeader) || records[2][0] != "M43" || records[2][4] != "" {
		t.Errorf("empty target row = %v", records[2])
	}
}

func TestExportCSV_Options(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeExposures = false
	opts.IncludeProgress = true
	opts.Coordinates = CoordColon

	records := readCSV(t, export(t, opts))
	if got := strings.Join(records[0], "|"); got != "Name|RA|Dec|Position Angle|Progress" {
		t.Errorf("header = %q", got)
	}
	if records[1][1] != "05:35:17.30" || records[1][2] != "-5:23:28.00" {
		t.Errorf("coordinates = %v", records[1][1:3])
	}

	opts.IncludeExposures = true
	records = readCSV(t, export(t, opts))
	if last := records[1][len(records[1])-1]; last != "5" {
		t.Errorf("progress = %q, want 5", last)
	}
}

func TestExportTelescopius(t *testing.T) {
	records := readCSV(t, export(t, Options{Format: FormatTelescopius}))
	if records[0][0] != "Pane" || len(records) != 3 {
		t.Fatalf("records = %v", records)
	}
	want := []string{"1", "M42, Orion", "Orion", "05:35:17.30", "-5:23:28.00", "12.5"}
	if strings.Join(records[1], "|") != strings.Join(want, "|") {
		t.Errorf("row = %v, want %v", records[1], want)
	}
}

func TestExportXML(t *testing.T) {
	out := export(t, withFormat(FormatXML))
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<Title>Stars &amp; Dust</Title>",
		"<Name>M42, Orion</Name>",
		"<RA>05h 35m 17.30s</RA>",
		"<SlewToTarget>true</SlewToTarget>",
		"<Filter>Ha</Filter>",
		"<Binning>1x1</Binning>",
		"<Count>20</Count>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("XML missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<Progress>") {
		t.Error("progress should be left out by default")
	}

	bare := Options{Format: FormatXML, Coordinates: CoordDecimal, DecimalPlaces: 2}
	out = export(t, bare)
	if strings.Contains(out, "<SlewToTarget>") || strings.Contains(out, "<Exposures>") {
		t.Errorf("settings and exposures should be left out:\n%s", out)
	}
	if !strings.Contains(out, "<RA>5.5881</RA>") {
		t.Errorf("decimal RA missing:\n%s", out)
	}
}

func TestExportAPT(t *testing.T) {
	out := export(t, Options{Format: FormatAPT})
	for _, want := range []string{`<AstroPhotographyTool version="3.0">`, "<ObjectList>", "<Name>M43</Name>", "<PA>12.5</PA>"} {
		if !strings.Contains(out, want) {
			t.Errorf("APT missing %q:\n%s", want, out)
		}
	}
}

func TestExportStellarium(t *testing.T) {
	out := export(t, Options{Format: FormatStellarium})
	for _, want := range []string{
		"# Stellarium Skylist\n",
		"# Exported from: Stars & Dust\n",
		"# Date: 2025-01-09 20:00:00 UTC\n",
		"M42,_Orion 5.58",
		"M43 0 0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("skylist missing %q:\n%s", want, out)
		}
	}
}

func TestExportVoyager(t *testing.T) {
	out := export(t, withFormat(FormatVoyager))
	want := "[M42, Orion]\nRA=05:35:17.30\nDec=-5:23:28.00\nPA=12.5\n" +
		"Slew=true\nCenter=true\nGuide=true\n" +
		"Exposure1Time=120.0\nExposure1Count=20\nExposure1Filter=Ha\n\n"
	if !strings.Contains(out, want) {
		t.Errorf("Voyager target block missing:\n%s", out)
	}
	if !strings.HasPrefix(out, "; Voyager Target List\n; Title: Stars & Dust\n; Exported: 2025-01-09 20:00:00\n") {
		t.Errorf("Voyager header = %q", out)
	}
}

func TestExportNINA(t *testing.T) {
	out := export(t, Options{Format: FormatNINA})

	type item struct {
		FilterType *struct {
			Name     string
			Position int
		}
		DitherAmount          int
		TotalExposureCount    int
		ProgressExposureCount int
	}
	var doc struct {
		Title        string
		StartOptions struct {
			CoolCameraTemperature float64
		}
		Targets []struct {
			TargetName  string
			Coordinates struct {
				RAHours     int
				NegativeDec bool
			}
			AutoFocusAfterHFRChangeAmount float64
			Items                         []item
		}
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("NINA output is not JSON: %v", err)
	}
	if doc.Title != "Stars & Dust" || doc.StartOptions.CoolCameraTemperature != -10 {
		t.Errorf("doc = %+v", doc)
	}
	if len(doc.Targets) != 2 || len(doc.Targets[1].Items) != 0 {
		t.Fatalf("targets = %+v", doc.Targets)
	}
	first := doc.Targets[0]
	if first.Coordinates.RAHours != 5 || !first.Coordinates.NegativeDec || first.AutoFocusAfterHFRChangeAmount != 15 {
		t.Errorf("target = %+v", first)
	}
	it := first.Items[0]
	if it.FilterType == nil || it.FilterType.Name != "Ha" || it.FilterType.Position != 2 {
		t.Errorf("FilterType = %+v", it.FilterType)
	}
	if it.DitherAmount != 1 || it.TotalExposureCount != 20 || it.ProgressExposureCount != 5 {
		t.Errorf("item = %+v", it)
	}
	if !strings.Contains(out, `"AutoFocusAfterHFRChange"`) {
		t.Error("NINA keys should spell HFR in capitals")
	}
}

func TestExportJSON(t *testing.T) {
	out := export(t, Options{Format: FormatJSON})
	seq, err := sequence.Decode(bytes.NewReader([]byte(out)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if seq.Title != "Stars & Dust" || len(seq.Targets) != 2 || seq.Targets[0].Exposures[0].ProgressCount != 5 {
		t.Errorf("round trip = %+v", seq)
	}
}

func TestFormatCoordinates(t *testing.T) {
	c := sequence.Coordinates{RAHours: 5, RAMinutes: 35, RASeconds: 17.3, DecDegrees: 5, DecMinutes: 23, DecSeconds: 28, NegativeDec: true}
	tests := []struct {
		format  CoordinateFormat
		ra, dec string
	}{
		{CoordSexagesimal, "05h 35m 17.30s", `-5° 23' 28.00"`},
		{CoordColon, "05:35:17.30", "-5:23:28.00"},
		{CoordDecimal, "5.5881", "-5.3911"},
		{CoordDegrees, "83.8221", "-5.3911"},
	}
	for _, tt := range tests {
		if got := FormatRA(c, tt.format, 2); got != tt.ra {
			t.Errorf("FormatRA(%s) = %q, want %q", tt.format, got, tt.ra)
		}
		if got := FormatDec(c, tt.format, 2); got != tt.dec {
			t.Errorf("FormatDec(%s) = %q, want %q", tt.format, got, tt.dec)
		}
	}
}

func TestParse(t *testing.T) {
	if f, err := ParseFormat(" NINA "); err != nil || f != FormatNINA {
		t.Errorf("ParseFormat(NINA) = %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(pdf) error = %v", err)
	}
	if c, err := ParseCoordinateFormat("Colon"); err != nil || c != CoordColon {
		t.Errorf("ParseCoordinateFormat(Colon) = %q, %v", c, err)
	}
	if _, err := ParseCoordinateFormat("hms"); err == nil {
		t.Error("expected error for unknown coordinate format")
	}
	if _, err := Export(testSequence(), Options{Format: "pdf"}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Export(pdf) error = %v", err)
	}
}
