package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/nightsky/seqview/internal/config"
	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
)

const orionJSON = `{
  "id": "seq-0001",
  "title": "Orion Nebula",
  "isRunning": true,
  "estimatedDownloadTime": 5,
  "selectedTargetId": "item-12345678-abcd",
  "targets": [
    {
      "id": "item-12345678-abcd",
      "targetName": "M42",
      "status": "running",
      "coordinates": {"raHours": 5, "raMinutes": 35, "raSeconds": 17.3, "decDegrees": 5, "decMinutes": 23, "decSeconds": 28, "negativeDec": true},
      "exposures": [
        {"id": "e1", "enabled": true, "status": "RUNNING", "exposureTime": 120, "imageType": "LIGHT",
         "filter": {"name": "Ha"}, "binning": {"x": 1, "y": 1}, "totalCount": 20, "progressCount": 5, "ditherEvery": 1}
      ]
    },
    {
      "id": "tgt-2",
      "targetName": "M43",
      "status": "CREATED",
      "exposures": [
        {"id": "e2", "enabled": true, "status": "CREATED", "exposureTime": 180, "imageType": "LIGHT",
         "binning": {"x": 1, "y": 1}, "totalCount": 10, "progressCount": 0, "ditherEvery": 1}
      ]
    }
  ]
}`

const brokenJSON = `{
  "id": "seq-0002",
  "title": "",
  "targets": [
    {"id": "t1", "targetName": "", "exposures": [{"id": "e1", "enabled": true, "exposureTime": 0, "totalCount": 5, "progressCount": 9, "ditherEvery": 1}]}
  ]
}`

type testApp struct {
	*App
	dir    string
	copied []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	plainOutput(t)

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "seqview.db")
	cfg.Log.Level = "error"

	ta := &testApp{App: NewApp(cfg), dir: dir}
	ta.copy = func(s string) error {
		ta.copied = append(ta.copied, s)
		return nil
	}
	t.Cleanup(func() { _ = ta.Close() })
	return ta
}

// plainOutput turns color off for the test and restores the previous state.
func plainOutput(t *testing.T) {
	t.Helper()
	prevNoColor := color.NoColor
	prevProfile := lipgloss.ColorProfile()
	DisableColor()
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		lipgloss.SetColorProfile(prevProfile)
	})
}

func (ta *testApp) run(args ...string) (string, error) {
	var buf bytes.Buffer
	ta.root.SetOut(&buf)
	ta.root.SetErr(&buf)
	ta.root.SetArgs(args)
	err := ta.root.Execute()
	return buf.String(), err
}

func (ta *testApp) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(ta.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestVersion(t *testing.T) {
	app := newTestApp(t)
	out, err := app.run("version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "seqview dev") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestStatus(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)

	out, err := app.run("status", path)
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"=== Orion Nebula ===",
		"Status:    Running",
		"Target:    item-123... (M42)",
		"Frames:    5 / 30",
		"Remaining: 1h 2m 5s", // 15*125 + 10*185
		"ETA:",
		"M43",
		"Exposures",
		"Ha",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatus_ExplicitTarget(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)

	out, err := app.run("status", path, "--target", "tgt-2")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Target:    tgt-2... (M43)") {
		t.Errorf("expected tgt-2 selected:\n%s", out)
	}
}

func TestStatus_UnknownTarget(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)

	if _, err := app.run("status", path, "--target", "nope"); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestStatus_MissingFile(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.run("status", filepath.Join(app.dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStatus_DownloadOverride(t *testing.T) {
	app := newTestApp(t)
	app.config.Sequence.DownloadTime = 60
	path := app.writeFile(t, "orion.json", orionJSON)

	out, err := app.run("status", path)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	// 15*180 + 10*240 = 5100s
	if !strings.Contains(out, "Remaining: 1h 25m 0s") {
		t.Errorf("download override not applied:\n%s", out)
	}
}

func TestStatus_RecordsRecent(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)

	if _, err := app.run("status", path); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	out, err := app.run("recent")
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("recent should list %s:\n%s", path, out)
	}

	out, err = app.run("recent", "--clear")
	if err != nil {
		t.Fatalf("recent --clear failed: %v", err)
	}
	if !strings.Contains(out, "cleared") {
		t.Errorf("unexpected output %q", out)
	}

	files, err := app.recent.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty list after clear, got %v", files)
	}
}

func TestRecent_StoreError(t *testing.T) {
	app := newTestApp(t)
	app.openStore = func(*config.Config) (RecentStore, error) {
		return nil, errors.New("disk full")
	}

	if _, err := app.run("recent"); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected store error, got %v", err)
	}

	// status keeps working without the store
	path := app.writeFile(t, "orion.json", orionJSON)
	if _, err := app.run("status", path); err != nil {
		t.Errorf("status should not depend on the store: %v", err)
	}
}

func TestValidate(t *testing.T) {
	app := newTestApp(t)

	good := app.writeFile(t, "orion.json", orionJSON)
	out, err := app.run("validate", good)
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("unexpected output %q", out)
	}

	bad := app.writeFile(t, "broken.json", brokenJSON)
	out, err = app.run("validate", bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"Sequence title is required",
		"t1: Target name is required",
		"t1: Exposure time must be positive",
		"warning: t1: exposure 1 progress 9 exceeds total 5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestThemes(t *testing.T) {
	app := newTestApp(t)

	out, err := app.run("themes", "--theme", "latte")
	if err != nil {
		t.Fatalf("themes failed: %v", err)
	}
	if !strings.Contains(out, "* latte") {
		t.Errorf("configured theme should be marked:\n%s", out)
	}
	if !strings.Contains(out, "  mocha") {
		t.Errorf("other themes should be listed:\n%s", out)
	}
}

func TestThemeFlag_Unknown(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.run("themes", "--theme", "solarized"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestCopyID(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)

	out, err := app.run("copy-id", path)
	if err != nil {
		t.Fatalf("copy-id failed: %v", err)
	}
	if len(app.copied) != 1 || app.copied[0] != "item-12345678-abcd" {
		t.Errorf("copied = %v, want the full selected id", app.copied)
	}
	if !strings.Contains(out, "Copied item-12345678-abcd") {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := app.run("copy-id", path, "--target", "tgt-2"); err != nil {
		t.Fatalf("copy-id --target failed: %v", err)
	}
	if app.copied[1] != "tgt-2" {
		t.Errorf("copied = %v", app.copied)
	}
}

func TestCopyID_ClipboardError(t *testing.T) {
	app := newTestApp(t)
	app.copy = func(string) error { return errors.New("no clipboard utility") }
	path := app.writeFile(t, "orion.json", orionJSON)

	if _, err := app.run("copy-id", path); err == nil {
		t.Fatal("expected clipboard error")
	}
}

func TestConfigInit(t *testing.T) {
	app := newTestApp(t)
	configPath := filepath.Join(app.dir, "conf", "config.toml")

	out, err := app.run("config", "--init", "--config", configPath)
	if err != nil {
		t.Fatalf("config --init failed: %v", err)
	}
	if !strings.Contains(out, "Created "+configPath) {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(out, "theme           = mocha") {
		t.Errorf("effective config not printed:\n%s", out)
	}

	out, err = app.run("config", "--init", "--config", configPath)
	if err != nil {
		t.Fatalf("second config --init failed: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("existing file should be left alone:\n%s", out)
	}
}

func TestWatch_MissingFile(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.run("watch", filepath.Join(app.dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPrintStatus_NarrowWidth(t *testing.T) {
	plainOutput(t)
	seq, err := sequence.Decode(strings.NewReader(orionJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	f, err := format.New(format.DefaultLabels())
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}

	var buf bytes.Buffer
	opts := statusOptions{Theme: "mocha", Width: 60, Now: time.Now()}
	if err := printStatus(&buf, seq, "item-12345678-abcd", f, opts); err != nil {
		t.Fatalf("printStatus: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Ha", "5 / 20", "LIGHT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line %d is %d columns wide: %q", i, w, line)
		}
	}
}

func TestStatus_Location(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)

	out, err := app.run("status", path)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if strings.Contains(out, "Moon:") || strings.Contains(out, "alt ") {
		t.Errorf("no location configured, expected no sky figures:\n%s", out)
	}

	lat, lon := 40.4, -3.7
	app.config.Location = config.LocationConfig{Latitude: &lat, Longitude: &lon}
	out, err = app.run("status", path)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Moon:") {
		t.Errorf("output missing moon line:\n%s", out)
	}
	if n := strings.Count(out, "alt "); n != 2 {
		t.Errorf("expected an altitude per target, got %d:\n%s", n, out)
	}
}

func TestConfigLoadedAfterFlags(t *testing.T) {
	plainOutput(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	broken := filepath.Join(home, ".config", "seqview", "config.toml")
	if err := os.MkdirAll(filepath.Dir(broken), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("[ui\ntheme = "), 0o644); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(home, "good.toml")
	if err := os.WriteFile(good, []byte("[ui]\ntheme = \"latte\"\n[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name:    "broken default fails",
			args:    []string{"version"},
			wantErr: "loading config",
		},
		{
			name: "config flag skips the default file",
			args: []string{"--config", good, "config"},
			want: []string{"theme           = latte"},
		},
		{
			name: "config command shows defaults",
			args: []string{"config"},
			want: []string{"warning:", "Showing defaults", "theme           = mocha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := &testApp{App: NewApp(nil), dir: home}
			t.Cleanup(func() { _ = ta.Close() })

			out, err := ta.run(tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v\n%s", err, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestExport(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "csv by default",
			args: nil,
			want: []string{"Name,RA,Dec", "M42", "05h 35m 17.30s"},
		},
		{
			name: "nina",
			args: []string{"--format", "NINA"},
			want: []string{`"TargetName": "M42"`, `"TotalExposureCount": 20`},
		},
		{
			name: "decimal coordinates",
			args: []string{"--coords", "decimal", "--decimals", "1"},
			want: []string{"M42,5.588,-5.391,", "M43"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			path := app.writeFile(t, "orion.json", orionJSON)

			out, err := app.run(append([]string{"export", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("export failed: %v\n%s", err, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestExport_Output(t *testing.T) {
	app := newTestApp(t)
	path := app.writeFile(t, "orion.json", orionJSON)
	dest := filepath.Join(app.dir, "orion.xml")

	out, err := app.run("export", path, "--format", "xml", "-o", dest)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 2 targets to "+dest) {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.Contains(string(data), "<Name>M42</Name>") {
		t.Errorf("unexpected xml:\n%s", data)
	}
}

func TestExport_BadFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"format", []string{"--format", "fits"}, "unknown export format"},
		{"coords", []string{"--coords", "galactic"}, "coordinate format"},
		{"decimals", []string{"--decimals", "9"}, "--decimals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			path := app.writeFile(t, "orion.json", orionJSON)

			_, err := app.run(append([]string{"export", path}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
