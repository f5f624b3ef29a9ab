package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nightsky/seqview/internal/config"
	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/store"
	"github.com/nightsky/seqview/internal/tui/view"
)

// openStore creates a fresh recent files store for each test with automatic cleanup.
func openStore(t *testing.T, maxRecent int) *store.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, maxRecent)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// writeSequence saves a two-target sequence and returns its path.
func writeSequence(t *testing.T, dir string) string {
	t.Helper()

	seq := sequence.New("Winter Nebulae")
	seq.EstimatedDownloadTime = 5

	m42 := &seq.Targets[0]
	m42.TargetName = "M42"
	m42.Status = format.StatusRunning
	m42.Exposures[0].ExposureTime = 120
	m42.Exposures[0].TotalCount = 20
	m42.Exposures[0].ProgressCount = 5

	horsehead := sequence.NewTarget("Horsehead")
	horsehead.TargetName = "B33"
	horsehead.Exposures[0].ExposureTime = 300
	horsehead.Exposures[0].TotalCount = 12
	seq.Targets = append(seq.Targets, horsehead)
	seq.IsRunning = true

	path := filepath.Join(dir, "winter.json")
	if err := sequence.Save(path, seq); err != nil {
		t.Fatalf("failed to save sequence: %v", err)
	}
	return path
}

func TestSequenceToStatusBar(t *testing.T) {
	dir := t.TempDir()
	path := writeSequence(t, dir)

	cfg := config.Default()
	cfg.Labels.NoSelection = "Nothing selected"
	f, err := cfg.Formatter()
	if err != nil {
		t.Fatalf("Formatter() error = %v", err)
	}

	seq, err := sequence.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.ApplyDownloadTime(seq)

	start := time.Date(2025, 1, 9, 20, 0, 0, 0, time.UTC)
	eta := seq.CalculateETAs(start)

	// 15*125 + 12*305 = 1875 + 3660 = 5535s
	if eta.Duration != 5535 {
		t.Errorf("ETA duration = %v, want 5535", eta.Duration)
	}
	first, ok1 := seq.Targets[0].ETA()
	second, ok2 := seq.Targets[1].ETA()
	if !ok1 || !ok2 || !second.Start.Equal(first.End) {
		t.Error("targets should be scheduled back to back")
	}

	target, err := seq.ResolveTarget("")
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}

	bar, err := view.BuildStatusBar(seq, target.ID, f)
	if err != nil {
		t.Fatalf("BuildStatusBar() error = %v", err)
	}
	if bar.TargetName != "M42" {
		t.Errorf("TargetName = %q, want M42", bar.TargetName)
	}
	if !strings.HasSuffix(bar.Selection, "...") || len([]rune(bar.Selection)) != 11 {
		t.Errorf("Selection = %q, want 8 characters plus ellipsis", bar.Selection)
	}
	if bar.Remaining != "1h 32m 15s" {
		t.Errorf("Remaining = %q, want 1h 32m 15s", bar.Remaining)
	}
	if bar.Frames != "5 / 32" {
		t.Errorf("Frames = %q, want 5 / 32", bar.Frames)
	}

	empty, err := view.BuildStatusBar(seq, "", f)
	if err != nil {
		t.Fatalf("BuildStatusBar() error = %v", err)
	}
	if empty.Selection != "Nothing selected" {
		t.Errorf("Selection = %q, want configured label", empty.Selection)
	}
}

func TestRecentFilesAcrossSessions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "seqview.db")

	first, err := store.New(dbPath, 2)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		if err := first.Touch(ctx, filepath.Join(dir, name)); err != nil {
			t.Fatalf("Touch() error = %v", err)
		}
		// Distinct timestamps between touches
		time.Sleep(2 * time.Millisecond)
	}
	_ = first.Close()

	second := openExisting(t, dbPath, 2)
	files, err := second.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if filepath.Base(files[0].Path) != "c.json" || filepath.Base(files[1].Path) != "b.json" {
		t.Errorf("unexpected order: %v", files)
	}
}

func TestRecentTouchIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 10)

	for i := 0; i < 3; i++ {
		if err := s.Touch(ctx, "/nights/orion.json"); err != nil {
			t.Fatalf("Touch() error = %v", err)
		}
	}

	files, err := s.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("got %d entries, want 1", len(files))
	}
}

func openExisting(t *testing.T, path string, maxRecent int) *store.SQLite {
	t.Helper()
	s, err := store.New(path, maxRecent)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
