package format

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	if _, err := New(DefaultLabels()); err != nil {
		t.Fatalf("New(DefaultLabels()) error = %v", err)
	}

	labels := DefaultLabels()
	labels.NoSelection = ""
	labels.Failed = "  "
	_, err := New(labels)
	if !errors.Is(err, ErrMissingLabel) {
		t.Fatalf("New() error = %v, want ErrMissingLabel", err)
	}
	if !strings.Contains(err.Error(), "no_selection") || !strings.Contains(err.Error(), "failed") {
		t.Errorf("error %q should name both missing keys", err)
	}
}

func TestFormatterIdentifier(t *testing.T) {
	labels := DefaultLabels()
	labels.NoSelection = "Sin selección"
	f, err := New(labels)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := f.Identifier(""); got != "Sin selección" {
		t.Errorf("Identifier(\"\") = %q", got)
	}
	if got := f.Identifier("item-12345678-abcd"); got != "item-123..." {
		t.Errorf("Identifier() = %q", got)
	}
}

func TestFormatterDuration(t *testing.T) {
	f, _ := New(DefaultLabels())

	got, err := f.Duration(Seconds(3600))
	if err != nil || got != "1h 0m 0s" {
		t.Errorf("Duration(3600) = %q, %v", got, err)
	}
	got, err = f.Duration(Seconds(-5))
	if err == nil {
		t.Fatal("Duration(-5) expected error")
	}
	if got != Placeholder {
		t.Errorf("Duration(-5) = %q, want placeholder", got)
	}
}

func TestFormatterStatusLabel(t *testing.T) {
	f, _ := New(DefaultLabels())

	if got := f.StatusLabel(StatusRunning); got != "Running" {
		t.Errorf("StatusLabel(RUNNING) = %q", got)
	}
	if got := f.StatusLabel(EntityStatus("PAUSED")); got != "PAUSED" {
		t.Errorf("StatusLabel(PAUSED) = %q", got)
	}
}
