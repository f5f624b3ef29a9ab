package sequence

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Decode reads a sequence from JSON. Missing download time falls back to
// DefaultDownloadTime and missing statuses to CREATED.
func Decode(r io.Reader) (*Sequence, error) {
	var s Sequence
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding sequence: %w", err)
	}
	if s.EstimatedDownloadTime <= 0 {
		s.EstimatedDownloadTime = DefaultDownloadTime
	}
	for i := range s.Targets {
		t := &s.Targets[i]
		t.Status = t.Status.OrCreated()
		for j := range t.Exposures {
			t.Exposures[j].Status = t.Exposures[j].Status.OrCreated()
		}
	}
	return &s, nil
}

// Load reads a sequence file.
func Load(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sequence file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Save writes s as indented JSON, creating the parent directory.
func Save(path string, s *Sequence) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating sequence directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sequence: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sequence file: %w", err)
	}
	return nil
}
