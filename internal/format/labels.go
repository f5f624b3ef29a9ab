package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingLabel is returned by New when a required label is empty.
var ErrMissingLabel = errors.New("missing label")

// Labels holds every translated string the formatter needs.
// All fields are required.
type Labels struct {
	NoSelection string
	Created     string
	Running     string
	Finished    string
	Failed      string
	Skipped     string
	Disabled    string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		NoSelection: "No selection",
		Created:     "Created",
		Running:     "Running",
		Finished:    "Finished",
		Failed:      "Failed",
		Skipped:     "Skipped",
		Disabled:    "Disabled",
	}
}

// Validate reports every empty label.
func (l Labels) Validate() error {
	fields := []struct {
		key   string
		value string
	}{
		{"no_selection", l.NoSelection},
		{"created", l.Created},
		{"running", l.Running},
		{"finished", l.Finished},
		{"failed", l.Failed},
		{"skipped", l.Skipped},
		{"disabled", l.Disabled},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingLabel, strings.Join(missing, ", "))
	}
	return nil
}

// Formatter binds the package functions to a validated set of labels.
type Formatter struct {
	labels Labels
}

// New returns a Formatter, or an error naming the empty labels.
func New(labels Labels) (*Formatter, error) {
	if err := labels.Validate(); err != nil {
		return nil, err
	}
	return &Formatter{labels: labels}, nil
}

// Identifier shortens id, or returns the no-selection label when id is empty.
func (f *Formatter) Identifier(id string) string {
	return FormatIdentifier(id, f.labels.NoSelection)
}

// Duration formats d. Negative values are a caller bug and render as the
// placeholder with the error returned alongside.
func (f *Formatter) Duration(d Duration) (string, error) {
	s, err := FormatDuration(d)
	if err != nil {
		return Placeholder, err
	}
	return s, nil
}

// Progress formats a completed/total pair.
func (f *Formatter) Progress(completed, total int) (string, error) {
	return FormatProgress(completed, total)
}

// StatusLabel returns the translated name of status. Unknown statuses are
// shown verbatim.
func (f *Formatter) StatusLabel(status EntityStatus) string {
	switch status {
	case StatusCreated:
		return f.labels.Created
	case StatusRunning:
		return f.labels.Running
	case StatusFinished:
		return f.labels.Finished
	case StatusFailed:
		return f.labels.Failed
	case StatusSkipped:
		return f.labels.Skipped
	case StatusDisabled:
		return f.labels.Disabled
	default:
		return string(status)
	}
}
