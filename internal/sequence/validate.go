package sequence

import "fmt"

// ValidationResult collects blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether there are no errors.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks an exposure.
func (e Exposure) Validate() []string {
	var errs []string
	if e.ExposureTime <= 0 {
		errs = append(errs, "Exposure time must be positive")
	}
	if e.TotalCount < 0 {
		errs = append(errs, "Total count cannot be negative")
	}
	if e.ProgressCount < 0 {
		errs = append(errs, "Progress count cannot be negative")
	}
	if e.DitherEvery < 1 {
		errs = append(errs, "Dither every must be at least 1")
	}
	return errs
}

// Validate checks a target and its exposures.
func (t Target) Validate() []string {
	var errs []string
	if t.TargetName == "" {
		errs = append(errs, "Target name is required")
	}
	errs = append(errs, t.Coordinates.Validate()...)
	for _, e := range t.Exposures {
		errs = append(errs, e.Validate()...)
	}
	return errs
}

// Validate checks the whole sequence. Messages from targets are prefixed
// with the target name so they can be told apart.
func (s *Sequence) Validate() ValidationResult {
	var res ValidationResult
	if s.Title == "" {
		res.Errors = append(res.Errors, "Sequence title is required")
	}
	if len(s.Targets) == 0 {
		res.Errors = append(res.Errors, "At least one target is required")
	}

	for _, t := range s.Targets {
		name := t.TargetName
		if name == "" {
			name = t.ID
		}
		for _, msg := range t.Validate() {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", name, msg))
		}
		for i, e := range t.Exposures {
			if e.ProgressCount > e.TotalCount && e.TotalCount >= 0 {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s: exposure %d progress %d exceeds total %d", name, i+1, e.ProgressCount, e.TotalCount))
			}
		}
	}

	if s.SelectedTargetID != "" && s.TargetIndex(s.SelectedTargetID) < 0 {
		res.Warnings = append(res.Warnings, "Selected target does not exist")
	}
	if s.ActiveTargetID != "" && s.TargetIndex(s.ActiveTargetID) < 0 {
		res.Warnings = append(res.Warnings, "Active target does not exist")
	}
	return res
}
