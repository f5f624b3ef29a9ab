package format

import (
	"encoding/json"
	"strings"
)

// EntityStatus is the lifecycle state of a sequence item.
type EntityStatus string

// Known statuses. Files may carry other values; they are kept as-is.
const (
	StatusCreated  EntityStatus = "CREATED"
	StatusRunning  EntityStatus = "RUNNING"
	StatusFinished EntityStatus = "FINISHED"
	StatusFailed   EntityStatus = "FAILED"
	StatusSkipped  EntityStatus = "SKIPPED"
	StatusDisabled EntityStatus = "DISABLED"
)

// Statuses returns the known statuses in lifecycle order.
func Statuses() []EntityStatus {
	return []EntityStatus{
		StatusCreated,
		StatusRunning,
		StatusFinished,
		StatusFailed,
		StatusSkipped,
		StatusDisabled,
	}
}

// IsKnown reports whether s is one of the known statuses.
func (s EntityStatus) IsKnown() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON normalises case so "running" and "RUNNING" decode alike.
// An empty string decodes as StatusCreated. Absent keys never reach this
// method; decoders that need a status fill them with OrCreated.
func (s *EntityStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		raw = string(StatusCreated)
	}
	*s = EntityStatus(raw)
	return nil
}

// OrCreated returns s, or StatusCreated when s is empty.
func (s EntityStatus) OrCreated() EntityStatus {
	if s == "" {
		return StatusCreated
	}
	return s
}
