// Package format turns sequence values into display strings and style tokens.
//
// Every function here is pure: the same inputs always produce the same output
// and nothing is shared between calls, so callers may use them from any
// goroutine.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Placeholder is shown for a duration that has not been computed.
const Placeholder = "--"

// identifierPrefix is the number of runes kept when shortening an identifier.
const identifierPrefix = 8

var (
	// ErrNegativeDuration is returned when a duration below zero is formatted.
	ErrNegativeDuration = errors.New("negative duration")
	// ErrNegativeCount is returned when a progress count below zero is formatted.
	ErrNegativeCount = errors.New("negative count")
)

// Duration is a whole number of seconds, or unknown.
type Duration struct {
	seconds int64
	known   bool
}

// Unknown is the duration of something that has not been computed.
var Unknown = Duration{}

// Seconds returns a known duration of n seconds.
func Seconds(n int64) Duration {
	return Duration{seconds: n, known: true}
}

// FormatDuration renders d as "Xh Ym Zs", dropping the hour part below one
// hour. Unknown renders as Placeholder.
func FormatDuration(d Duration) (string, error) {
	if !d.known {
		return Placeholder, nil
	}
	if d.seconds < 0 {
		return "", fmt.Errorf("formatting %ds: %w", d.seconds, ErrNegativeDuration)
	}

	h := d.seconds / 3600
	m := (d.seconds % 3600) / 60
	s := d.seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s), nil
	}
	return fmt.Sprintf("%dm %ds", m, s), nil
}

// FormatIdentifier shortens id to its first eight characters followed by an
// ellipsis. The ellipsis is appended even when id is shorter than that.
// An empty id means nothing is selected and yields noSelection.
func FormatIdentifier(id, noSelection string) string {
	if id == "" {
		return noSelection
	}
	if utf8.RuneCountInString(id) <= identifierPrefix {
		return id + "..."
	}
	return string([]rune(id)[:identifierPrefix]) + "..."
}

// FormatProgress renders "completed / total". It does not check that
// completed is within total.
func FormatProgress(completed, total int) (string, error) {
	if completed < 0 || total < 0 {
		return "", fmt.Errorf("formatting progress %d/%d: %w", completed, total, ErrNegativeCount)
	}
	return fmt.Sprintf("%d / %d", completed, total), nil
}

// StyleToken names a visual rule owned by the view layer.
type StyleToken string

// Style tokens produced by this package.
const (
	TokenStatusCreated  StyleToken = "status-created"
	TokenStatusRunning  StyleToken = "status-running"
	TokenStatusFinished StyleToken = "status-finished"
	TokenStatusFailed   StyleToken = "status-failed"
	TokenStatusSkipped  StyleToken = "status-skipped"
	TokenStatusDisabled StyleToken = "status-disabled"
	TokenStatusNeutral  StyleToken = "status-neutral"

	TokenSelected StyleToken = "row-selected"
	TokenDisabled StyleToken = "row-disabled"
)

// AllTokens lists every token in a stable order.
func AllTokens() []StyleToken {
	return []StyleToken{
		TokenStatusCreated,
		TokenStatusRunning,
		TokenStatusFinished,
		TokenStatusFailed,
		TokenStatusSkipped,
		TokenStatusDisabled,
		TokenStatusNeutral,
		TokenSelected,
		TokenDisabled,
	}
}

// TokenSet is an ordered set of style tokens.
type TokenSet []StyleToken

// Has reports whether tok is in the set.
func (s TokenSet) Has(tok StyleToken) bool {
	for _, t := range s {
		if t == tok {
			return true
		}
	}
	return false
}

// String joins the tokens with spaces, like a class attribute.
func (s TokenSet) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

// StatusStyleClass maps a status to its style token. Unrecognised statuses
// get TokenStatusNeutral.
func StatusStyleClass(status EntityStatus) StyleToken {
	switch status {
	case StatusCreated:
		return TokenStatusCreated
	case StatusRunning:
		return TokenStatusRunning
	case StatusFinished:
		return TokenStatusFinished
	case StatusFailed:
		return TokenStatusFailed
	case StatusSkipped:
		return TokenStatusSkipped
	case StatusDisabled:
		return TokenStatusDisabled
	default:
		return TokenStatusNeutral
	}
}

// RowStateClasses returns TokenSelected when selected and TokenDisabled when
// not enabled. Both can be present.
func RowStateClasses(selected, enabled bool) TokenSet {
	var set TokenSet
	if selected {
		set = append(set, TokenSelected)
	}
	if !enabled {
		set = append(set, TokenDisabled)
	}
	return set
}
