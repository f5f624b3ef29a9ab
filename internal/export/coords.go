package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nightsky/seqview/internal/sequence"
)

// CoordinateFormat selects how RA and Dec are written.
type CoordinateFormat string

const (
	CoordSexagesimal CoordinateFormat = "sexagesimal" // 05h 35m 17.30s
	CoordColon       CoordinateFormat = "colon"       // 05:35:17.30
	CoordDecimal     CoordinateFormat = "decimal"     // RA in hours, Dec in degrees
	CoordDegrees     CoordinateFormat = "degrees"     // both in degrees
)

// ParseCoordinateFormat accepts a coordinate format name in any case.
func ParseCoordinateFormat(s string) (CoordinateFormat, error) {
	c := CoordinateFormat(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CoordSexagesimal, CoordColon, CoordDecimal, CoordDegrees:
		return c, nil
	}
	return "", fmt.Errorf("unknown coordinate format %q", s)
}

// FormatRA writes right ascension with decimals digits on the seconds, or
// decimals+2 digits for the decimal forms.
func FormatRA(c sequence.Coordinates, f CoordinateFormat, decimals int) string {
	switch f {
	case CoordColon:
		return fmt.Sprintf("%02d:%02d:%0*.*f", c.RAHours, c.RAMinutes, 3+decimals, decimals, c.RASeconds)
	case CoordDecimal:
		return strconv.FormatFloat(c.RADecimal(), 'f', decimals+2, 64)
	case CoordDegrees:
		return strconv.FormatFloat(c.RADecimal()*15, 'f', decimals+2, 64)
	default:
		return fmt.Sprintf("%02dh %02dm %0*.*fs", c.RAHours, c.RAMinutes, 3+decimals, decimals, c.RASeconds)
	}
}

// FormatDec writes declination with an explicit sign.
func FormatDec(c sequence.Coordinates, f CoordinateFormat, decimals int) string {
	sign := "+"
	if c.NegativeDec {
		sign = "-"
	}
	switch f {
	case CoordColon:
		return fmt.Sprintf("%s%d:%02d:%0*.*f", sign, c.DecDegrees, c.DecMinutes, 3+decimals, decimals, c.DecSeconds)
	case CoordDecimal, CoordDegrees:
		return strconv.FormatFloat(c.DecDecimal(), 'f', decimals+2, 64)
	default:
		return fmt.Sprintf("%s%d° %02d' %0*.*f\"", sign, c.DecDegrees, c.DecMinutes, 3+decimals, decimals, c.DecSeconds)
	}
}

func fixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func shortest(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
