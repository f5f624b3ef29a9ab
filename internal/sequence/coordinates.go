package sequence

import "fmt"

// Coordinates are J2000 equatorial coordinates in sexagesimal parts.
type Coordinates struct {
	RAHours     int     `json:"raHours"`
	RAMinutes   int     `json:"raMinutes"`
	RASeconds   float64 `json:"raSeconds"`
	DecDegrees  int     `json:"decDegrees"`
	DecMinutes  int     `json:"decMinutes"`
	DecSeconds  float64 `json:"decSeconds"`
	NegativeDec bool    `json:"negativeDec"`
}

// RADecimal returns right ascension in decimal hours.
func (c Coordinates) RADecimal() float64 {
	return float64(c.RAHours) + float64(c.RAMinutes)/60 + c.RASeconds/3600
}

// DecDecimal returns declination in signed decimal degrees.
func (c Coordinates) DecDecimal() float64 {
	v := float64(abs(c.DecDegrees)) + float64(c.DecMinutes)/60 + c.DecSeconds/3600
	if c.NegativeDec {
		return -v
	}
	return v
}

// String renders "05h35m17.3s -05°23'28.0\"".
func (c Coordinates) String() string {
	sign := "+"
	if c.NegativeDec {
		sign = "-"
	}
	return fmt.Sprintf("%02dh%02dm%04.1fs %s%02d°%02d'%04.1f\"",
		c.RAHours, c.RAMinutes, c.RASeconds,
		sign, abs(c.DecDegrees), c.DecMinutes, c.DecSeconds)
}

// Validate returns one message per out-of-range component.
func (c Coordinates) Validate() []string {
	var errs []string
	if c.RAHours < 0 || c.RAHours >= 24 {
		errs = append(errs, "RA hours must be between 0 and 23")
	}
	if c.RAMinutes < 0 || c.RAMinutes >= 60 {
		errs = append(errs, "RA minutes must be between 0 and 59")
	}
	if c.RASeconds < 0 || c.RASeconds >= 60 {
		errs = append(errs, "RA seconds must be between 0 and 59.99")
	}
	if c.DecDegrees < 0 || c.DecDegrees > 90 {
		errs = append(errs, "Dec degrees must be between 0 and 90")
	}
	if c.DecMinutes < 0 || c.DecMinutes >= 60 {
		errs = append(errs, "Dec minutes must be between 0 and 59")
	}
	if c.DecSeconds < 0 || c.DecSeconds >= 60 {
		errs = append(errs, "Dec seconds must be between 0 and 59.99")
	}
	return errs
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
