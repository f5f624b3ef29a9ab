// Package astro computes target altitude and moon phase for an observer.
// The formulas are low precision (about a degree), which is enough to tell
// whether a target is up.
package astro

import (
	"math"
	"time"
)

const (
	j2000        = 2451545.0
	unixEpochJD  = 2440587.5
	synodicMonth = 29.530588853
	newMoonJD    = 2451550.1 // 2000-01-06
)

// Observer is a site on Earth in degrees, longitude positive east.
type Observer struct {
	Latitude  float64
	Longitude float64
}

// Position is a horizontal position in degrees. Azimuth is measured from
// north through east.
type Position struct {
	Altitude float64
	Azimuth  float64
}

// JulianDay converts t to a Julian day number.
func JulianDay(t time.Time) float64 {
	return float64(t.Unix())/86400 + float64(t.Nanosecond())/86400e9 + unixEpochJD
}

// gmst returns Greenwich mean sidereal time in degrees.
func gmst(jd float64) float64 {
	d := jd - j2000
	c := d / 36525
	return mod(280.46061837+360.98564736629*d+0.000387933*c*c-c*c*c/38710000, 360)
}

// AltAz returns the horizontal position of raHours/decDeg at t.
func (o Observer) AltAz(raHours, decDeg float64, t time.Time) Position {
	lst := mod(gmst(JulianDay(t))+o.Longitude, 360)
	ha := radians(lst - raHours*15)
	dec := radians(decDeg)
	lat := radians(o.Latitude)

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
	sinAlt = clamp(sinAlt, -1, 1)
	alt := math.Asin(sinAlt)

	den := math.Max(math.Cos(lat)*math.Cos(alt), 1e-4)
	az := degrees(math.Acos(clamp((math.Sin(dec)-math.Sin(lat)*sinAlt)/den, -1, 1)))
	if math.Sin(ha) > 0 {
		az = 360 - az
	}
	return Position{Altitude: degrees(alt), Azimuth: az}
}

// AirMass returns the Kasten-Young air mass for an altitude in degrees.
// It reports false for targets at or below the horizon.
func AirMass(altitude float64) (float64, bool) {
	if altitude <= 0 {
		return 0, false
	}
	z := 90 - altitude
	return 1 / (math.Cos(radians(z)) + 0.50572*math.Pow(96.07995-z, -1.6364)), true
}

// MoonPhase describes the moon at an instant.
type MoonPhase struct {
	Phase        float64 // 0 new, 0.5 full
	Illumination float64 // percent
	Name         string
}

var phaseNames = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// Moon returns the moon phase at t from the mean synodic month.
func Moon(t time.Time) MoonPhase {
	phase := mod(JulianDay(t)-newMoonJD, synodicMonth) / synodicMonth
	return MoonPhase{
		Phase:        phase,
		Illumination: (1 - math.Cos(phase*2*math.Pi)) / 2 * 100,
		Name:         phaseNames[int(math.Round(phase*8))%8],
	}
}

func mod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
