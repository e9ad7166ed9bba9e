// Package astro implements the time and sky-position math needed to decide
// whether a target is observable: Julian Date, sidereal time, hour angle,
// altitude and a low-precision solar ephemeris.
package astro

import (
	"math"
	"time"

	"github.com/rbrederode/odt/core/coords"
)

// j2000 is the Julian Date of the J2000.0 epoch.
const j2000 = 2451545.0

// JulianDate converts an instant to Julian Date via the Unix epoch offset.
func JulianDate(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000.0 + 2440587.5
}

// GMST returns Greenwich Mean Sidereal Time in degrees, normalized to [0,360).
func GMST(t time.Time) float64 {
	jd := JulianDate(t)
	return norm360(280.46061837 + 360.98564736629*(jd-j2000))
}

// LocalSiderealTime returns the local sidereal time in degrees for the given
// instant and site longitude (east positive), normalized to [0,360).
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return norm360(GMST(t) + lonDeg)
}

// HourAngle returns LST minus RA wrapped to [-180,180).
func HourAngle(lstDeg, raDeg float64) float64 {
	return coords.Wrap180(lstDeg - raDeg)
}

func norm360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
