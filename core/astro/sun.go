package astro

import (
	"math"
	"time"
)

// SunPosition returns the apparent solar RA and Dec in degrees at the given
// instant, using a low-precision ephemeris: mean anomaly, a three-term
// equation of centre, and a linearly decreasing obliquity. Accuracy is at the
// arc-minute level, sufficient for sunrise/sunset bracketing but not for
// pointing.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	n := JulianDate(t) - j2000

	g := norm360(357.528 + 0.9856003*n) * degToRad  // mean anomaly
	q := norm360(280.459 + 0.98564736*n)            // mean longitude
	c := 1.9148*math.Sin(g) + 0.0200*math.Sin(2*g) + 0.0003*math.Sin(3*g)
	lambda := norm360(q+c) * degToRad               // ecliptic longitude
	eps := (23.4393 - 3.563e-7*n) * degToRad        // obliquity of the ecliptic

	raDeg = norm360(math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda)) / degToRad)
	decDeg = math.Asin(math.Sin(eps)*math.Sin(lambda)) / degToRad
	return raDeg, decDeg
}

// SunAltitude returns the sun's altitude in degrees for the given instant and
// observer latitude/longitude.
func SunAltitude(t time.Time, latDeg, lonDeg float64) float64 {
	ra, dec := SunPosition(t)
	lst := LocalSiderealTime(t, lonDeg)
	return Altitude(ra, dec, latDeg, lst)
}
