package astro

import "math"

const degToRad = math.Pi / 180

// Altitude returns the altitude in degrees of a target at (raDeg, decDeg) for
// an observer at latitude latDeg when the local sidereal time is lstDeg.
// The asin argument is clamped to [-1,1]: floating-point drift can push it
// marginally out of range and must not propagate NaN.
func Altitude(raDeg, decDeg, latDeg, lstDeg float64) float64 {
	h := HourAngle(lstDeg, raDeg) * degToRad
	lat := latDeg * degToRad
	dec := decDeg * degToRad

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(h)
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	return math.Asin(sinAlt) / degToRad
}
