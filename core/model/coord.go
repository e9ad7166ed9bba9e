package model

import (
	"fmt"
	"math"
)

// Frame identifies the celestial reference frame of a SkyCoordinate.
type Frame string

const (
	FrameICRS     Frame = "icrs"
	FrameGalactic Frame = "galactic"
)

// SkyCoordinate is a tagged celestial coordinate. For the ICRS frame RA/Dec
// carry the position; for the galactic frame L/B do. All values are degrees.
type SkyCoordinate struct {
	Frame Frame   `json:"frame"`
	RA    float64 `json:"ra,omitempty"`
	Dec   float64 `json:"dec,omitempty"`
	L     float64 `json:"l,omitempty"`
	B     float64 `json:"b,omitempty"`
}

// ICRS builds an equatorial coordinate. RA is normalized to [0,360).
func ICRS(raDeg, decDeg float64) SkyCoordinate {
	ra := math.Mod(raDeg, 360)
	if ra < 0 {
		ra += 360
	}
	return SkyCoordinate{Frame: FrameICRS, RA: ra, Dec: decDeg}
}

// Galactic builds a galactic-plane coordinate.
func Galactic(lDeg, bDeg float64) SkyCoordinate {
	return SkyCoordinate{Frame: FrameGalactic, L: lDeg, B: bDeg}
}

// Validate checks the frame invariants: Dec in [-90,90], RA in [0,360),
// and all values finite.
func (c SkyCoordinate) Validate() error {
	switch c.Frame {
	case FrameICRS:
		if math.IsNaN(c.RA) || math.IsInf(c.RA, 0) || math.IsNaN(c.Dec) || math.IsInf(c.Dec, 0) {
			return fmt.Errorf("icrs coordinate not finite")
		}
		if c.RA < 0 || c.RA >= 360 {
			return fmt.Errorf("ra %v out of range [0,360)", c.RA)
		}
		if c.Dec < -90 || c.Dec > 90 {
			return fmt.Errorf("dec %v out of range [-90,90]", c.Dec)
		}
	case FrameGalactic:
		if math.IsNaN(c.L) || math.IsInf(c.L, 0) || math.IsNaN(c.B) || math.IsInf(c.B, 0) {
			return fmt.Errorf("galactic coordinate not finite")
		}
	default:
		return fmt.Errorf("unknown frame %q", c.Frame)
	}
	return nil
}

// AltAz is a fixed horizontal direction, independent of time. Used for drift
// scans where the dish holds position and lets the sky pass through the beam.
type AltAz struct {
	Alt float64 `json:"alt"`
	Az  float64 `json:"az"`
}
