package model

import "strings"

// PointingType defines how the dish follows a target during an observation.
type PointingType int

const (
	// SiderealTrack follows a fixed celestial coordinate across the sky.
	SiderealTrack PointingType = iota
	// NonSiderealTrack follows a moving solar-system body by its id.
	NonSiderealTrack
	// DriftScan holds a fixed alt-az direction and lets the sky drift through.
	DriftScan
)

// String returns the upper-snake-case name used in stored documents.
func (p PointingType) String() string {
	switch p {
	case SiderealTrack:
		return "SIDEREAL_TRACK"
	case NonSiderealTrack:
		return "NON_SIDEREAL_TRACK"
	case DriftScan:
		return "DRIFT_SCAN"
	default:
		return "UNKNOWN"
	}
}

// ParsePointingType maps a free-text pointing name to a PointingType. The
// input is normalized to upper-snake-case before matching. The second return
// value reports whether the name was recognized.
func ParsePointingType(s string) (PointingType, bool) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch name {
	case "SIDEREAL_TRACK":
		return SiderealTrack, true
	case "NON_SIDEREAL_TRACK":
		return NonSiderealTrack, true
	case "DRIFT_SCAN":
		return DriftScan, true
	}
	return SiderealTrack, false
}

// MarshalText stores the pointing type by name rather than ordinal.
func (p PointingType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText accepts any recognized pointing name; unknown names keep the
// zero value so older documents still load.
func (p *PointingType) UnmarshalText(b []byte) error {
	v, _ := ParsePointingType(string(b))
	*p = v
	return nil
}

// Target is one pointing the telescope should observe. Exactly one of ID
// (solar-system body), AltAz or Coord determines the pointing type.
// TgtIdx is the 0-based position in submission order; -1 means unassigned.
type Target struct {
	ID       string         `json:"id,omitempty"`
	Pointing PointingType   `json:"pointing"`
	Coord    *SkyCoordinate `json:"coordinate,omitempty"`
	AltAz    *AltAz         `json:"altaz,omitempty"`
	TgtIdx   int            `json:"tgt_idx"`
	ObsID    string         `json:"obs_id,omitempty"`
	// Config is the receiver configuration staged together with the target.
	Config *TargetConfig `json:"target_config,omitempty"`
}

// NewTarget returns an unassigned sidereal target placeholder.
func NewTarget() Target {
	return Target{Pointing: SiderealTrack, TgtIdx: -1}
}

// TargetConfig holds the receiver chain settings paired 1:1 with a Target by
// shared TgtIdx. Frequency and rate fields are stored in Hz; operators enter
// MHz and the assembler scales by 1e6 at submission time.
type TargetConfig struct {
	CenterFreq         float64    `json:"center_freq,omitempty"`
	Bandwidth          float64    `json:"bandwidth,omitempty"`
	SampleRate         float64    `json:"sample_rate,omitempty"`
	Gain               float64    `json:"gain,omitempty"`
	IntegrationTime    float64    `json:"integration_time,omitempty"`
	SpectralResolution float64    `json:"spectral_resolution,omitempty"`
	Feed               *EnumValue `json:"feed,omitempty"`
	TgtIdx             int        `json:"tgt_idx"`
	ObsID              string     `json:"obs_id,omitempty"`
}
