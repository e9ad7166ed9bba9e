package assemble

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rbrederode/odt/core/model"
)

// Free-text coordinate patterns accepted in the target fields. Values are
// plain decimal numbers; sexagesimal text goes through core/coords before it
// reaches these fields.
var (
	altazRe  = regexp.MustCompile(`(?is)alt\s*:\s*([+-]?\d+(?:\.\d+)?).*az\s*:\s*([+-]?\d+(?:\.\d+)?)`)
	icrsRe   = regexp.MustCompile(`(?is)ra\s*:\s*([+-]?\d+(?:\.\d+)?)\s*,.*dec\s*:\s*([+-]?\d+(?:\.\d+)?)`)
	galRe    = regexp.MustCompile(`(?is)l\s*:\s*([+-]?\d+(?:\.\d+)?)\s*,\s*b\s*:\s*([+-]?\d+(?:\.\d+)?)`)
	targetRe = regexp.MustCompile(`(?is)^\s*(\S+)\s.*ra\s*:\s*([+-]?\d+(?:\.\d+)?)\s*,.*dec\s*:\s*([+-]?\d+(?:\.\d+)?)`)
)

// ClassifyTarget derives a Target from a normalized field document. Exactly
// one coordinate representation wins, by precedence: a solar-system body id
// beats a fixed alt-az direction, which beats a sky coordinate, which beats a
// plain named target. A pointing field naming a recognized pointing type
// overrides the derived one. An unmatched skycoord value, or one whose
// coordinate fails validation, yields an empty placeholder target rather
// than a failure.
func ClassifyTarget(f Fields) model.Target {
	tgt := model.NewTarget()

	if body, ok := f.String("solar_system"); ok && body != "" {
		tgt.ID = body
		tgt.Pointing = model.NonSiderealTrack
	} else if raw, ok := f.String("altaz"); ok {
		if m := altazRe.FindStringSubmatch(raw); m != nil {
			tgt.AltAz = &model.AltAz{Alt: mustFloat(m[1]), Az: mustFloat(m[2])}
			tgt.Pointing = model.DriftScan
		}
	} else if raw, ok := f.String("skycoord"); ok {
		if m := icrsRe.FindStringSubmatch(raw); m != nil {
			if c := model.ICRS(mustFloat(m[1]), mustFloat(m[2])); c.Validate() == nil {
				tgt.Coord = &c
				tgt.Pointing = model.SiderealTrack
			}
		} else if m := galRe.FindStringSubmatch(raw); m != nil {
			if c := model.Galactic(mustFloat(m[1]), mustFloat(m[2])); c.Validate() == nil {
				tgt.Coord = &c
				tgt.Pointing = model.SiderealTrack
			}
		}
		// No match or out-of-range values: empty placeholder, non-fatal.
	} else if raw, ok := f.String("target"); ok {
		if m := targetRe.FindStringSubmatch(raw); m != nil {
			if c := model.ICRS(mustFloat(m[2]), mustFloat(m[3])); c.Validate() == nil {
				tgt.ID = m[1]
				tgt.Coord = &c
				tgt.Pointing = model.SiderealTrack
			}
		}
	}

	if name, ok := f.String("pointing"); ok {
		if p, known := model.ParsePointingType(name); known {
			tgt.Pointing = p
		}
	}
	return tgt
}

// BuildTargetConfig maps the receiver-chain fields of a normalized document
// into a TargetConfig. Frequencies stay in the operator's units (MHz) until
// submission scales them to Hz.
func BuildTargetConfig(f Fields) model.TargetConfig {
	cfg := model.TargetConfig{TgtIdx: -1}
	if v, ok := f.Number("center_freq"); ok {
		cfg.CenterFreq = v
	}
	if v, ok := f.Number("bandwidth"); ok {
		cfg.Bandwidth = v
	}
	if v, ok := f.Number("sample_rate"); ok {
		cfg.SampleRate = v
	}
	if v, ok := f.Number("gain"); ok {
		cfg.Gain = v
	}
	if v, ok := f.Number("integration_time"); ok {
		cfg.IntegrationTime = v
	}
	if v, ok := f.Number("spectral_resolution"); ok {
		cfg.SpectralResolution = v
	}
	if v, ok := f.String("feed"); ok && v != "" {
		// Recognized feed names take their canonical spelling; anything else
		// is stored as entered, normalized to upper snake case.
		e := model.Enum("FeedType", normalizeEnum(v))
		if ft, known := model.ParseFeedType(v); known {
			e = ft.Enum()
		}
		cfg.Feed = &e
	}
	return cfg
}

// mustFloat parses a regex-matched numeric token; the patterns above only
// capture valid floats.
func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// normalizeEnum converts free-text enum values to upper-snake-case.
func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}
