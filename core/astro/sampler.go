package astro

import "time"

// SampleStep is the spacing between day-altitude samples.
const SampleStep = 15 * time.Minute

// Sample is one point of a day-altitude sweep.
type Sample struct {
	Local        time.Time
	UTC          time.Time
	LSTDeg       float64
	HourAngleDeg float64
	TargetAltDeg float64
	SunAltDeg    float64
}

// DaySampler lazily produces altitude samples for a target over one calendar
// day in a reference time zone, at a fixed step, plus one boundary sample one
// minute before the nominal end so the sweep never duplicates the next
// midnight. While iterating it records the first sunrise and sunset sample it
// observes. The sequence is finite and restartable via Reset.
type DaySampler struct {
	start  time.Time
	end    time.Time
	latDeg float64
	lonDeg float64
	raDeg  float64
	decDeg float64

	next        time.Time
	atBoundary  bool
	done        bool
	prevSunAlt  float64
	havePrev    bool
	sunrise     time.Time
	sunriseSeen bool
	sunset      time.Time
	sunsetSeen  bool
}

// NewDaySampler sweeps the calendar day containing `day` in its location for
// a sidereal target at (raDeg, decDeg) observed from (latDeg, lonDeg).
func NewDaySampler(day time.Time, latDeg, lonDeg, raDeg, decDeg float64) *DaySampler {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	s := &DaySampler{
		start:  start,
		end:    start.AddDate(0, 0, 1),
		latDeg: latDeg,
		lonDeg: lonDeg,
		raDeg:  raDeg,
		decDeg: decDeg,
	}
	s.Reset()
	return s
}

// Reset restarts the sweep from the beginning of the day, clearing any
// sunrise/sunset observations.
func (s *DaySampler) Reset() {
	s.next = s.start
	s.atBoundary = false
	s.done = false
	s.havePrev = false
	s.sunriseSeen = false
	s.sunsetSeen = false
	s.sunrise = time.Time{}
	s.sunset = time.Time{}
}

// Next returns the next sample. ok is false once the sweep is exhausted.
func (s *DaySampler) Next() (sample Sample, ok bool) {
	if s.done {
		return Sample{}, false
	}
	t := s.next
	if s.atBoundary {
		s.done = true
	} else if s.next = s.next.Add(SampleStep); !s.next.Before(s.end) {
		s.next = s.end.Add(-time.Minute)
		s.atBoundary = true
	}

	utc := t.UTC()
	lst := LocalSiderealTime(utc, s.lonDeg)
	sunAlt := SunAltitude(utc, s.latDeg, s.lonDeg)
	sample = Sample{
		Local:        t,
		UTC:          utc,
		LSTDeg:       lst,
		HourAngleDeg: HourAngle(lst, s.raDeg),
		TargetAltDeg: Altitude(s.raDeg, s.decDeg, s.latDeg, lst),
		SunAltDeg:    sunAlt,
	}

	// Sunrise: first crossing from negative-or-unseen to non-negative.
	// Sunset: first crossing from positive to non-positive. Each reported at
	// the sample where the crossing is observed, not interpolated.
	if !s.sunriseSeen && sunAlt >= 0 && (!s.havePrev || s.prevSunAlt < 0) {
		s.sunrise = t
		s.sunriseSeen = true
	}
	if !s.sunsetSeen && s.havePrev && s.prevSunAlt > 0 && sunAlt <= 0 {
		s.sunset = t
		s.sunsetSeen = true
	}
	s.prevSunAlt = sunAlt
	s.havePrev = true

	return sample, true
}

// Sunrise returns the sample time at which the sun first reached a
// non-negative altitude, if one was observed so far.
func (s *DaySampler) Sunrise() (time.Time, bool) { return s.sunrise, s.sunriseSeen }

// Sunset returns the sample time at which the sun first dropped to a
// non-positive altitude, if one was observed so far.
func (s *DaySampler) Sunset() (time.Time, bool) { return s.sunset, s.sunsetSeen }
