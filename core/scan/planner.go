// Package scan plans how an observation's frequency range is covered by a
// sequence of receiver scans: the usable part of each bandpass is narrower
// than the sample rate because of roll-off at the edges, so wide observations
// need several overlapping frequency scans, each split into iterations short
// enough to process.
package scan

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// UsableBandwidth is the fraction of each bandpass usable for science;
	// the rest rolls off at the edges.
	UsableBandwidth = 0.65
	// MaxScanSeconds caps a single scan iteration to keep memory and
	// processing manageable.
	MaxScanSeconds = 60.0
	// OverheadFactor accounts for sampling overhead: 60 seconds of samples
	// takes roughly 70 seconds to acquire.
	OverheadFactor = 1.2
)

// Plan describes how an observation is decomposed into frequency scans.
// All frequencies are Hz, durations seconds.
type Plan struct {
	FreqMin        float64   `json:"freq_min"`
	FreqMax        float64   `json:"freq_max"`
	FreqScans      int       `json:"freq_scans"`
	FreqOverlap    float64   `json:"freq_overlap"`
	FreqDuration   float64   `json:"freq_duration"`
	ScanIterations int       `json:"scan_iterations"`
	ScanDuration   float64   `json:"scan_duration"`
	Centers        []float64 `json:"centers"`
}

// PlanScans computes the frequency scan decomposition for an observation with
// the given centre frequency, bandwidth, sample rate (Hz) and total time on
// target (seconds).
func PlanScans(centerFreq, bandwidth, sampleRate, duration float64) (Plan, error) {
	if centerFreq <= 0 || bandwidth <= 0 || sampleRate <= 0 || duration <= 0 {
		return Plan{}, fmt.Errorf("scan: centre frequency, bandwidth, sample rate and duration must all be positive")
	}

	var p Plan
	edge := sampleRate * (1 - UsableBandwidth) / 2
	p.FreqMin = centerFreq - bandwidth/2 - edge
	p.FreqMax = centerFreq + bandwidth/2 + edge
	p.FreqScans = int(math.Ceil((p.FreqMax - p.FreqMin) / (sampleRate * UsableBandwidth)))

	if p.FreqScans > 1 {
		overlap := (sampleRate*float64(p.FreqScans) - (p.FreqMax - p.FreqMin)) / float64(p.FreqScans-1)
		p.FreqOverlap = math.Round(overlap*1e4) / 1e4
	}
	p.FreqDuration = math.Round(duration/float64(p.FreqScans)*1e3) / 1e3
	p.ScanIterations = int(math.Ceil(p.FreqDuration / MaxScanSeconds))
	if p.ScanIterations > 1 {
		p.ScanDuration = math.Floor(p.FreqDuration / float64(p.ScanIterations))
	} else {
		p.ScanDuration = p.FreqDuration
	}

	p.Centers = make([]float64, p.FreqScans)
	if p.FreqScans == 1 {
		p.Centers[0] = p.FreqMin + sampleRate/2
	} else {
		first := p.FreqMin + sampleRate/2
		last := p.FreqMin + float64(p.FreqScans-1)*(sampleRate-p.FreqOverlap) + sampleRate/2
		floats.Span(p.Centers, first, last)
	}
	return p, nil
}

// CheckWindow verifies that a scheduled window is long enough to acquire the
// requested time on target once sampling overhead is included.
func CheckWindow(windowSeconds, duration float64) error {
	if windowSeconds <= duration*OverheadFactor {
		return fmt.Errorf("scan: window of %.0fs cannot achieve %.0fs on target (overhead factor %.1f)",
			windowSeconds, duration, OverheadFactor)
	}
	return nil
}
