package scan

import (
	"math"
	"testing"
)

func TestPlanScansSingle(t *testing.T) {
	// 2.4 MHz bandwidth at a 2.4 MHz sample rate still needs two scans once
	// the roll-off edges are added.
	p, err := PlanScans(1420.4e6, 2.4e6, 2.4e6, 120)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := (2.4e6 + 2.4e6*(1-UsableBandwidth)) / (2.4e6 * UsableBandwidth)
	if p.FreqScans != int(math.Ceil(want)) {
		t.Fatalf("freq scans %d", p.FreqScans)
	}
	if len(p.Centers) != p.FreqScans {
		t.Fatalf("centers %d", len(p.Centers))
	}
}

func TestPlanScansCoverage(t *testing.T) {
	p, err := PlanScans(1420.4e6, 10e6, 2.4e6, 600)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if p.FreqScans < 7 {
		t.Fatalf("freq scans %d", p.FreqScans)
	}
	// First scan starts at FreqMin, last scan ends at or beyond FreqMax.
	firstLow := p.Centers[0] - 1.2e6
	lastHigh := p.Centers[len(p.Centers)-1] + 1.2e6
	if math.Abs(firstLow-p.FreqMin) > 1 {
		t.Fatalf("first scan low edge %v vs freq min %v", firstLow, p.FreqMin)
	}
	if lastHigh < p.FreqMax-1 {
		t.Fatalf("last scan high edge %v below freq max %v", lastHigh, p.FreqMax)
	}
	// Adjacent centers are spaced by sample rate minus overlap.
	for i := 1; i < len(p.Centers); i++ {
		gap := p.Centers[i] - p.Centers[i-1]
		if math.Abs(gap-(2.4e6-p.FreqOverlap)) > 1 {
			t.Fatalf("center gap %v at %d", gap, i)
		}
	}
}

func TestPlanScansIterations(t *testing.T) {
	// 600s over n scans: per-scan duration above 60s must split into
	// iterations no longer than the cap.
	p, err := PlanScans(1420.4e6, 2.4e6, 2.4e6, 600)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if p.ScanIterations < 1 {
		t.Fatalf("iterations %d", p.ScanIterations)
	}
	if p.ScanDuration > MaxScanSeconds {
		t.Fatalf("scan duration %v exceeds cap", p.ScanDuration)
	}
	if p.ScanIterations > 1 {
		total := p.ScanDuration * float64(p.ScanIterations)
		if total > p.FreqDuration+1 {
			t.Fatalf("iterations overshoot freq duration: %v > %v", total, p.FreqDuration)
		}
	}
}

func TestPlanScansValidation(t *testing.T) {
	if _, err := PlanScans(0, 2.4e6, 2.4e6, 120); err == nil {
		t.Fatalf("expected error for zero centre frequency")
	}
	if _, err := PlanScans(1420e6, 2.4e6, 2.4e6, -1); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}

func TestCheckWindow(t *testing.T) {
	if err := CheckWindow(150, 120); err == nil {
		t.Fatalf("window below overhead should fail")
	}
	if err := CheckWindow(150, 100); err != nil {
		t.Fatalf("window above overhead: %v", err)
	}
}
