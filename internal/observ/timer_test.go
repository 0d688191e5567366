package observ

import (
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	timer := NewTimer()

	walk := timer.Begin("walk")
	timer.End(walk, "3 files")
	scan := timer.Begin("scan")
	timer.End(scan, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "walk" || report.Phases[0].Note != "3 files" {
		t.Errorf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "scan" {
		t.Errorf("second phase = %+v", report.Phases[1])
	}
	if report.TotalMS < 0 {
		t.Errorf("total = %f", report.TotalMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("expected empty report, got %+v", got)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("scan")
	timer.End(idx, "cached")

	out := timer.Summary()
	if !strings.Contains(out, "timings:") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "scan") || !strings.Contains(out, "// cached") {
		t.Errorf("missing phase line in %q", out)
	}
	if !strings.Contains(out, "total") {
		t.Errorf("missing total in %q", out)
	}
}
