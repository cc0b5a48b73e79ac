package selection

import (
	"testing"

	"github.com/sensorwire/framegate/internal/domain"
)

func TestReporterCounts(t *testing.T) {
	r := NewReporter()

	r.Observe(domain.Decision{Frame: frame(1, 20, 40), Verdict: domain.Essential, Reason: domain.ReasonFirstFrame})
	r.Observe(domain.Decision{Frame: frame(2, 20, 40), Verdict: domain.Suppressed})
	r.Observe(domain.Decision{Frame: frame(3, 25, 40), Verdict: domain.Essential, Reason: domain.ReasonDeltaExceeded})
	r.Observe(domain.Decision{Frame: frame(4, 25, 40), Verdict: domain.Suppressed})

	if r.EssentialCount() != 2 {
		t.Errorf("EssentialCount = %d, want 2", r.EssentialCount())
	}
	if r.SuppressedCount() != 2 {
		t.Errorf("SuppressedCount = %d, want 2", r.SuppressedCount())
	}
	if r.EssentialCount()+r.SuppressedCount() != r.TotalCount() {
		t.Errorf("counts do not sum to total %d", r.TotalCount())
	}
	if r.SuppressionRatio() != 0.5 {
		t.Errorf("SuppressionRatio = %v, want 0.5", r.SuppressionRatio())
	}
}

func TestReporterTransmittedOrder(t *testing.T) {
	r := NewReporter()
	frames := []domain.Frame{frame(1, 20, 40), frame(2, 25, 40), frame(3, 30, 40)}
	for _, f := range frames {
		r.Observe(domain.Decision{Frame: f, Verdict: domain.Essential, Reason: domain.ReasonDeltaExceeded})
		r.Observe(domain.Decision{Frame: f, Verdict: domain.Suppressed})
	}

	got := r.Transmitted()
	if len(got) != len(frames) {
		t.Fatalf("Transmitted length = %d, want %d", len(got), len(frames))
	}
	for i := range frames {
		if got[i] != frames[i] {
			t.Errorf("Transmitted[%d] = seq %d, want seq %d", i, got[i].Seq, frames[i].Seq)
		}
	}
}

func TestReporterEmptyRun(t *testing.T) {
	r := NewReporter()

	if ratio := r.SuppressionRatio(); ratio != 0 {
		t.Fatalf("empty SuppressionRatio = %v, want 0", ratio)
	}

	s := r.Summary()
	if s.TotalCount != 0 || s.EssentialCount != 0 || s.SuppressedCount != 0 || s.SuppressionRatio != 0 {
		t.Fatalf("empty summary not zero-valued: %+v", s)
	}
}
