package selection

import "github.com/sensorwire/framegate/internal/domain"

// Summary aggregates the outcome of one run.
type Summary struct {
	TotalCount       int     `json:"total_count"`
	EssentialCount   int     `json:"essential_count"`
	SuppressedCount  int     `json:"suppressed_count"`
	SuppressionRatio float64 `json:"suppression_ratio"`
}

// Reporter consumes the decision stream and aggregates reduction statistics.
// Decisions are observed one at a time; nothing needs to be materialized by
// the caller. Pure aggregation, no failure modes.
type Reporter struct {
	essential   int
	suppressed  int
	transmitted []domain.Frame
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Observe records one classification decision.
func (r *Reporter) Observe(d domain.Decision) {
	if d.Verdict == domain.Essential {
		r.essential++
		r.transmitted = append(r.transmitted, d.Frame)
		return
	}
	r.suppressed++
}

// EssentialCount returns the number of frames selected for transmission.
func (r *Reporter) EssentialCount() int {
	return r.essential
}

// SuppressedCount returns the number of frames withheld.
func (r *Reporter) SuppressedCount() int {
	return r.suppressed
}

// TotalCount returns the number of frames observed.
func (r *Reporter) TotalCount() int {
	return r.essential + r.suppressed
}

// SuppressionRatio is the fraction of processed frames withheld from
// transmission. Zero for an empty run, never NaN.
func (r *Reporter) SuppressionRatio() float64 {
	total := r.TotalCount()
	if total == 0 {
		return 0
	}
	return float64(r.suppressed) / float64(total)
}

// Transmitted returns the essential frames in original order.
func (r *Reporter) Transmitted() []domain.Frame {
	return r.transmitted
}

// Summary returns the aggregate counts for sinks and status persistence.
func (r *Reporter) Summary() Summary {
	return Summary{
		TotalCount:       r.TotalCount(),
		EssentialCount:   r.essential,
		SuppressedCount:  r.suppressed,
		SuppressionRatio: r.SuppressionRatio(),
	}
}
