package ports

import (
	"context"

	"github.com/sensorwire/framegate/internal/domain"
	"github.com/sensorwire/framegate/internal/selection"
)

// FrameSink receives the frames selected for transmission, in original
// order, together with the run's reduction summary. Implementations ship
// them over HTTP, publish them to a broker, or record them for inspection.
// A sink failure never corrupts classification; the pipeline reports it to
// the caller after the run completes.
type FrameSink interface {
	// SendEssential transmits the essential subsequence of one run.
	SendEssential(ctx context.Context, frames []domain.Frame, summary selection.Summary) error
}

// DecisionSink consumes the annotated decision stream, one decision per
// frame in arrival order. Implementations render timelines, export CSV, or
// collect statistics. Observe must not block on I/O.
type DecisionSink interface {
	Observe(d domain.Decision)
}
