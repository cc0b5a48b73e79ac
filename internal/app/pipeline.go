// Package app orchestrates the frame pipeline: source, selector, reporter,
// and the boundary sinks.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sensorwire/framegate/internal/domain"
	"github.com/sensorwire/framegate/internal/ports"
	"github.com/sensorwire/framegate/internal/selection"
	"github.com/sensorwire/framegate/internal/source"
)

// Pipeline pushes frames from a source through the selector into the
// reporter, one frame in flight, and dispatches results to the configured
// sinks. A pipeline may run many passes; each Run is an independent
// selection run with fresh selector state.
type Pipeline struct {
	selector      *selection.Selector
	logger        ports.Logger
	decisionSinks []ports.DecisionSink
	frameSinks    []ports.FrameSink
}

// Result carries the full annotated stream and the aggregate summary of one run.
type Result struct {
	// Decisions holds one decision per input frame, in arrival order.
	Decisions []domain.Decision

	// Transmitted is the essential subsequence, in original order.
	Transmitted []domain.Frame

	// Summary aggregates the reduction statistics.
	Summary selection.Summary
}

// NewPipeline validates the selection configuration and assembles a pipeline.
// Sinks may be nil or empty; the logger is required.
func NewPipeline(
	cfg selection.Config,
	logger ports.Logger,
	decisionSinks []ports.DecisionSink,
	frameSinks []ports.FrameSink,
) (*Pipeline, error) {
	sel, err := selection.NewSelector(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		selector:      sel,
		logger:        logger,
		decisionSinks: decisionSinks,
		frameSinks:    frameSinks,
	}, nil
}

// Run executes one selection pass over the source.
// The source is rewound and the selector reset first, so repeated calls with
// the same source reproduce identical decision sequences. Classification is
// synchronous and single-threaded; sink transmission happens after the pass
// and its errors are returned without affecting the computed result.
func (p *Pipeline) Run(ctx context.Context, src *source.Source) (*Result, error) {
	src.Reset()
	p.selector.Reset()

	reporter := selection.NewReporter()
	decisions := make([]domain.Decision, 0, src.Len())

	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, ok := src.Next()
		if !ok {
			break
		}

		d := p.selector.Classify(f)
		reporter.Observe(d)
		decisions = append(decisions, d)
		for _, sink := range p.decisionSinks {
			sink.Observe(d)
		}
	}

	summary := reporter.Summary()
	p.logger.Info("run complete",
		ports.Int("total", summary.TotalCount),
		ports.Int("essential", summary.EssentialCount),
		ports.Int("suppressed", summary.SuppressedCount),
		ports.Float64("suppression_ratio", summary.SuppressionRatio),
		ports.Duration("elapsed", time.Since(start)),
	)

	result := &Result{
		Decisions:   decisions,
		Transmitted: reporter.Transmitted(),
		Summary:     summary,
	}

	var sinkErrs []error
	for _, sink := range p.frameSinks {
		if err := sink.SendEssential(ctx, result.Transmitted, summary); err != nil {
			p.logger.Error("frame sink failed",
				ports.Err(err),
				ports.Int("frames", len(result.Transmitted)),
			)
			sinkErrs = append(sinkErrs, fmt.Errorf("frame sink: %w", err))
		}
	}

	return result, errors.Join(sinkErrs...)
}
