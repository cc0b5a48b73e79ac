// Package framegate decides, frame by frame, which sensor readings actually
// need to be transmitted. A frame is essential when it carries a meaningful
// change relative to the last transmitted one, or when a keep-alive is due;
// everything else is suppressed before it reaches the link layer.
//
// Example usage:
//
//	cfg := framegate.Config{
//	    TemperatureThreshold: 2.0,
//	    HumidityThreshold:    10.0,
//	    MaxSuppressedRun:     3,
//	}
//	result, err := framegate.Select(ctx, cfg, samples)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("transmitting %d of %d frames\n",
//	    result.Summary.EssentialCount, result.Summary.TotalCount)
package framegate

import (
	"context"

	"github.com/sensorwire/framegate/internal/app"
	"github.com/sensorwire/framegate/internal/domain"
	"github.com/sensorwire/framegate/internal/selection"
	"github.com/sensorwire/framegate/internal/source"
	"github.com/sensorwire/framegate/pkg/log"
)

// Config holds the selection thresholds and the keep-alive limit.
type Config = selection.Config

// Sample is one raw sensor reading before frame validation.
type Sample = source.Sample

// Frame is a validated sensor frame with a sequence number.
type Frame = domain.Frame

// Decision pairs a frame with its classification verdict and reason.
type Decision = domain.Decision

// Summary aggregates the reduction achieved over one run.
type Summary = selection.Summary

// Result carries the full decision stream, the transmitted subsequence,
// and the run summary.
type Result = app.Result

// Select classifies the sample series in arrival order and returns the
// complete result. Validation uses the default physical bounds.
func Select(ctx context.Context, cfg Config, samples []Sample) (*Result, error) {
	src, err := source.New(samples, domain.DefaultBounds())
	if err != nil {
		return nil, err
	}
	pipeline, err := app.NewPipeline(cfg, log.NewNoopLogger(), nil, nil)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx, src)
}

// DefaultBounds returns the physical plausibility bounds used by Select.
func DefaultBounds() domain.Bounds {
	return domain.DefaultBounds()
}
