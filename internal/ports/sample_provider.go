package ports

import (
	"context"

	"github.com/sensorwire/framegate/internal/source"
)

// SampleProvider supplies the ordered raw samples that play the role of the
// simulated sensor. Implementations fetch historical weather data, read
// sample files, or generate synthetic series. Samples must be ascending by
// timestamp, ties broken by position.
type SampleProvider interface {
	// Samples returns the full ordered sample series for one run.
	Samples(ctx context.Context) ([]source.Sample, error)
}
