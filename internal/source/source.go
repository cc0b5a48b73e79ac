// Package source turns ordered raw samples into a validated frame sequence.
//
// The source sits at the boundary between data acquisition and the selection
// core: acquisition adapters produce [Sample] tuples, the source validates
// them eagerly and hands out immutable frames one at a time, in arrival order.
package source

import (
	"fmt"
	"time"

	"github.com/sensorwire/framegate/internal/domain"
)

// Sample is one raw (timestamp, temperature, humidity) tuple as produced by
// an acquisition adapter, before validation.
type Sample struct {
	Timestamp   time.Time
	Temperature float64
	Humidity    float64
}

// Source produces a lazy, finite, restartable sequence of validated frames,
// preserving input order. A fresh pass after Reset reproduces an identical
// frame sequence.
type Source struct {
	frames []domain.Frame
	pos    int
}

// New validates every sample eagerly and builds a Source over them.
// Sequence numbers are assigned 1-based in arrival order.
// Returns ErrEmptySource for empty input and a wrapped ErrInvalidFrame
// naming the offending index for the first malformed sample. A single bad
// sample fails the whole run: silently dropping it would corrupt the
// delta-from-reference computation for every later frame.
func New(samples []Sample, bounds domain.Bounds) (*Source, error) {
	if len(samples) == 0 {
		return nil, domain.ErrEmptySource
	}

	frames := make([]domain.Frame, len(samples))
	for i, s := range samples {
		f, err := domain.NewFrame(uint32(i+1), s.Timestamp, s.Temperature, s.Humidity, bounds)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		frames[i] = f
	}

	return &Source{frames: frames}, nil
}

// Next returns the next frame in order. The second return value is false
// once the sequence is exhausted.
func (s *Source) Next() (domain.Frame, bool) {
	if s.pos >= len(s.frames) {
		return domain.Frame{}, false
	}
	f := s.frames[s.pos]
	s.pos++
	return f, true
}

// Reset restarts the source; the following pass yields the identical sequence.
func (s *Source) Reset() {
	s.pos = 0
}

// Len returns the total number of frames in the sequence.
func (s *Source) Len() int {
	return len(s.frames)
}
