// Package selection implements the essential frame selection algorithm and
// its reduction accounting.
//
// The selector runs a send-on-delta policy with a periodic keep-alive: a
// frame is transmitted when its normalized deviation from the last
// transmitted frame reaches the threshold, or when a bounded run of
// suppressions forces a transmission so the receiver never goes silent
// indefinitely on a flat signal.
package selection

import (
	"fmt"

	"github.com/sensorwire/framegate/internal/domain"
)

// Config holds the selection thresholds for one run. All values are required;
// there are no implicit defaults.
type Config struct {
	// TemperatureThreshold is the temperature change, in degrees, that on its
	// own makes a frame essential. Must be positive.
	TemperatureThreshold float64

	// HumidityThreshold is the humidity change, in percentage points, that on
	// its own makes a frame essential. Must be positive.
	HumidityThreshold float64

	// MaxSuppressedRun bounds consecutive suppressions before a keep-alive
	// transmission is forced. Zero disables keep-alive forcing entirely:
	// every frame after the first must clear the delta test itself.
	MaxSuppressedRun int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.TemperatureThreshold <= 0 {
		return fmt.Errorf("%w: temperature threshold %v must be positive",
			domain.ErrInvalidConfig, c.TemperatureThreshold)
	}
	if c.HumidityThreshold <= 0 {
		return fmt.Errorf("%w: humidity threshold %v must be positive",
			domain.ErrInvalidConfig, c.HumidityThreshold)
	}
	if c.MaxSuppressedRun < 0 {
		return fmt.Errorf("%w: max suppressed run %d must not be negative",
			domain.ErrInvalidConfig, c.MaxSuppressedRun)
	}
	return nil
}

// Selector classifies frames in strict arrival order. It holds the minimal
// state the policy needs: the last transmitted (reference) frame and the
// length of the current suppression run. One Selector serves exactly one run;
// independent runs need independent selectors. Not safe for concurrent use.
type Selector struct {
	cfg           Config
	reference     domain.Frame
	hasReference  bool
	suppressedRun int
}

// NewSelector validates the configuration and creates a selector.
func NewSelector(cfg Config) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Selector{cfg: cfg}, nil
}

// Classify decides whether the frame is essential or suppressible.
// Must be called once per frame in arrival order. The reference frame is
// updated if and only if the verdict is Essential.
func (s *Selector) Classify(f domain.Frame) domain.Decision {
	if !s.hasReference {
		// No reference to compare against: the first frame of a run is
		// always transmitted.
		return s.transmit(f, domain.ReasonFirstFrame)
	}

	if s.delta(f) >= 1.0 {
		return s.transmit(f, domain.ReasonDeltaExceeded)
	}

	if s.cfg.MaxSuppressedRun > 0 && s.suppressedRun+1 >= s.cfg.MaxSuppressedRun {
		return s.transmit(f, domain.ReasonKeepAlive)
	}

	s.suppressedRun++
	return domain.Decision{Frame: f, Verdict: domain.Suppressed, Reason: domain.ReasonNone}
}

// delta is the combined normalized deviation from the reference frame: each
// field's absolute change divided by its own threshold, combined with max so
// a change in one dimension is never masked by the other staying stable.
func (s *Selector) delta(f domain.Frame) float64 {
	dt, dh := f.Delta(s.reference)
	nt := dt / s.cfg.TemperatureThreshold
	nh := dh / s.cfg.HumidityThreshold
	if nt > nh {
		return nt
	}
	return nh
}

func (s *Selector) transmit(f domain.Frame, reason domain.Reason) domain.Decision {
	s.reference = f
	s.hasReference = true
	s.suppressedRun = 0
	return domain.Decision{Frame: f, Verdict: domain.Essential, Reason: reason}
}

// Reset returns the selector to its initial state for a fresh run.
func (s *Selector) Reset() {
	s.reference = domain.Frame{}
	s.hasReference = false
	s.suppressedRun = 0
}
