package selection

import (
	"errors"
	"testing"
	"time"

	"github.com/sensorwire/framegate/internal/domain"
)

func frame(seq int, temp, humi float64) domain.Frame {
	ts := time.Date(2023, 1, 1, 0, seq, 0, 0, time.UTC)
	f, err := domain.NewFrame(uint32(seq), ts, temp, humi, domain.DefaultBounds())
	if err != nil {
		panic(err)
	}
	return f
}

func TestConfigValidate(t *testing.T) {
	ok := Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 3}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := []Config{
		{TemperatureThreshold: 0, HumidityThreshold: 10, MaxSuppressedRun: 3},
		{TemperatureThreshold: -2, HumidityThreshold: 10, MaxSuppressedRun: 3},
		{TemperatureThreshold: 2, HumidityThreshold: 0, MaxSuppressedRun: 3},
		{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: -1},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("config %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}

	if _, err := NewSelector(Config{}); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("NewSelector with zero config: expected ErrInvalidConfig, got %v", err)
	}
}

func TestFirstFrameAlwaysEssential(t *testing.T) {
	sel, err := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 3})
	if err != nil {
		t.Fatal(err)
	}

	d := sel.Classify(frame(1, 20, 40))
	if d.Verdict != domain.Essential {
		t.Fatalf("first verdict = %v, want Essential", d.Verdict)
	}
	if d.Reason != domain.ReasonFirstFrame {
		t.Fatalf("first reason = %v, want first frame", d.Reason)
	}
}

func TestDeltaExceedsThreshold(t *testing.T) {
	// Thresholds 2.0 / 10.0, keep-alive after 3 suppressions.
	sel, err := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 3})
	if err != nil {
		t.Fatal(err)
	}

	frames := []domain.Frame{
		frame(1, 20, 40),
		frame(2, 20.5, 41),
		frame(3, 23, 42), // |23-20|/2 = 1.5 >= 1.0
		frame(4, 23.2, 42),
	}
	want := []struct {
		verdict domain.Verdict
		reason  domain.Reason
	}{
		{domain.Essential, domain.ReasonFirstFrame},
		{domain.Suppressed, domain.ReasonNone},
		{domain.Essential, domain.ReasonDeltaExceeded},
		{domain.Suppressed, domain.ReasonNone},
	}

	for i, f := range frames {
		d := sel.Classify(f)
		if d.Verdict != want[i].verdict || d.Reason != want[i].reason {
			t.Errorf("frame %d: got (%v, %v), want (%v, %v)",
				i+1, d.Verdict, d.Reason, want[i].verdict, want[i].reason)
		}
	}
}

func TestHumidityChangeNotMaskedByStableTemperature(t *testing.T) {
	sel, _ := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 0})

	sel.Classify(frame(1, 20, 40))
	d := sel.Classify(frame(2, 20, 51)) // |51-40|/10 = 1.1, temperature flat
	if d.Verdict != domain.Essential || d.Reason != domain.ReasonDeltaExceeded {
		t.Fatalf("got (%v, %v), want Essential via delta", d.Verdict, d.Reason)
	}
}

func TestKeepAliveOnFlatSignal(t *testing.T) {
	sel, err := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 2})
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		verdict domain.Verdict
		reason  domain.Reason
	}{
		{domain.Essential, domain.ReasonFirstFrame},
		{domain.Suppressed, domain.ReasonNone},
		{domain.Essential, domain.ReasonKeepAlive},
		{domain.Suppressed, domain.ReasonNone},
		{domain.Essential, domain.ReasonKeepAlive},
	}
	for i := range want {
		d := sel.Classify(frame(i+1, 20, 40))
		if d.Verdict != want[i].verdict || d.Reason != want[i].reason {
			t.Errorf("frame %d: got (%v, %v), want (%v, %v)",
				i+1, d.Verdict, d.Reason, want[i].verdict, want[i].reason)
		}
	}
}

func TestKeepAliveDisabled(t *testing.T) {
	sel, _ := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 0})

	sel.Classify(frame(1, 20, 40))
	for i := 2; i <= 50; i++ {
		d := sel.Classify(frame(i, 20, 40))
		if d.Verdict != domain.Suppressed {
			t.Fatalf("frame %d: flat signal transmitted with keep-alive disabled (%v)", i, d.Reason)
		}
	}
}

func TestSuppressionRunNeverExceedsBound(t *testing.T) {
	const k = 5
	sel, _ := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: k})

	run := 0
	for i := 1; i <= 200; i++ {
		// Slow drift that rarely clears the delta test on its own.
		d := sel.Classify(frame(i, 20+float64(i)*0.01, 40))
		if d.Verdict == domain.Suppressed {
			run++
			if run > k {
				t.Fatalf("frame %d: %d consecutive suppressions, bound is %d", i, run, k)
			}
		} else {
			run = 0
		}
	}
}

func TestReferenceUpdatesOnlyOnEssential(t *testing.T) {
	sel, _ := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 0})

	sel.Classify(frame(1, 20, 40))
	// Two sub-threshold steps that sum past the threshold. If the reference
	// slid along with suppressed frames, the second step would be suppressed
	// too; against the fixed reference it must transmit.
	sel.Classify(frame(2, 21.2, 40))
	d := sel.Classify(frame(3, 22.4, 40))
	if d.Verdict != domain.Essential {
		t.Fatal("reference moved on a suppressed frame")
	}
}

func TestDeterminism(t *testing.T) {
	cfg := Config{TemperatureThreshold: 1.5, HumidityThreshold: 8, MaxSuppressedRun: 4}
	frames := make([]domain.Frame, 100)
	for i := range frames {
		frames[i] = frame(i+1, 20+float64(i%7)*0.4, 40+float64(i%11)*1.1)
	}

	classify := func() []domain.Decision {
		sel, err := NewSelector(cfg)
		if err != nil {
			t.Fatal(err)
		}
		out := make([]domain.Decision, len(frames))
		for i, f := range frames {
			out[i] = sel.Classify(f)
		}
		return out
	}

	a, b := classify(), classify()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decision %d differs across identical runs", i)
		}
	}
}

func TestResetStartsFreshRun(t *testing.T) {
	sel, _ := NewSelector(Config{TemperatureThreshold: 2, HumidityThreshold: 10, MaxSuppressedRun: 3})

	sel.Classify(frame(1, 20, 40))
	sel.Classify(frame(2, 20.1, 40))

	sel.Reset()
	d := sel.Classify(frame(3, 20.1, 40))
	if d.Reason != domain.ReasonFirstFrame {
		t.Fatalf("after Reset, reason = %v, want first frame", d.Reason)
	}
}
