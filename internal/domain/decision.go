package domain

// Verdict classifies a frame as transmitted or withheld.
type Verdict int

const (
	// Suppressed marks a frame withheld from transmission because it is
	// redundant relative to the last transmitted reference frame.
	Suppressed Verdict = iota

	// Essential marks a frame selected for transmission.
	Essential
)

// String returns a human-readable representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case Suppressed:
		return "Suppressed"
	case Essential:
		return "Essential"
	default:
		return "Unknown"
	}
}

// Reason explains why a frame was marked essential.
type Reason int

const (
	// ReasonNone applies to suppressed frames.
	ReasonNone Reason = iota

	// ReasonFirstFrame applies to the first frame of a run, which is always
	// transmitted because no reference frame exists yet.
	ReasonFirstFrame

	// ReasonDeltaExceeded applies when the normalized deviation from the
	// reference frame reached the threshold.
	ReasonDeltaExceeded

	// ReasonKeepAlive applies when a bounded run of suppressions forced a
	// transmission so the receiver periodically reconfirms the signal.
	ReasonKeepAlive
)

// String returns a human-readable representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonFirstFrame:
		return "first frame"
	case ReasonDeltaExceeded:
		return "delta exceeded threshold"
	case ReasonKeepAlive:
		return "periodic keep-alive forced"
	default:
		return "unknown"
	}
}

// Decision pairs a frame with its classification verdict. Decisions are
// immutable; they are produced by the selector and consumed by reporters
// and presentation sinks.
type Decision struct {
	Frame   Frame
	Verdict Verdict
	Reason  Reason
}
