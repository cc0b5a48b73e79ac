package domain

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Wire layout sizes in bytes. The frame image is fixed-size regardless of
// value magnitude, which is what makes the transmitted frame count a faithful
// proxy for radio energy cost.
const (
	addrSize     = 6
	seqSize      = 4
	payloadSize  = 19 + 8 + 8 // timestamp text + temperature + humidity
	checksumSize = md5.Size

	// FrameSize is the exact length of every encoded frame.
	FrameSize = 2*addrSize + seqSize + payloadSize + checksumSize
)

// timestampLayout is the textual timestamp format inside the payload.
const timestampLayout = "2006-01-02 15:04:05"

// Link-layer addresses carried in the frame header.
const (
	SourceAddr = "013A5B"
	DestAddr   = "014D8E"
)

// Bounds is the physically plausible temperature range a frame must fall
// within. Humidity is always bounded to [0, 100] percent.
type Bounds struct {
	MinTemperature float64
	MaxTemperature float64
}

// DefaultBounds returns the recorded terrestrial temperature extremes.
func DefaultBounds() Bounds {
	return Bounds{MinTemperature: -90, MaxTemperature: 60}
}

// Frame is one sampled observation: a reading of temperature and humidity at
// one instant. Frames are immutable after construction and compared by the
// order they arrive in, not by timestamp; duplicate timestamps are allowed.
type Frame struct {
	// Seq is the 1-based sequence number assigned by the frame source.
	Seq uint32

	// Timestamp is the sampling instant.
	Timestamp time.Time

	// Temperature in degrees Celsius.
	Temperature float64

	// Humidity in percent relative humidity.
	Humidity float64
}

// NewFrame validates a raw sample and constructs an immutable Frame.
// Out-of-range values fail with ErrInvalidFrame; the caller decides whether
// to discard or clamp. The domain never silently mutates input.
func NewFrame(seq uint32, ts time.Time, temperature, humidity float64, bounds Bounds) (Frame, error) {
	if math.IsNaN(temperature) || math.IsNaN(humidity) {
		return Frame{}, fmt.Errorf("%w: non-numeric reading", ErrInvalidFrame)
	}
	if humidity < 0 || humidity > 100 {
		return Frame{}, fmt.Errorf("%w: humidity %.2f outside [0,100]", ErrInvalidFrame, humidity)
	}
	if temperature < bounds.MinTemperature || temperature > bounds.MaxTemperature {
		return Frame{}, fmt.Errorf("%w: temperature %.2f outside [%.1f,%.1f]",
			ErrInvalidFrame, temperature, bounds.MinTemperature, bounds.MaxTemperature)
	}
	return Frame{Seq: seq, Timestamp: ts, Temperature: temperature, Humidity: humidity}, nil
}

// Delta returns the absolute per-field differences against a reference frame.
func (f Frame) Delta(ref Frame) (dTemperature, dHumidity float64) {
	return math.Abs(f.Temperature - ref.Temperature), math.Abs(f.Humidity - ref.Humidity)
}

// Encode produces the fixed FrameSize-byte wire image:
// source addr, dest addr, sequence number, payload, MD5 checksum of the payload.
func (f Frame) Encode() []byte {
	buf := make([]byte, 0, FrameSize)
	buf = append(buf, SourceAddr...)
	buf = append(buf, DestAddr...)
	buf = binary.BigEndian.AppendUint32(buf, f.Seq)

	payload := f.encodePayload()
	buf = append(buf, payload...)

	sum := md5.Sum(payload)
	buf = append(buf, sum[:]...)
	return buf
}

func (f Frame) encodePayload() []byte {
	p := make([]byte, 0, payloadSize)
	p = append(p, f.Timestamp.Format(timestampLayout)...)
	p = binary.BigEndian.AppendUint64(p, math.Float64bits(f.Temperature))
	p = binary.BigEndian.AppendUint64(p, math.Float64bits(f.Humidity))
	return p
}

// DecodeFrame parses a wire image and verifies its checksum.
// Returns ErrInvalidFrame for wrong length, a corrupted payload, or an
// unparseable timestamp.
func DecodeFrame(b []byte) (Frame, error) {
	if len(b) != FrameSize {
		return Frame{}, fmt.Errorf("%w: image length %d, want %d", ErrInvalidFrame, len(b), FrameSize)
	}

	off := 2 * addrSize
	seq := binary.BigEndian.Uint32(b[off : off+seqSize])
	off += seqSize

	payload := b[off : off+payloadSize]
	sum := md5.Sum(payload)
	if !bytes.Equal(sum[:], b[off+payloadSize:]) {
		return Frame{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidFrame)
	}

	ts, err := time.Parse(timestampLayout, string(payload[:19]))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: timestamp: %v", ErrInvalidFrame, err)
	}

	return Frame{
		Seq:         seq,
		Timestamp:   ts,
		Temperature: math.Float64frombits(binary.BigEndian.Uint64(payload[19:27])),
		Humidity:    math.Float64frombits(binary.BigEndian.Uint64(payload[27:35])),
	}, nil
}
