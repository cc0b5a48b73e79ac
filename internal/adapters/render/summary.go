// Package render is the presentation boundary: it consumes the annotated
// decision stream and renders the before/after picture of a run as text or
// CSV for external plotting.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sensorwire/framegate/internal/domain"
)

const (
	markEssential  = '#'
	markSuppressed = '.'
)

// Timeline collects one mark per frame, grouped by day, and renders a
// keep/drop strip per day plus the headline reduction percentage. It
// implements ports.DecisionSink; Observe never blocks.
type Timeline struct {
	order     []string
	days      map[string][]byte
	total     int
	essential int
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{days: make(map[string][]byte)}
}

// Observe records one decision.
func (t *Timeline) Observe(d domain.Decision) {
	day := d.Frame.Timestamp.Format("2006-01-02")
	if _, ok := t.days[day]; !ok {
		t.order = append(t.order, day)
	}

	mark := byte(markSuppressed)
	if d.Verdict == domain.Essential {
		mark = markEssential
		t.essential++
	}
	t.days[day] = append(t.days[day], mark)
	t.total++
}

// Render writes the per-day strips and the headline percentage.
func (t *Timeline) Render(w io.Writer) error {
	for _, day := range t.order {
		if _, err := fmt.Fprintf(w, "%s  %s\n", day, t.days[day]); err != nil {
			return err
		}
	}

	percentage := 0.0
	if t.total > 0 {
		percentage = float64(t.essential) * 100 / float64(t.total)
	}
	_, err := fmt.Fprintf(w, "\nonly %.2f%% of frames pass from the network layer to the data link layer (%d of %d)\n",
		percentage, t.essential, t.total)
	return err
}

// WriteDecisionsCSV exports the annotated stream for external plotting.
// Rows are "seq,timestamp,temperature,humidity,verdict,reason".
func WriteDecisionsCSV(w io.Writer, decisions []domain.Decision) error {
	cw := csv.NewWriter(w)
	for _, d := range decisions {
		row := []string{
			strconv.FormatUint(uint64(d.Frame.Seq), 10),
			d.Frame.Timestamp.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(d.Frame.Temperature, 'f', -1, 64),
			strconv.FormatFloat(d.Frame.Humidity, 'f', -1, 64),
			d.Verdict.String(),
			d.Reason.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
