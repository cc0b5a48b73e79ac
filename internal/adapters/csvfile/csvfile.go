// Package csvfile reads and writes sample series as CSV files, the exchange
// format between the fetch step and the pipeline. Rows are
// "timestamp,temperature,humidity" with no header.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sensorwire/framegate/internal/source"
)

const timestampLayout = "2006-01-02 15:04:05"

// Provider reads samples from a CSV file. It implements ports.SampleProvider.
type Provider struct {
	path string
}

// NewProvider creates a provider over the given CSV file path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Samples reads and parses the whole file, preserving row order.
func (p *Provider) Samples(ctx context.Context) ([]source.Sample, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvfile: read %s: %w", p.path, err)
	}

	samples := make([]source.Sample, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("csvfile: row %d: %w", i+1, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseRow(rec []string) (source.Sample, error) {
	ts, err := time.Parse(timestampLayout, rec[0])
	if err != nil {
		return source.Sample{}, fmt.Errorf("timestamp %q: %w", rec[0], err)
	}
	temp, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return source.Sample{}, fmt.Errorf("temperature %q: %w", rec[1], err)
	}
	humi, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return source.Sample{}, fmt.Errorf("humidity %q: %w", rec[2], err)
	}
	return source.Sample{Timestamp: ts, Temperature: temp, Humidity: humi}, nil
}

// WriteSamples persists a sample series to path, overwriting any existing file.
func WriteSamples(path string, samples []source.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvfile: create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, s := range samples {
		row := []string{
			s.Timestamp.Format(timestampLayout),
			strconv.FormatFloat(s.Temperature, 'f', -1, 64),
			strconv.FormatFloat(s.Humidity, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csvfile: write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvfile: flush: %w", err)
	}
	return f.Close()
}
