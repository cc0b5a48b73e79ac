package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sensorwire/framegate/internal/source"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input_data.csv")

	samples := []source.Sample{
		{Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Temperature: 18, Humidity: 62},
		{Timestamp: time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC), Temperature: 17.5, Humidity: 64.25},
	}
	if err := WriteSamples(path, samples); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}

	got, err := NewProvider(path).Samples(context.Background())
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("samples = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if !got[i].Timestamp.Equal(samples[i].Timestamp) {
			t.Errorf("row %d: timestamp = %v, want %v", i, got[i].Timestamp, samples[i].Timestamp)
		}
		if got[i].Temperature != samples[i].Temperature || got[i].Humidity != samples[i].Humidity {
			t.Errorf("row %d: readings = (%v, %v), want (%v, %v)", i,
				got[i].Temperature, got[i].Humidity, samples[i].Temperature, samples[i].Humidity)
		}
	}
}

func TestSamplesMalformedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "2023-01-01 00:00:00,18,62\n2023-01-01 01:00:00,not-a-number,64\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewProvider(path).Samples(context.Background()); err == nil {
		t.Fatal("expected error for malformed row")
	}
}

func TestSamplesMissingFile(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "nope.csv"))
	if _, err := p.Samples(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
