// Package httpsink ships the essential frames of a run to an ingestion
// service over HTTP.
package httpsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sensorwire/framegate/internal/domain"
	"github.com/sensorwire/framegate/internal/ports"
	"github.com/sensorwire/framegate/internal/selection"
)

const framesEndpoint = "/v1/ingest/essential-frames"

// frameMeta is the manifest entry describing one transmitted frame.
type frameMeta struct {
	Seq         uint32    `json:"seq"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// manifest describes the whole upload.
type manifest struct {
	Summary selection.Summary `json:"summary"`
	Frames  []frameMeta       `json:"frames"`
}

// Sender implements ports.FrameSink over HTTP. The upload is multipart: a
// JSON manifest plus the concatenated fixed-size frame images.
type Sender struct {
	client  ports.HTTPClient
	logger  ports.Logger
	baseURL string
}

// NewSender creates an HTTP frame sender targeting baseURL.
func NewSender(client ports.HTTPClient, logger ports.Logger, baseURL string) *Sender {
	return &Sender{client: client, logger: logger, baseURL: baseURL}
}

// SendEssential transmits the essential subsequence of one run.
// An empty subsequence is a no-op.
func (s *Sender) SendEssential(ctx context.Context, frames []domain.Frame, summary selection.Summary) error {
	if len(frames) == 0 {
		return nil
	}

	m := manifest{Summary: summary, Frames: make([]frameMeta, len(frames))}
	for i, f := range frames {
		m.Frames[i] = frameMeta{
			Seq:         f.Seq,
			Timestamp:   f.Timestamp,
			Temperature: f.Temperature,
			Humidity:    f.Humidity,
		}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	manifestJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPart, err := writer.CreateFormField("manifest")
	if err != nil {
		return fmt.Errorf("create manifest field: %w", err)
	}
	if _, err := manifestPart.Write(manifestJSON); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	framesPart, err := writer.CreateFormFile("frames", "frames.bin")
	if err != nil {
		return fmt.Errorf("create frames field: %w", err)
	}
	for _, f := range frames {
		if _, err := framesPart.Write(f.Encode()); err != nil {
			return fmt.Errorf("write frame %d: %w", f.Seq, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart: %w", err)
	}

	url := s.baseURL + framesEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Info("shipped essential frames",
		ports.Int("frames", len(frames)),
		ports.Int("bytes", len(frames)*domain.FrameSize),
	)
	return nil
}
