// Package weather acquires historical weather observations to play the role
// of the simulated sensor. It fetches hourly temperature and humidity from
// the WorldWeatherOnline past-weather API and adapts them into raw samples.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sensorwire/framegate/internal/ports"
	"github.com/sensorwire/framegate/internal/source"
)

// DefaultBaseURL is the past-weather endpoint.
const DefaultBaseURL = "https://api.worldweatheronline.com/premium/v1/past-weather.ashx"

const dateLayout = "2006-01-02"

// Query identifies the location and period to fetch hourly observations for.
type Query struct {
	// Location is the place name or coordinates, e.g. "kolkata".
	Location string

	// StartDate and EndDate bound the period, formatted 2006-01-02.
	StartDate string
	EndDate   string

	// APIKey authenticates against the weather service.
	APIKey string
}

// Client fetches historical samples. It implements ports.SampleProvider.
type Client struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
	baseURL    string
	query      Query
}

// NewClient creates a weather client. baseURL may be empty to use the default.
func NewClient(httpClient ports.HTTPClient, logger ports.Logger, baseURL string, query Query) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
		query:      query,
	}
}

// apiResponse mirrors the slice of the past-weather payload we consume.
// Numeric values arrive as strings.
type apiResponse struct {
	Data struct {
		Weather []struct {
			Date   string `json:"date"`
			Hourly []struct {
				Time     string `json:"time"`
				TempC    string `json:"tempC"`
				Humidity string `json:"humidity"`
			} `json:"hourly"`
		} `json:"weather"`
	} `json:"data"`
}

// Samples fetches and flattens the hourly observations, ascending by time.
func (c *Client) Samples(ctx context.Context) ([]source.Sample, error) {
	if c.query.Location == "" {
		return nil, fmt.Errorf("weather: location is required")
	}
	if c.query.APIKey == "" {
		return nil, fmt.Errorf("weather: api key is required")
	}

	params := url.Values{}
	params.Set("q", c.query.Location)
	params.Set("date", c.query.StartDate)
	params.Set("enddate", c.query.EndDate)
	params.Set("tp", "1") // hourly resolution
	params.Set("format", "json")
	params.Set("key", c.query.APIKey)

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather: server returned %d: %s", resp.StatusCode, string(body))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}

	samples, err := flatten(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched weather history",
		ports.String("location", c.query.Location),
		ports.Int("samples", len(samples)),
		ports.Duration("elapsed", time.Since(start)),
	)
	return samples, nil
}

// flatten converts the day/hour nesting into a flat ascending sample series.
func flatten(payload apiResponse) ([]source.Sample, error) {
	var samples []source.Sample
	for _, day := range payload.Data.Weather {
		date, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			return nil, fmt.Errorf("weather: parse date %q: %w", day.Date, err)
		}
		for _, h := range day.Hourly {
			// Hour-of-day encoded as "0", "100", ... "2300".
			raw, err := strconv.Atoi(h.Time)
			if err != nil {
				return nil, fmt.Errorf("weather: parse hour %q: %w", h.Time, err)
			}
			temp, err := strconv.ParseFloat(h.TempC, 64)
			if err != nil {
				return nil, fmt.Errorf("weather: parse tempC %q: %w", h.TempC, err)
			}
			humi, err := strconv.ParseFloat(h.Humidity, 64)
			if err != nil {
				return nil, fmt.Errorf("weather: parse humidity %q: %w", h.Humidity, err)
			}
			samples = append(samples, source.Sample{
				Timestamp:   date.Add(time.Duration(raw/100) * time.Hour),
				Temperature: temp,
				Humidity:    humi,
			})
		}
	}
	return samples, nil
}
