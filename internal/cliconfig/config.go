package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sensorwire/framegate/internal/domain"
	"github.com/sensorwire/framegate/internal/selection"
)

// Config holds CLI configuration for framegate.
type Config struct {
	// Selection thresholds. Required, no implicit defaults: defaulting a
	// threshold would silently change which frames get transmitted.
	TemperatureThreshold float64
	HumidityThreshold    float64
	MaxSuppressedRun     int

	// Physical bounds for frame validation.
	MinTemperature float64
	MaxTemperature float64

	// Sample acquisition: a CSV file, or a live weather query.
	SamplesFile string
	Location    string
	StartDate   string
	EndDate     string
	WeatherKey  string
	WeatherURL  string

	// Transmit sinks, each optional.
	IngestURL       string
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string
	MQTTUsername    string
	MQTTPassword    string

	// Presentation and state.
	DecisionsOut string
	StateDir     string

	// Run behavior.
	Watch         bool
	WatchInterval time.Duration
	HTTPTimeout   time.Duration
}

// DefaultConfig returns a Config with defaults for everything except the
// selection thresholds, which the user must supply explicitly.
func DefaultConfig() Config {
	bounds := domain.DefaultBounds()
	return Config{
		MinTemperature:  bounds.MinTemperature,
		MaxTemperature:  bounds.MaxTemperature,
		MQTTClientID:    "framegate",
		MQTTTopicPrefix: "sensor/framegate",
		StateDir:        ".",
		WatchInterval:   time.Hour,
		HTTPTimeout:     15 * time.Second,
		WeatherKey:      os.Getenv("FRAMEGATE_WEATHER_KEY"),
	}
}

// SelectionConfig converts the CLI view into the core selection config.
func (c *Config) SelectionConfig() selection.Config {
	return selection.Config{
		TemperatureThreshold: c.TemperatureThreshold,
		HumidityThreshold:    c.HumidityThreshold,
		MaxSuppressedRun:     c.MaxSuppressedRun,
	}
}

// Bounds converts the CLI view into the frame validation bounds.
func (c *Config) Bounds() domain.Bounds {
	return domain.Bounds{MinTemperature: c.MinTemperature, MaxTemperature: c.MaxTemperature}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.SelectionConfig().Validate(); err != nil {
		return err
	}

	if c.MinTemperature >= c.MaxTemperature {
		return fmt.Errorf("min-temp must be below max-temp")
	}

	if c.SamplesFile == "" && c.Location == "" {
		return fmt.Errorf("either samples (CSV file) or location (weather query) is required")
	}
	if c.SamplesFile == "" {
		if c.StartDate == "" || c.EndDate == "" {
			return fmt.Errorf("from and to dates are required for a weather query")
		}
	}

	// Ensure no trailing slash on sink URLs
	if n := len(c.IngestURL); n > 0 && c.IngestURL[n-1] == '/' {
		c.IngestURL = c.IngestURL[:n-1]
	}

	if c.Watch && c.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if non-zero and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloatFromString parses a string to float64 and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setIntFromString parses a string to int and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
