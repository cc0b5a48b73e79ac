package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	TemperatureThreshold float64 `toml:"temperature_threshold"`
	HumidityThreshold    float64 `toml:"humidity_threshold"`
	MaxSuppressedRun     int     `toml:"max_suppressed_run"`

	MinTemperature float64 `toml:"min_temperature"`
	MaxTemperature float64 `toml:"max_temperature"`

	SamplesFile string `toml:"samples_file"`
	Location    string `toml:"location"`
	StartDate   string `toml:"start_date"`
	EndDate     string `toml:"end_date"`
	WeatherKey  string `toml:"weather_key"`
	WeatherURL  string `toml:"weather_url"`

	IngestURL       string `toml:"ingest_url"`
	MQTTBroker      string `toml:"mqtt_broker"`
	MQTTClientID    string `toml:"mqtt_client_id"`
	MQTTTopicPrefix string `toml:"mqtt_topic_prefix"`
	MQTTUsername    string `toml:"mqtt_username"`
	MQTTPassword    string `toml:"mqtt_password"`

	DecisionsOut string `toml:"decisions_out"`
	StateDir     string `toml:"state_dir"`

	Watch         *bool  `toml:"watch"`
	WatchInterval string `toml:"watch_interval"`
	HTTPTimeout   string `toml:"http_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.framegate/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".framegate", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setFloat("temp-threshold", fc.TemperatureThreshold, &cfg.TemperatureThreshold)
	s.setFloat("humi-threshold", fc.HumidityThreshold, &cfg.HumidityThreshold)
	s.setInt("max-suppressed-run", fc.MaxSuppressedRun, &cfg.MaxSuppressedRun)

	s.setFloat("min-temp", fc.MinTemperature, &cfg.MinTemperature)
	s.setFloat("max-temp", fc.MaxTemperature, &cfg.MaxTemperature)

	s.setString("samples", fc.SamplesFile, &cfg.SamplesFile)
	s.setString("location", fc.Location, &cfg.Location)
	s.setString("from", fc.StartDate, &cfg.StartDate)
	s.setString("to", fc.EndDate, &cfg.EndDate)
	s.setString("weather-key", fc.WeatherKey, &cfg.WeatherKey)
	s.setString("weather-url", fc.WeatherURL, &cfg.WeatherURL)

	s.setString("ingest-url", fc.IngestURL, &cfg.IngestURL)
	s.setString("mqtt-broker", fc.MQTTBroker, &cfg.MQTTBroker)
	s.setString("mqtt-client-id", fc.MQTTClientID, &cfg.MQTTClientID)
	s.setString("mqtt-topic", fc.MQTTTopicPrefix, &cfg.MQTTTopicPrefix)
	s.setString("mqtt-username", fc.MQTTUsername, &cfg.MQTTUsername)
	s.setString("mqtt-password", fc.MQTTPassword, &cfg.MQTTPassword)

	s.setString("decisions-out", fc.DecisionsOut, &cfg.DecisionsOut)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)

	s.setBool("watch", fc.Watch, &cfg.Watch)
	if err := s.setDuration("watch-interval", fc.WatchInterval, &cfg.WatchInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
