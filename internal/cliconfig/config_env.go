package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FRAMEGATE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setFloatFromString("temp-threshold", os.Getenv("FRAMEGATE_TEMPERATURE_THRESHOLD"), &cfg.TemperatureThreshold); err != nil {
		return err
	}
	if err := s.setFloatFromString("humi-threshold", os.Getenv("FRAMEGATE_HUMIDITY_THRESHOLD"), &cfg.HumidityThreshold); err != nil {
		return err
	}
	if err := s.setIntFromString("max-suppressed-run", os.Getenv("FRAMEGATE_MAX_SUPPRESSED_RUN"), &cfg.MaxSuppressedRun); err != nil {
		return err
	}

	if err := s.setFloatFromString("min-temp", os.Getenv("FRAMEGATE_MIN_TEMPERATURE"), &cfg.MinTemperature); err != nil {
		return err
	}
	if err := s.setFloatFromString("max-temp", os.Getenv("FRAMEGATE_MAX_TEMPERATURE"), &cfg.MaxTemperature); err != nil {
		return err
	}

	s.setString("samples", os.Getenv("FRAMEGATE_SAMPLES_FILE"), &cfg.SamplesFile)
	s.setString("location", os.Getenv("FRAMEGATE_LOCATION"), &cfg.Location)
	s.setString("from", os.Getenv("FRAMEGATE_START_DATE"), &cfg.StartDate)
	s.setString("to", os.Getenv("FRAMEGATE_END_DATE"), &cfg.EndDate)
	s.setString("weather-key", os.Getenv("FRAMEGATE_WEATHER_KEY"), &cfg.WeatherKey)
	s.setString("weather-url", os.Getenv("FRAMEGATE_WEATHER_URL"), &cfg.WeatherURL)

	s.setString("ingest-url", os.Getenv("FRAMEGATE_INGEST_URL"), &cfg.IngestURL)
	s.setString("mqtt-broker", os.Getenv("FRAMEGATE_MQTT_BROKER"), &cfg.MQTTBroker)
	s.setString("mqtt-client-id", os.Getenv("FRAMEGATE_MQTT_CLIENT_ID"), &cfg.MQTTClientID)
	s.setString("mqtt-topic", os.Getenv("FRAMEGATE_MQTT_TOPIC_PREFIX"), &cfg.MQTTTopicPrefix)
	s.setString("mqtt-username", os.Getenv("FRAMEGATE_MQTT_USERNAME"), &cfg.MQTTUsername)
	s.setString("mqtt-password", os.Getenv("FRAMEGATE_MQTT_PASSWORD"), &cfg.MQTTPassword)

	s.setString("decisions-out", os.Getenv("FRAMEGATE_DECISIONS_OUT"), &cfg.DecisionsOut)
	s.setString("state-dir", os.Getenv("FRAMEGATE_STATE_DIR"), &cfg.StateDir)

	s.setBoolFromString("watch", os.Getenv("FRAMEGATE_WATCH"), &cfg.Watch)
	if err := s.setDuration("watch-interval", os.Getenv("FRAMEGATE_WATCH_INTERVAL"), &cfg.WatchInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("FRAMEGATE_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	return nil
}
