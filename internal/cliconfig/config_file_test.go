package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
temperature_threshold = 2.0
humidity_threshold = 10.0
max_suppressed_run = 3
samples_file = "input_data.csv"
location = "kolkata"
start_date = "2023-01-01"
end_date = "2023-01-31"
ingest_url = "https://ingest.example.com"
mqtt_broker = "tcp://localhost:1883"
watch = true
watch_interval = "45m"
http_timeout = "20s"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	if fc.TemperatureThreshold != 2.0 || fc.HumidityThreshold != 10.0 {
		t.Errorf("thresholds = (%v, %v)", fc.TemperatureThreshold, fc.HumidityThreshold)
	}
	if fc.MaxSuppressedRun != 3 {
		t.Errorf("max_suppressed_run = %d", fc.MaxSuppressedRun)
	}
	if fc.Location != "kolkata" {
		t.Errorf("location = %q", fc.Location)
	}
	if fc.Watch == nil || !*fc.Watch {
		t.Error("watch not parsed as true")
	}
	if fc.WatchInterval != "45m" {
		t.Errorf("watch_interval = %q", fc.WatchInterval)
	}
}

func TestLoadFileConfigInvalidTOML(t *testing.T) {
	path := writeConfigFile(t, "temperature_threshold = [not valid")
	if _, err := LoadFileConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	fc := FileConfig{
		TemperatureThreshold: 1.5,
		HumidityThreshold:    8,
		MaxSuppressedRun:     4,
		SamplesFile:          "/file/input.csv",
		WatchInterval:        "30m",
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.TemperatureThreshold != 1.5 || cfg.HumidityThreshold != 8 {
		t.Errorf("thresholds not applied: %+v", cfg)
	}
	if cfg.SamplesFile != "/file/input.csv" {
		t.Errorf("samples file not applied: %q", cfg.SamplesFile)
	}
	if cfg.WatchInterval != 30*time.Minute {
		t.Errorf("watch interval = %v", cfg.WatchInterval)
	}
}

func TestApplyFileConfigRespectsChangedFlags(t *testing.T) {
	fc := FileConfig{SamplesFile: "/file/input.csv", Location: "kolkata"}

	cfg := DefaultConfig()
	cfg.SamplesFile = "/flag/input.csv"
	changed := map[string]bool{"samples": true}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatal(err)
	}

	if cfg.SamplesFile != "/flag/input.csv" {
		t.Errorf("flag value overridden: %q", cfg.SamplesFile)
	}
	if cfg.Location != "kolkata" {
		t.Errorf("unchanged field not applied: %q", cfg.Location)
	}
}

func TestApplyFileConfigInvalidDuration(t *testing.T) {
	fc := FileConfig{WatchInterval: "soon"}
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfigFile(t, "")
	if !FileExists(path) {
		t.Error("existing file reported missing")
	}
	if FileExists(filepath.Join(t.TempDir(), "nope.toml")) {
		t.Error("missing file reported existing")
	}
}
