package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"FRAMEGATE_TEMPERATURE_THRESHOLD": "2.5",
				"FRAMEGATE_HUMIDITY_THRESHOLD":    "12",
				"FRAMEGATE_MAX_SUPPRESSED_RUN":    "5",
				"FRAMEGATE_SAMPLES_FILE":          "/data/input.csv",
				"FRAMEGATE_WATCH_INTERVAL":        "30m",
				"FRAMEGATE_WATCH":                 "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				TemperatureThreshold: 2.5,
				HumidityThreshold:    12,
				MaxSuppressedRun:     5,
				SamplesFile:          "/data/input.csv",
				WatchInterval:        30 * time.Minute,
				Watch:                true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"FRAMEGATE_SAMPLES_FILE": "/env/input.csv",
				"FRAMEGATE_LOCATION":     "kolkata",
			},
			changed: map[string]bool{"samples": true},
			initial: Config{SamplesFile: "/flag/input.csv"},
			expected: Config{
				SamplesFile: "/flag/input.csv",
				Location:    "kolkata",
			},
		},
		{
			name: "returns error for invalid float",
			envVars: map[string]string{
				"FRAMEGATE_TEMPERATURE_THRESHOLD": "not-a-float",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"FRAMEGATE_MAX_SUPPRESSED_RUN": "not-a-number",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"FRAMEGATE_WATCH_INTERVAL": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"FRAMEGATE_WATCH": "1",
			},
			changed:  map[string]bool{},
			expected: Config{Watch: true},
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"FRAMEGATE_WATCH": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{Watch: true},
			expected: Config{Watch: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
