package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/sensorwire/framegate/internal/adapters/csvfile"
	"github.com/sensorwire/framegate/internal/adapters/httpsink"
	"github.com/sensorwire/framegate/internal/adapters/mqttsink"
	"github.com/sensorwire/framegate/internal/adapters/render"
	"github.com/sensorwire/framegate/internal/adapters/weather"
	"github.com/sensorwire/framegate/internal/app"
	"github.com/sensorwire/framegate/internal/cliconfig"
	"github.com/sensorwire/framegate/internal/ports"
	"github.com/sensorwire/framegate/internal/source"
	"github.com/sensorwire/framegate/internal/watcher"
	"github.com/sensorwire/framegate/pkg/log"
)

const helpDescription = `
Simulate a power-aware sensor node: replay a temperature/humidity series
through the essential frame selector and see how many frames actually need
to cross the radio link.

Highlights:
  - Send-on-delta selection with a periodic keep-alive so receivers never go silent.
  - Replays historical weather data as the simulated sensor; bring your own CSV or fetch live.
  - Ships the essential frames to an ingestion URL or an MQTT broker, or just reports the reduction.
  - Configure via file, env (FRAMEGATE_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  framegate fetch --location kolkata --from 2023-01-01 --to 2023-01-31 --out input_data.csv
  framegate run --samples input_data.csv --temp-threshold 2.0 --humi-threshold 10.0 --max-suppressed-run 3
  framegate run --config $HOME/.framegate/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var fetchOut string

	zlog := cliconfig.Logger()

	// Optional .env for the weather API key; absence is fine.
	if cliconfig.FileExists(".env") {
		if err := godotenv.Load(); err != nil {
			zlog.Warn().Err(err).Msg("failed to load .env")
		}
	}

	// loadConfig applies file and env configuration under flag precedence.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		return cliconfig.ApplyEnvConfig(&cfg, changed)
	}

	root := &cobra.Command{
		Use:     "framegate",
		Short:   "Decide frame by frame what a sensor node actually needs to transmit",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch historical weather samples into a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if cfg.Location == "" || cfg.StartDate == "" || cfg.EndDate == "" {
				return fmt.Errorf("location, from, and to are required")
			}

			ctx, cancel := signalContext()
			defer cancel()

			logger := log.NewZerologAdapterWithLogger(zlog)
			client := weather.NewClient(
				&http.Client{Timeout: cfg.HTTPTimeout},
				logger, cfg.WeatherURL,
				weather.Query{
					Location:  cfg.Location,
					StartDate: cfg.StartDate,
					EndDate:   cfg.EndDate,
					APIKey:    cfg.WeatherKey,
				},
			)

			samples, err := client.Samples(ctx)
			if err != nil {
				return err
			}
			if err := csvfile.WriteSamples(fetchOut, samples); err != nil {
				return err
			}
			logger.Info("wrote samples", log.String("path", fetchOut), log.Int("samples", len(samples)))
			return nil
		},
	}
	fetchCmd.Flags().StringVar(&fetchOut, "out", "input_data.csv", "output CSV path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Classify a sample series and report the frame reduction",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking the API key)
			logCfg := cfg
			if len(logCfg.WeatherKey) > 0 {
				logCfg.WeatherKey = "*****"
			}
			if len(logCfg.MQTTPassword) > 0 {
				logCfg.MQTTPassword = "*****"
			}
			zlog.Info().Interface("config", logCfg).Msg("configuration")

			ctx, cancel := signalContext()
			defer cancel()

			logger := log.NewZerologAdapterWithLogger(zlog)

			if err := runOnce(ctx, &cfg, logger); err != nil {
				return err
			}
			if !cfg.Watch {
				return nil
			}
			return watchLoop(ctx, &cfg, cfgPath, logger)
		},
	}

	// Selection flags
	runCmd.Flags().Float64Var(&cfg.TemperatureThreshold, "temp-threshold", cfg.TemperatureThreshold, "temperature change, in degrees, that makes a frame essential")
	runCmd.Flags().Float64Var(&cfg.HumidityThreshold, "humi-threshold", cfg.HumidityThreshold, "humidity change, in percentage points, that makes a frame essential")
	runCmd.Flags().IntVar(&cfg.MaxSuppressedRun, "max-suppressed-run", cfg.MaxSuppressedRun, "suppressed frames allowed before a keep-alive is forced (0 disables)")
	runCmd.Flags().Float64Var(&cfg.MinTemperature, "min-temp", cfg.MinTemperature, "lowest physically plausible temperature")
	runCmd.Flags().Float64Var(&cfg.MaxTemperature, "max-temp", cfg.MaxTemperature, "highest physically plausible temperature")

	// Sink flags
	runCmd.Flags().StringVar(&cfg.IngestURL, "ingest-url", cfg.IngestURL, "ship essential frames to this ingestion base URL")
	runCmd.Flags().StringVar(&cfg.MQTTBroker, "mqtt-broker", cfg.MQTTBroker, "publish essential frames to this MQTT broker")
	runCmd.Flags().StringVar(&cfg.MQTTClientID, "mqtt-client-id", cfg.MQTTClientID, "MQTT client identifier")
	runCmd.Flags().StringVar(&cfg.MQTTTopicPrefix, "mqtt-topic", cfg.MQTTTopicPrefix, "MQTT topic prefix")
	runCmd.Flags().StringVar(&cfg.MQTTUsername, "mqtt-username", cfg.MQTTUsername, "MQTT username")
	runCmd.Flags().StringVar(&cfg.MQTTPassword, "mqtt-password", cfg.MQTTPassword, "MQTT password")

	// Output flags
	runCmd.Flags().StringVar(&cfg.DecisionsOut, "decisions-out", cfg.DecisionsOut, "export the annotated decision stream to this CSV path")
	runCmd.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for status.json")

	// Watch flags
	runCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "replay on an interval, reloading config on change")
	runCmd.Flags().DurationVar(&cfg.WatchInterval, "watch-interval", cfg.WatchInterval, "replay interval in watch mode")

	// Shared acquisition flags
	for _, cmd := range []*cobra.Command{fetchCmd, runCmd} {
		cmd.Flags().StringVar(&cfg.SamplesFile, "samples", cfg.SamplesFile, "CSV file of timestamp,temperature,humidity samples")
		cmd.Flags().StringVar(&cfg.Location, "location", cfg.Location, "weather query location")
		cmd.Flags().StringVar(&cfg.StartDate, "from", cfg.StartDate, "weather query start date (2006-01-02)")
		cmd.Flags().StringVar(&cfg.EndDate, "to", cfg.EndDate, "weather query end date (2006-01-02)")
		cmd.Flags().StringVar(&cfg.WeatherKey, "weather-key", cfg.WeatherKey, "weather API key")
		cmd.Flags().StringVar(&cfg.WeatherURL, "weather-url", cfg.WeatherURL, "weather API base URL (override for testing)")
		if err := cmd.Flags().MarkHidden("weather-url"); err != nil {
			zlog.Info().Err(err).Msg("failed to hide weather-url flag")
		}
		cmd.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.framegate/config.toml)")
	root.AddCommand(fetchCmd, runCmd)

	if err := root.Execute(); err != nil {
		zlog.Error().Err(err).Msg("framegate")
		os.Exit(1)
	}
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// buildProvider selects the acquisition adapter for the configured source.
func buildProvider(cfg *cliconfig.Config, logger ports.Logger) ports.SampleProvider {
	if cfg.SamplesFile != "" {
		return csvfile.NewProvider(cfg.SamplesFile)
	}
	return weather.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		logger, cfg.WeatherURL,
		weather.Query{
			Location:  cfg.Location,
			StartDate: cfg.StartDate,
			EndDate:   cfg.EndDate,
			APIKey:    cfg.WeatherKey,
		},
	)
}

// runOnce executes one full acquisition and selection pass.
func runOnce(ctx context.Context, cfg *cliconfig.Config, logger ports.Logger) error {
	samples, err := buildProvider(cfg, logger).Samples(ctx)
	if err != nil {
		return err
	}

	src, err := source.New(samples, cfg.Bounds())
	if err != nil {
		return err
	}

	var frameSinks []ports.FrameSink
	if cfg.IngestURL != "" {
		frameSinks = append(frameSinks, httpsink.NewSender(
			&http.Client{Timeout: cfg.HTTPTimeout}, logger, cfg.IngestURL))
	}
	if cfg.MQTTBroker != "" {
		pub, err := mqttsink.NewPublisher(mqttsink.Config{
			Broker:      cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
			Username:    cfg.MQTTUsername,
			Password:    cfg.MQTTPassword,
		}, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		frameSinks = append(frameSinks, pub)
	}

	timeline := render.NewTimeline()
	pipeline, err := app.NewPipeline(cfg.SelectionConfig(), logger,
		[]ports.DecisionSink{timeline}, frameSinks)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, src)
	if result == nil {
		return err
	}

	if renderErr := timeline.Render(os.Stdout); renderErr != nil {
		return renderErr
	}

	if cfg.DecisionsOut != "" {
		f, createErr := os.Create(cfg.DecisionsOut)
		if createErr != nil {
			return createErr
		}
		if writeErr := render.WriteDecisionsCSV(f, result.Decisions); writeErr != nil {
			f.Close()
			return writeErr
		}
		if closeErr := f.Close(); closeErr != nil {
			return closeErr
		}
	}

	if saveErr := app.SaveStatus(cfg.StateDir, app.Status{
		LastRunAt: time.Now().UTC(),
		Summary:   result.Summary,
	}); saveErr != nil {
		logger.Error("failed to save status", log.Err(saveErr))
	}

	return err
}

// watchLoop replays runs on an interval, reloading configuration when the
// config file changes. A new configuration only applies to the next pass.
func watchLoop(ctx context.Context, cfg *cliconfig.Config, cfgPath string, logger ports.Logger) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	var w *watcher.Watcher
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		w = watcher.New(cfgFile, watcher.DefaultDebounce, logger)
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	ticker := time.NewTicker(cfg.WatchInterval)
	defer ticker.Stop()

	var reloads <-chan struct{}
	if w != nil {
		reloads = w.Reloads()
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping")
			return nil

		case <-reloads:
			next := *cfg
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				logger.Error("config reload failed", log.Err(err))
				continue
			}
			// Reload ignores flag precedence: an edited file is an
			// explicit instruction to change the running values.
			if err := cliconfig.ApplyFileConfig(&next, fc, map[string]bool{}); err != nil {
				logger.Error("config reload failed", log.Err(err))
				continue
			}
			if err := next.Validate(); err != nil {
				logger.Error("reloaded config invalid, keeping previous", log.Err(err))
				continue
			}
			*cfg = next
			ticker.Reset(cfg.WatchInterval)
			logger.Info("configuration reloaded")

		case <-ticker.C:
			if err := runOnce(ctx, cfg, logger); err != nil {
				logger.Error("run failed", log.Err(err))
			}
		}
	}
}
