// Package mqttsink publishes the essential frames of a run to an MQTT broker,
// the transmit boundary for deployments where the uplink is a message bus
// rather than an ingestion API.
package mqttsink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/sensorwire/framegate/internal/domain"
	"github.com/sensorwire/framegate/internal/ports"
	"github.com/sensorwire/framegate/internal/selection"
)

// Config holds MQTT connection settings.
type Config struct {
	// Broker is the broker URL, e.g. "tcp://localhost:1883".
	Broker string

	// ClientID identifies this node to the broker.
	ClientID string

	// TopicPrefix is prepended to the "/frames" and "/summary" topics,
	// e.g. "sensor/node-1".
	TopicPrefix string

	Username string
	Password string
}

// Publisher implements ports.FrameSink over MQTT. Frame images go to
// <prefix>/frames one message per frame, the run summary to <prefix>/summary,
// both at QoS 1.
type Publisher struct {
	client mqtt.Client
	logger ports.Logger
	prefix string
}

// NewPublisher connects to the broker and creates a publisher.
func NewPublisher(cfg Config, logger ports.Logger) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqttsink: connect %s: %w", cfg.Broker, token.Error())
	}

	logger.Info("connected to broker", ports.String("broker", cfg.Broker))
	return &Publisher{client: client, logger: logger, prefix: cfg.TopicPrefix}, nil
}

// SendEssential publishes the essential subsequence of one run.
func (p *Publisher) SendEssential(ctx context.Context, frames []domain.Frame, summary selection.Summary) error {
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		token := p.client.Publish(p.prefix+"/frames", 1, false, f.Encode())
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("mqttsink: publish frame %d: %w", f.Seq, token.Error())
		}
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("mqttsink: marshal summary: %w", err)
	}
	token := p.client.Publish(p.prefix+"/summary", 1, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqttsink: publish summary: %w", token.Error())
	}

	p.logger.Info("published essential frames",
		ports.String("topic", p.prefix+"/frames"),
		ports.Int("frames", len(frames)),
	)
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
