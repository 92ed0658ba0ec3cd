package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// RealPublisher publishes over a live broker connection.
type RealPublisher struct {
	client pahomqtt.Client
}

func NewRealPublisher(broker string) (*RealPublisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("stairlight-controller").
		SetAutoReconnect(true).
		SetConnectRetry(true)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to broker %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker %s: %w", broker, err)
	}

	log.Info().Str("broker", broker).Msg("Connected to MQTT broker")
	return &RealPublisher{client: client}, nil
}

func (p *RealPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (p *RealPublisher) Close() {
	p.client.Disconnect(250)
}
