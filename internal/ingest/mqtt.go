// Package ingest receives raw sensor values pushed by devices over MQTT and
// feeds them into simulated zones.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"irrigation_dashboard/internal/logger"
	"irrigation_dashboard/internal/models"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout    = 5 * time.Second
	maxConnectRetries = 4
	disconnectQuiesce = 250 // ms
	zoneWildcard      = "+"
)

var (
	errConnectTimeout = errors.New("mqtt connect timed out")
	errNoZoneWildcard = errors.New("mqtt topic needs one '+' level for the zone id")
	errBadPayload     = errors.New("payload is not a sensor value")
)

// ReadingSink receives pushed raw sensor values.
type ReadingSink interface {
	PushReading(ctx context.Context, zoneID int, raw float64) (models.ZoneState, error)
}

// Config selects the broker and the topic filter. The '+' level of Topic carries the zone id.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

// Subscriber pushes every message on Topic into the matching zone.
type Subscriber struct {
	cfg       Config
	sink      ReadingSink
	log       *logger.Logger
	zoneLevel int

	newClient  func(*mqtt.ClientOptions) mqtt.Client
	newBackOff func() backoff.BackOff
}

// NewSubscriber validates the topic filter and returns a Subscriber.
func NewSubscriber(cfg Config, sink ReadingSink, log *logger.Logger) (*Subscriber, error) {
	level := -1
	for i, part := range strings.Split(cfg.Topic, "/") {
		if part != zoneWildcard {
			continue
		}
		if level >= 0 {
			return nil, fmt.Errorf("%w: %q", errNoZoneWildcard, cfg.Topic)
		}
		level = i
	}
	if level < 0 {
		return nil, fmt.Errorf("%w: %q", errNoZoneWildcard, cfg.Topic)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Subscriber{
		cfg:        cfg,
		sink:       sink,
		log:        log,
		zoneLevel:  level,
		newClient:  mqtt.NewClient,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}, nil
}

// Run connects, subscribes and blocks until ctx is canceled.
func (s *Subscriber) Run(ctx context.Context) error {
	client, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(disconnectQuiesce)

	token := client.Subscribe(s.cfg.Topic, s.cfg.QoS, func(_ mqtt.Client, msg mqtt.Message) {
		if err := s.Handle(ctx, msg.Topic(), msg.Payload()); err != nil {
			s.log.Infow("mqtt_reading_dropped", "topic", msg.Topic(), "err", err)
		}
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", s.cfg.Topic, token.Error())
	}
	s.log.Infow("mqtt_subscribed", "broker", s.cfg.Broker, "topic", s.cfg.Topic)

	<-ctx.Done()
	client.Unsubscribe(s.cfg.Topic).WaitTimeout(connectTimeout)
	return nil
}

// connect dials the broker, retrying with exponential backoff.
func (s *Subscriber) connect(ctx context.Context) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(s.cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			s.log.Warnw("mqtt_connection_lost", "err", err)
		})
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
		opts.SetPassword(s.cfg.Password)
	}

	var client mqtt.Client
	bo := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), maxConnectRetries), ctx)
	err := backoff.Retry(func() error {
		c := s.newClient(opts)
		token := c.Connect()
		if !token.WaitTimeout(connectTimeout) {
			// A late connect would otherwise leave this client running.
			c.Disconnect(0)
			s.log.Warnw("mqtt_connect_timeout", "broker", s.cfg.Broker)
			return errConnectTimeout
		}
		if err := token.Error(); err != nil {
			c.Disconnect(0)
			s.log.Warnw("mqtt_connect_failed", "broker", s.cfg.Broker, "err", err)
			return err
		}
		client = c
		return nil
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", s.cfg.Broker, err)
	}
	return client, nil
}

// Handle parses one message and pushes it into its zone.
func (s *Subscriber) Handle(ctx context.Context, topic string, payload []byte) error {
	zoneID, err := s.zoneFromTopic(topic)
	if err != nil {
		return err
	}
	raw, err := ParsePayload(payload)
	if err != nil {
		return err
	}
	_, err = s.sink.PushReading(ctx, zoneID, raw)
	return err
}

func (s *Subscriber) zoneFromTopic(topic string) (int, error) {
	parts := strings.Split(topic, "/")
	if s.zoneLevel >= len(parts) {
		return 0, fmt.Errorf("topic %q has no zone level", topic)
	}
	id, err := strconv.Atoi(parts[s.zoneLevel])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("topic %q: invalid zone id %q", topic, parts[s.zoneLevel])
	}
	return id, nil
}

// ParsePayload accepts a bare number, {"sensor_value": n} or the firmware's {"moisture": n}.
func ParsePayload(payload []byte) (float64, error) {
	text := strings.TrimSpace(string(payload))
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, nil
	}
	var body struct {
		SensorValue *float64 `json:"sensor_value"`
		Moisture    *float64 `json:"moisture"`
	}
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return 0, fmt.Errorf("%w: %q", errBadPayload, text)
	}
	switch {
	case body.SensorValue != nil:
		return *body.SensorValue, nil
	case body.Moisture != nil:
		return *body.Moisture, nil
	default:
		return 0, fmt.Errorf("%w: %q", errBadPayload, text)
	}
}
