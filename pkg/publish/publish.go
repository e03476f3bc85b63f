// Package publish pushes stored register values to controllers over MQTT,
// one retained message per field under <prefix>/<form>/<field>.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

// Client is the part of a paho client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

// Config describes the broker connection used by Connect.
type Config struct {
	Broker      string        `yaml:"broker"`
	ClientID    string        `yaml:"clientId"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	TopicPrefix string        `yaml:"topicPrefix"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Option customises a Publisher.
type Option func(*Publisher)

// WithTopicPrefix sets the first topic segment. Defaults to "ssi".
func WithTopicPrefix(prefix string) Option {
	return func(p *Publisher) {
		if trimmed := strings.Trim(strings.TrimSpace(prefix), "/"); trimmed != "" {
			p.prefix = trimmed
		}
	}
}

// WithQoS sets the delivery guarantee. Defaults to 1.
func WithQoS(qos byte) Option {
	return func(p *Publisher) {
		p.qos = qos
	}
}

// WithRetained toggles the retained flag. Defaults to true so controllers
// pick up the latest value when they reconnect.
func WithRetained(retained bool) Option {
	return func(p *Publisher) {
		p.retained = retained
	}
}

// WithTimeout bounds how long each publish waits for the broker.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Publisher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for publish diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Publisher maps form values onto MQTT topics.
type Publisher struct {
	client   Client
	prefix   string
	qos      byte
	retained bool
	timeout  time.Duration
	logger   logrus.FieldLogger
}

// New wraps an already connected client.
func New(client Client, options ...Option) *Publisher {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	p := &Publisher{
		client:   client,
		prefix:   "ssi",
		qos:      1,
		retained: true,
		timeout:  5 * time.Second,
		logger:   discard,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Connect dials the broker described by cfg and returns a publisher on it.
func Connect(cfg Config, options ...Option) (*Publisher, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, errors.New("publish: broker is required")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "ssiform"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetryInterval(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("publish: connect %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("publish: connect %s: %w", cfg.Broker, err)
	}

	options = append([]Option{WithTopicPrefix(cfg.TopicPrefix)}, options...)
	return New(client, options...), nil
}

// Message is one topic/payload pair.
type Message struct {
	Topic   string
	Payload []byte
}

// Messages flattens values into one message per leaf field, sorted by
// topic. Nested objects add topic segments.
func (p *Publisher) Messages(formID string, values map[string]any) ([]Message, error) {
	form := strings.Trim(strings.TrimSpace(formID), "/")
	if form == "" {
		return nil, errors.New("publish: form id is required")
	}
	var messages []Message
	var walk func(prefix string, values map[string]any) error
	walk = func(prefix string, values map[string]any) error {
		for key, value := range values {
			topic := prefix + "/" + key
			if nested, ok := value.(map[string]any); ok {
				if err := walk(topic, nested); err != nil {
					return err
				}
				continue
			}
			payload, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("publish: encode %s: %w", topic, err)
			}
			messages = append(messages, Message{Topic: topic, Payload: payload})
		}
		return nil
	}
	if err := walk(p.prefix+"/"+form, values); err != nil {
		return nil, err
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].Topic < messages[j].Topic })
	return messages, nil
}

// Publish sends every field of values and waits for each acknowledgement.
// Failures are collected so one bad topic does not stop the rest.
func (p *Publisher) Publish(ctx context.Context, formID string, values map[string]any) error {
	if p == nil || p.client == nil {
		return errors.New("publish: client not configured")
	}
	messages, err := p.Messages(formID, values)
	if err != nil {
		return err
	}

	var errs []error
	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		token := p.client.Publish(msg.Topic, p.qos, p.retained, msg.Payload)
		if !token.WaitTimeout(p.timeout) {
			errs = append(errs, fmt.Errorf("publish: %s: timeout", msg.Topic))
			continue
		}
		if err := token.Error(); err != nil {
			errs = append(errs, fmt.Errorf("publish: %s: %w", msg.Topic, err))
			continue
		}
		p.logger.WithFields(logrus.Fields{"topic": msg.Topic, "form": formID}).Debug("value published")
	}
	if len(errs) > 0 {
		p.logger.WithFields(logrus.Fields{"form": formID, "failed": len(errs)}).Warn("publish incomplete")
	}
	return errors.Join(errs...)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p != nil && p.client != nil {
		p.client.Disconnect(250)
	}
}
