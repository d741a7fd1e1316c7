package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	UserRegistered  = "user_registered"
	UserLoggedIn    = "user_logged_in"
	PasswordChanged = "password_changed"
	ProductAdded    = "product_added"
	OrderPlaced     = "order_placed"
	BalanceToppedUp = "balance_topped_up"
)

const defaultWriteWait = 2 * time.Second

type Event struct {
	Type    string         `json:"type"`
	UserID  uint           `json:"user_id"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafka(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           defaultWriteWait,
			AllowAutoTopicCreation: true,
		},
	}
}

// Encode renders e as a kafka message keyed by user id so one user's events stay ordered.
func Encode(e Event) (kafka.Message, error) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(e.UserID), 10)),
		Value: data,
		Time:  e.At,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := Encode(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultWriteWait)
	defer cancel()
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s failed: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
