// Package kafka publishes request status changes to a Kafka topic with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event-type"

// Writer is the subset of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// StatusChangedMessage is the JSON payload of one status change.
type StatusChangedMessage struct {
	RequestID  string    `json:"request_id"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	DriverID   *string   `json:"driver_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is a ports.EventPublisher writing one message per event, keyed by request id
// so every change of one request lands on the same partition in order.
type Publisher struct {
	writer Writer
	logger *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates an asynchronous writer: WriteMessages only enqueues and delivery
// errors are reported to the logger from the writer's completion callback.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	logger = logger.With("component", "kafka-publisher", "topic", topic)
	w := &skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []skafka.Message, err error) {
			if err != nil {
				logger.Error("status events not delivered", "count", len(messages), "error", err)
			}
		},
	}
	return &Publisher{writer: w, logger: logger}
}

// NewPublisherWithWriter allows injecting a test writer.
func NewPublisherWithWriter(w Writer, logger *slog.Logger) *Publisher {
	return &Publisher{writer: w, logger: logger.With("component", "kafka-publisher")}
}

func (p *Publisher) Publish(ctx context.Context, events ...request.StatusChanged) {
	if len(events) == 0 {
		return
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(toMessage(e))
		if err != nil {
			p.logger.ErrorContext(ctx, "failed to encode status event", "request_id", e.RequestID, "error", err)
			continue
		}
		msgs = append(msgs, skafka.Message{
			Key:     []byte(e.RequestID.String()),
			Value:   value,
			Time:    e.OccurredAt,
			Headers: []skafka.Header{{Key: eventTypeHeader, Value: []byte("request.status_changed")}},
		})
	}

	// The lifecycle change is already stored; a cancelled caller must not drop the event.
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msgs...); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish status events", "count", len(msgs), "error", err)
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(e request.StatusChanged) StatusChangedMessage {
	m := StatusChangedMessage{
		RequestID:  e.RequestID.String(),
		To:         e.To.String(),
		OccurredAt: e.OccurredAt,
	}
	if e.From != request.Unknown {
		m.From = e.From.String()
	}
	if e.DriverID != nil {
		id := e.DriverID.String()
		m.DriverID = &id
	}
	return m
}
