// Package publisher streams stored audit events to Kafka for downstream
// compliance consumers.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	audit "tutela/pkg/platform/audit"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic. Events are keyed by
// user so all of one person's training history lands on one partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// KafkaOption configures a KafkaSink.
type KafkaOption func(*KafkaSink)

// WithLogger sets the logger for delivery failures.
func WithLogger(logger *slog.Logger) KafkaOption {
	return func(s *KafkaSink) { s.logger = logger }
}

// NewKafkaSink wraps an existing client. The caller owns the client's
// lifecycle; call Close to flush buffered records before closing it.
func NewKafkaSink(client *kgo.Client, topic string, opts ...KafkaOption) *KafkaSink {
	s := &KafkaSink{
		client: client,
		topic:  topic,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish produces the event asynchronously. Delivery failures are logged,
// not returned: the durable store already holds the event, the stream is a
// best-effort mirror.
func (s *KafkaSink) Publish(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.UserID.String()),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			s.logger.Warn("audit kafka produce failed",
				"topic", r.Topic,
				"action", event.Action,
				"error", err,
			)
		}
	})
	return nil
}

// Close flushes any buffered records.
func (s *KafkaSink) Close(ctx context.Context) error {
	return s.client.Flush(ctx)
}
