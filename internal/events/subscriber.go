package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler processes one decoded event. A returned error nacks the message.
type EventHandler func(ctx context.Context, event *Event) error

type SubscriberConfig struct {
	KafkaBrokers  []string
	ConsumerGroup string
	Logger        *slog.Logger
}

// NewKafkaSubscriber creates a consumer-group subscriber for the events topic
func NewKafkaSubscriber(config SubscriberConfig) (message.Subscriber, error) {
	saramaConfig := kafka.DefaultSaramaSubscriberConfig()

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               config.KafkaBrokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: saramaConfig,
		ConsumerGroup:         config.ConsumerGroup,
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}
	return subscriber, nil
}

// Consume reads events from topic until ctx is done or the subscriber closes.
// Undecodable messages are acked and skipped so they cannot block the topic.
func Consume(ctx context.Context, subscriber message.Subscriber, topic string, logger *slog.Logger, handle EventHandler) error {
	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Warn("Skipping undecodable event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}

			if err := handle(msg.Context(), &event); err != nil {
				logger.Error("Event handler failed", "event_id", event.ID, "event_type", event.Type, "error", err)
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}
}
