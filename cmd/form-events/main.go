// Command form-events tails the form events topic and logs every event.
// It is the reference consumer for the events the API publishes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/form-service/internal/config"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := utils.ToSlogLogger(utils.NewLogger(cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	subscriber, err := events.NewKafkaSubscriber(events.SubscriberConfig{
		KafkaBrokers:  cfg.Events.GetKafkaBrokers(),
		ConsumerGroup: "form-events-tail",
		Logger:        logger,
	})
	if err != nil {
		logger.Error("Failed to create subscriber", "error", err)
		os.Exit(1)
	}
	defer subscriber.Close()

	logger.Info("Listening for form events", "topic", cfg.Events.FormTopic, "brokers", cfg.Events.KafkaBrokers)

	err = events.Consume(ctx, subscriber, cfg.Events.FormTopic, logger, func(_ context.Context, event *events.Event) error {
		logger.Info("Form event",
			"event_id", event.ID,
			"event_type", event.Type,
			"timestamp", event.Timestamp,
			"data", event.Data)
		return nil
	})
	if err != nil {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}
}
