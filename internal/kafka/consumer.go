package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader MessageReader
	logger logrus.FieldLogger
}

func NewConsumer(brokers []string, groupID, topic string, logger logrus.FieldLogger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger.WithField("component", "kafka-consumer"),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConsumeEvents decodes booking events and hands them to handler. Messages
// that are not valid events are logged and skipped.
func (c *Consumer) ConsumeEvents(ctx context.Context, handler func(context.Context, domain.BookingEvent) error) error {
	return c.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		var event domain.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.ID == "" {
			c.logger.WithFields(logrus.Fields{
				"offset":    msg.Offset,
				"partition": msg.Partition,
			}).WithError(err).Warn("skipping malformed event")
			return nil
		}
		return handler(ctx, event)
	})
}
