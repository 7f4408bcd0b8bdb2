package feed

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/newsmesh/cognition/internal/config"
)

// Consumer reads raw article messages from the inbound topic. Commits are
// manual so an offset only advances after the document's result (or its
// dead-letter record) has been durably published: at-least-once processing.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     cfg.GroupID,
			Topic:       cfg.RawTopic,
			StartOffset: kafka.FirstOffset,
		}),
	}
}

func (c *Consumer) Fetch(ctx context.Context) (kafka.Message, error) {
	return c.reader.FetchMessage(ctx)
}

func (c *Consumer) Commit(ctx context.Context, msg kafka.Message) error {
	return c.reader.CommitMessages(ctx, msg)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
