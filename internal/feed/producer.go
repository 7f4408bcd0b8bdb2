package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/newsmesh/cognition/internal/config"
	"github.com/newsmesh/cognition/internal/core/model"
)

// DeadLetter records a document the pipeline could not process, published
// for observability instead of being silently skipped.
type DeadLetter struct {
	ArticleID string    `json:"article_id"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failed_at"`
}

// Producer publishes structured results and dead-letter records. Messages
// are keyed by article id so one document always lands on one partition.
type Producer struct {
	structured *kafka.Writer
	deadLetter *kafka.Writer
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	return &Producer{
		structured: newWriter(cfg.Brokers, cfg.StructuredTopic),
		deadLetter: newWriter(cfg.Brokers, cfg.DeadLetterTopic),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func (p *Producer) PublishResult(ctx context.Context, result *model.StructuredResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode structured result: %w", err)
	}
	err = p.structured.WriteMessages(ctx, kafka.Message{
		Key:   []byte(result.ArticleID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish structured result: %w", err)
	}
	return nil
}

func (p *Producer) PublishDeadLetter(ctx context.Context, articleID string, cause error) error {
	value, err := json.Marshal(DeadLetter{
		ArticleID: articleID,
		Error:     cause.Error(),
		FailedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode dead letter: %w", err)
	}
	err = p.deadLetter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(articleID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish dead letter: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if err := p.structured.Close(); err != nil {
		return err
	}
	return p.deadLetter.Close()
}
