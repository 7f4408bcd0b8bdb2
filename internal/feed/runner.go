package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/core"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/logging"
	"github.com/newsmesh/cognition/internal/metrics"
)

// MessageSource is the inbound feed: fetch one message, commit it once its
// outcome is durable.
type MessageSource interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msg kafka.Message) error
}

// ResultSink is the outbound feed plus the dead-letter channel.
type ResultSink interface {
	PublishResult(ctx context.Context, result *model.StructuredResult) error
	PublishDeadLetter(ctx context.Context, articleID string, cause error) error
}

// Runner is the consume-process-publish loop. Documents are handled one at
// a time end to end; a failure on one document dead-letters it and never
// halts consumption of the next.
type Runner struct {
	source   MessageSource
	sink     ResultSink
	pipeline *core.Pipeline
	log      *logrus.Entry
}

func NewRunner(source MessageSource, sink ResultSink, pipeline *core.Pipeline) *Runner {
	return &Runner{
		source:   source,
		sink:     sink,
		pipeline: pipeline,
		log:      logging.New("feed-runner"),
	}
}

// Run consumes until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("Feed runner started")
	for {
		msg, err := r.source.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				r.log.Info("Feed runner stopping")
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		// Commit only once the outcome (result or dead letter) is durable;
		// otherwise leave the offset so the message is redelivered.
		if !r.handle(ctx, msg) {
			continue
		}
		if err := r.source.Commit(ctx, msg); err != nil {
			r.log.WithError(err).Error("Failed to commit offset")
		}
	}
}

// handle is the per-message error boundary: whatever goes wrong inside it
// is logged with the document identifier and dead-lettered. It reports
// whether the message's outcome was durably published and its offset may
// be committed.
func (r *Runner) handle(ctx context.Context, msg kafka.Message) bool {
	var article model.RawArticle
	if err := json.Unmarshal(msg.Value, &article); err != nil {
		r.log.WithError(err).Error("Failed to decode inbound message")
		return r.deadLetter(ctx, article.ArticleID, fmt.Errorf("malformed inbound message: %w", err))
	}

	result, err := r.pipeline.Process(ctx, article)
	if err != nil {
		r.log.WithError(err).WithField("article_id", article.ArticleID).Error("Pipeline failed for document")
		return r.deadLetter(ctx, article.ArticleID, err)
	}

	if err := r.sink.PublishResult(ctx, result); err != nil {
		r.log.WithError(err).WithField("article_id", article.ArticleID).Error("Failed to publish structured result")
		return r.deadLetter(ctx, article.ArticleID, err)
	}

	r.log.WithField("article_id", article.ArticleID).Info("Published structured result")
	return true
}

func (r *Runner) deadLetter(ctx context.Context, articleID string, cause error) bool {
	metrics.DocumentsProcessed.WithLabelValues("failed").Inc()
	if err := r.sink.PublishDeadLetter(ctx, articleID, cause); err != nil {
		r.log.WithError(err).WithField("article_id", articleID).Error("Failed to publish dead letter")
		return false
	}
	return true
}
