package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/core/entity"
	"github.com/newsmesh/cognition/internal/core/factcheck"
	"github.com/newsmesh/cognition/internal/core/impact"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/core/relation"
	"github.com/newsmesh/cognition/internal/llm"
	"github.com/newsmesh/cognition/internal/logging"
	"github.com/newsmesh/cognition/internal/metrics"
)

// Stage names a document's position in the pipeline state machine. A
// document is terminal on PUBLISHED or on the first unrecoverable error.
type Stage string

const (
	StageReceived            Stage = "RECEIVED"
	StageEntitiesExtracted   Stage = "ENTITIES_EXTRACTED"
	StageRelationshipsMapped Stage = "RELATIONSHIPS_MAPPED"
	StageFactChecked         Stage = "FACT_CHECKED"
	StageSummarized          Stage = "SUMMARIZED"
	StagePublished           Stage = "PUBLISHED"
)

// Options carries the tunables the orchestrator and its stages need.
type Options struct {
	ModelID               string
	EntityThreshold       float64
	RelationshipThreshold float64
	LookupDelay           time.Duration
}

// Pipeline drives one document through extraction, causal mapping,
// validation and summarization, and assembles the structured result. It is
// the only component that knows the full sequence; each stage is
// independently testable against shared data types.
type Pipeline struct {
	extractor  *entity.Extractor
	mapper     *relation.Mapper
	validator  *factcheck.Validator
	summarizer *impact.Summarizer

	modelID               string
	relationshipThreshold float64
	log                   *logrus.Entry
}

func NewPipeline(client llm.Client, registry factcheck.CompanyLookup, knowledge factcheck.KnowledgeLookup, opts Options) *Pipeline {
	return &Pipeline{
		extractor:             entity.NewExtractor(client, opts.EntityThreshold),
		mapper:                relation.NewMapper(client),
		validator:             factcheck.NewValidator(registry, knowledge, opts.LookupDelay),
		summarizer:            impact.NewSummarizer(client),
		modelID:               opts.ModelID,
		relationshipThreshold: opts.RelationshipThreshold,
		log:                   logging.New("cognitive-processor"),
	}
}

// Process runs the full pipeline for one document. Stages swallow their own
// recoverable failures per the error policy; the only errors surfacing here
// are context cancellations, which the caller's message boundary handles.
func (p *Pipeline) Process(ctx context.Context, article model.RawArticle) (*model.StructuredResult, error) {
	start := time.Now()
	log := p.log.WithFields(logrus.Fields{
		"article_id": article.ArticleID,
		"run_id":     uuid.New().String(),
		"source":     article.Source,
	})
	log.WithField("stage", StageReceived).Info("Processing article")

	var entities []model.Entity
	p.timed(StageEntitiesExtracted, func() {
		entities = p.extractor.Extract(ctx, article.Content)
	})
	metrics.EntitiesExtracted.Add(float64(len(entities)))

	if len(entities) == 0 {
		// Running the remaining stages on zero entities would be wasted
		// work; publish the minimal result directly.
		log.Warn("No entities extracted, short-circuiting")
		metrics.DocumentsProcessed.WithLabelValues("short_circuit").Inc()
		return p.minimalResult(article.ArticleID), nil
	}
	log.WithField("stage", StageEntitiesExtracted).WithField("entity_count", len(entities)).Info("Entities extracted")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var relationships []model.CausalRelationship
	p.timed(StageRelationshipsMapped, func() {
		rels := p.mapper.ExtractRelationships(ctx, article.Content, entities)
		relationships = p.mapper.FilterByConfidence(rels, p.relationshipThreshold)
	})
	log.WithField("stage", StageRelationshipsMapped).WithField("relationship_count", len(relationships)).Info("Relationships mapped")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		validated []model.Entity
		flags     []string
	)
	p.timed(StageFactChecked, func() {
		validated, flags = p.validator.ValidateBatch(ctx, entities)
	})
	metrics.HallucinationsFlagged.Add(float64(len(flags)))

	factCheckPassed := len(flags) == 0
	if !factCheckPassed {
		log.WithFields(logrus.Fields{
			"stage":               StageFactChecked,
			"hallucination_count": len(flags),
			"flags":               flags,
		}).Warn("Hallucinations detected")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var summary model.ImpactSummary
	p.timed(StageSummarized, func() {
		summary = p.summarizer.GenerateSummary(ctx, article.Content, validated, relationships)
	})

	result := &model.StructuredResult{
		ArticleID:           article.ArticleID,
		Entities:            validated,
		Relationships:       relationships,
		ImpactSummary:       summary,
		ProcessingTimestamp: time.Now().UTC(),
		LLMModelUsed:        p.modelID,
		FactCheckPassed:     factCheckPassed,
		HallucinationFlags:  flagsOrEmpty(flags),
	}

	metrics.DocumentsProcessed.WithLabelValues("published").Inc()
	log.WithFields(logrus.Fields{
		"stage":                   StageSummarized,
		"processing_time_seconds": time.Since(start).Seconds(),
		"entity_count":            len(validated),
		"relationship_count":      len(relationships),
		"severity":                summary.Severity,
	}).Info("Article processing complete")

	return result, nil
}

// minimalResult is the short-circuit output for a document with no
// accepted entities: nothing to validate means the fact check passes.
func (p *Pipeline) minimalResult(articleID string) *model.StructuredResult {
	return &model.StructuredResult{
		ArticleID:     articleID,
		Entities:      []model.Entity{},
		Relationships: []model.CausalRelationship{},
		ImpactSummary: model.ImpactSummary{
			Summary:         "No significant entities or impact detected.",
			Severity:        1,
			AffectedSectors: []string{},
			KeyStakeholders: []string{},
		},
		ProcessingTimestamp: time.Now().UTC(),
		LLMModelUsed:        p.modelID,
		FactCheckPassed:     true,
		HallucinationFlags:  []string{},
	}
}

func (p *Pipeline) timed(stage Stage, fn func()) {
	timer := prometheus.NewTimer(metrics.StageDuration.WithLabelValues(string(stage)))
	defer timer.ObserveDuration()
	fn()
}

func flagsOrEmpty(flags []string) []string {
	if flags == nil {
		return []string{}
	}
	return flags
}
