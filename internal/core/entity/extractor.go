package entity

import (
	"context"
	"encoding/json"

	"github.com/jdkato/prose/v2"
	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/core/common"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/llm"
	"github.com/newsmesh/cognition/internal/logging"
)

// nerBaseConfidence is the provisional score for first-pass tagger hits;
// the LLM pass re-scores everything it keeps.
const nerBaseConfidence = 0.75

// nerLabelMap translates statistical tagger labels to pipeline entity types.
var nerLabelMap = map[string]string{
	"PERSON": model.EntityTypePerson,
	"ORG":    model.EntityTypeCompany,
	"GPE":    model.EntityTypeLocation,
	"LOC":    model.EntityTypeLocation,
	"EVENT":  model.EntityTypeEvent,
}

// taggedEntity is a first-pass hit handed to the LLM pass as context.
type taggedEntity struct {
	Name       string
	Type       string
	Confidence float64
}

// Extractor turns raw article text into typed, confidence-scored entities.
// Pass one runs a fast statistical NER tagger; pass two asks the inference
// capability to classify and enrich, with the tagger hits as optional
// context. The final list is filtered at the configured threshold.
type Extractor struct {
	llm       llm.Client
	threshold float64
	log       *logrus.Entry
}

func NewExtractor(client llm.Client, threshold float64) *Extractor {
	return &Extractor{
		llm:       client,
		threshold: threshold,
		log:       logging.New("entity-extractor"),
	}
}

// Extract runs both passes. It never returns an error: a failed inference
// call yields an empty list, which the orchestrator treats as the
// short-circuit signal. A short list signals nothing by itself.
func (e *Extractor) Extract(ctx context.Context, articleText string) []model.Entity {
	provisional := e.tagWithNER(articleText)

	refined := e.refineWithLLM(ctx, articleText, provisional)

	accepted := make([]model.Entity, 0, len(refined))
	for _, ent := range refined {
		if ent.Confidence >= e.threshold {
			accepted = append(accepted, ent)
		}
	}

	e.log.WithFields(logrus.Fields{
		"provisional":     len(provisional),
		"refined":         len(refined),
		"high_confidence": len(accepted),
	}).Info("Entity extraction complete")

	return accepted
}

// tagWithNER is the first pass. It never fails hard: a tagger error just
// means the LLM pass runs without provisional context.
func (e *Extractor) tagWithNER(text string) []taggedEntity {
	doc, err := prose.NewDocument(text)
	if err != nil {
		e.log.WithError(err).Warn("NER tagging failed, continuing without provisional entities")
		return nil
	}

	var tagged []taggedEntity
	for _, ent := range doc.Entities() {
		entityType, ok := nerLabelMap[ent.Label]
		if !ok {
			continue
		}
		tagged = append(tagged, taggedEntity{
			Name:       ent.Text,
			Type:       entityType,
			Confidence: nerBaseConfidence,
		})
	}

	e.log.WithField("entity_count", len(tagged)).Debug("NER pass complete")
	return tagged
}

func (e *Extractor) refineWithLLM(ctx context.Context, text string, provisional []taggedEntity) []model.Entity {
	names := make([]string, 0, len(provisional))
	for _, t := range provisional {
		names = append(names, t.Name)
	}

	response, err := e.llm.Generate(ctx, buildExtractionPrompt(text, names))
	if err != nil {
		e.log.WithError(err).Error("LLM entity extraction failed")
		return nil
	}

	elements, err := common.DecodeList(response, "entities")
	if err != nil {
		e.log.WithError(err).Error("Failed to parse LLM response as JSON")
		return nil
	}

	entities := make([]model.Entity, 0, len(elements))
	for _, raw := range elements {
		ent, err := parseEntity(raw)
		if err != nil {
			// One bad element never aborts the batch.
			e.log.WithError(err).Warn("Dropping unparseable entity")
			continue
		}
		entities = append(entities, ent)
	}

	return entities
}

// parseEntity decodes a single response element and lifts known metadata
// keys into the typed convenience fields.
func parseEntity(raw json.RawMessage) (model.Entity, error) {
	var ent model.Entity
	if err := json.Unmarshal(raw, &ent); err != nil {
		return model.Entity{}, err
	}
	if err := validateEntity(ent); err != nil {
		return model.Entity{}, err
	}

	if ent.Metadata != nil {
		ent.Industry = metadataString(ent.Metadata, "industry")
		ent.Role = metadataString(ent.Metadata, "role")
		ent.Country = metadataString(ent.Metadata, "country")
		ent.Severity = metadataString(ent.Metadata, "severity")
	}
	return ent, nil
}

func metadataString(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}
