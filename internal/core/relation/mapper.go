package relation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/core/common"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/llm"
	"github.com/newsmesh/cognition/internal/logging"
)

// Mapper proposes directed causal edges between a document's entities.
type Mapper struct {
	llm llm.Client
	log *logrus.Entry
}

func NewMapper(client llm.Client) *Mapper {
	return &Mapper{
		llm: client,
		log: logging.New("causal-mapper"),
	}
}

// ExtractRelationships returns Subject -> Action -> Object edges drawn from
// the given entity set. With fewer than two entities no causal edge can
// exist, so it returns empty without calling the inference capability.
// Inference or decode failures also yield an empty list, never an error.
func (m *Mapper) ExtractRelationships(ctx context.Context, articleText string, entities []model.Entity) []model.CausalRelationship {
	if len(entities) < 2 {
		m.log.Info("Not enough entities to form relationships")
		return nil
	}

	response, err := m.llm.Generate(ctx, buildMappingPrompt(articleText, entities))
	if err != nil {
		m.log.WithError(err).Error("Causal relationship extraction failed")
		return nil
	}

	elements, err := common.DecodeList(response, "relationships")
	if err != nil {
		m.log.WithError(err).Error("Failed to parse LLM response as JSON")
		return nil
	}

	known := knownNames(entities)

	relationships := make([]model.CausalRelationship, 0, len(elements))
	for _, raw := range elements {
		rel, err := parseRelationship(raw, known)
		if err != nil {
			m.log.WithError(err).Warn("Dropping unparseable relationship")
			continue
		}
		relationships = append(relationships, rel)
	}

	m.log.WithField("relationship_count", len(relationships)).Info("Extracted causal relationships")
	return relationships
}

// FilterByConfidence keeps relationships at or above the threshold. It is
// idempotent: re-filtering its own output with the same threshold returns
// the identical set.
func (m *Mapper) FilterByConfidence(relationships []model.CausalRelationship, threshold float64) []model.CausalRelationship {
	filtered := make([]model.CausalRelationship, 0, len(relationships))
	for _, r := range relationships {
		if r.Confidence >= threshold {
			filtered = append(filtered, r)
		}
	}

	m.log.WithFields(logrus.Fields{
		"threshold":      threshold,
		"original_count": len(relationships),
		"filtered_count": len(filtered),
	}).Info("Filtered relationships by confidence")

	return filtered
}

// parseRelationship reconstructs one edge, normalizing the action verb to
// uppercase and rejecting edges that reference entities outside the
// document's entity set.
func parseRelationship(raw json.RawMessage, known map[string]bool) (model.CausalRelationship, error) {
	var rel model.CausalRelationship
	if err := json.Unmarshal(raw, &rel); err != nil {
		return model.CausalRelationship{}, err
	}

	if rel.Subject.Name == "" || rel.Object.Name == "" {
		return model.CausalRelationship{}, fmt.Errorf("relationship missing subject or object")
	}
	if rel.Action == "" {
		return model.CausalRelationship{}, fmt.Errorf("relationship missing action")
	}
	if rel.Reasoning == "" {
		return model.CausalRelationship{}, fmt.Errorf("relationship missing reasoning")
	}
	if rel.Sentiment < -1 || rel.Sentiment > 1 {
		return model.CausalRelationship{}, fmt.Errorf("sentiment %v out of range", rel.Sentiment)
	}
	if rel.Confidence < 0 || rel.Confidence > 1 {
		return model.CausalRelationship{}, fmt.Errorf("confidence %v out of range", rel.Confidence)
	}
	if !known[strings.ToLower(rel.Subject.Name)] || !known[strings.ToLower(rel.Object.Name)] {
		return model.CausalRelationship{}, fmt.Errorf("relationship references entity outside the document's entity set")
	}

	rel.Action = strings.ToUpper(rel.Action)
	return rel, nil
}

func knownNames(entities []model.Entity) map[string]bool {
	known := make(map[string]bool, len(entities))
	for _, e := range entities {
		known[strings.ToLower(e.Name)] = true
	}
	return known
}
