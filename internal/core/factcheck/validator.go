package factcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/logging"
	"github.com/newsmesh/cognition/internal/lookup"
)

// CompanyLookup checks a company name against a business registry.
type CompanyLookup interface {
	SearchCompany(ctx context.Context, name string) (lookup.Result, error)
}

// KnowledgeLookup checks a named entity against a general knowledge graph.
type KnowledgeLookup interface {
	SearchEntity(ctx context.Context, name, typeHint string) (lookup.Result, error)
}

// Validator corroborates extracted entities against external reference
// knowledge bases and flags the ones it cannot, as probable hallucinations.
// Lookups are cached per (name, type) and rate-limited between uncached
// calls to respect third-party usage limits.
type Validator struct {
	registry  CompanyLookup
	knowledge KnowledgeLookup
	cache     *Cache
	limiter   *rate.Limiter
	log       *logrus.Entry
}

func NewValidator(registry CompanyLookup, knowledge KnowledgeLookup, lookupDelay time.Duration) *Validator {
	if lookupDelay <= 0 {
		lookupDelay = 100 * time.Millisecond
	}
	return &Validator{
		registry:  registry,
		knowledge: knowledge,
		cache:     NewCache(),
		limiter:   rate.NewLimiter(rate.Every(lookupDelay), 1),
		log:       logging.New("fact-validator"),
	}
}

// ValidateBatch checks each entity and splits the batch into corroborated
// entities and human-readable hallucination flags. Validation may only
// lower an entity's confidence, never raise it. Entities of unrecognized
// type pass through unvalidated and are never flagged.
func (v *Validator) ValidateBatch(ctx context.Context, entities []model.Entity) ([]model.Entity, []string) {
	validated := make([]model.Entity, 0, len(entities))
	var flags []string

	for _, ent := range entities {
		switch ent.Type {
		case model.EntityTypeCompany, model.EntityTypePerson, model.EntityTypeLocation, model.EntityTypeEvent:
		default:
			// Unknown type: pass through with original confidence.
			ent = withMetadata(ent, map[string]interface{}{"validation": "skipped"})
			validated = append(validated, ent)
			continue
		}

		result := v.validateOne(ctx, ent)

		if !result.Validated {
			reason := result.Reason
			if reason == "" {
				reason = "unknown"
			}
			flags = append(flags, fmt.Sprintf("%s (%s): %s", ent.Name, ent.Type, reason))
			v.log.WithFields(logrus.Fields{
				"entity_name": ent.Name,
				"entity_type": ent.Type,
				"reason":      reason,
			}).Warn("Entity failed validation")
			continue
		}

		if result.Confidence < ent.Confidence {
			ent.Confidence = result.Confidence
		}
		ent = withMetadata(ent, result.Metadata)
		validated = append(validated, ent)

		v.log.WithFields(logrus.Fields{
			"entity_name":          ent.Name,
			"entity_type":          ent.Type,
			"validated_confidence": ent.Confidence,
		}).Info("Entity validated")
	}

	v.log.WithFields(logrus.Fields{
		"total_entities": len(entities),
		"validated":      len(validated),
		"hallucinations": len(flags),
	}).Info("Batch validation complete")

	return validated, flags
}

// validateOne routes the entity to the right reference lookup. A transport
// failure is indistinguishable from a legitimate not-found: the entity is
// flagged either way and never retried at this layer.
func (v *Validator) validateOne(ctx context.Context, ent model.Entity) lookup.Result {
	if cached, ok := v.cache.Get(ent.Name, ent.Type); ok {
		return cached
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return lookup.Result{Validated: false, Reason: "lookup_cancelled"}
	}

	var (
		result lookup.Result
		err    error
	)
	if ent.Type == model.EntityTypeCompany {
		result, err = v.registry.SearchCompany(ctx, ent.Name)
	} else {
		result, err = v.knowledge.SearchEntity(ctx, ent.Name, ent.Type)
	}
	if err != nil {
		v.log.WithError(err).WithField("entity_name", ent.Name).Error("Reference lookup failed")
		result = lookup.Result{Validated: false, Reason: "lookup_error"}
	}

	v.cache.Put(ent.Name, ent.Type, result)
	return result
}

func withMetadata(ent model.Entity, extra map[string]interface{}) model.Entity {
	if len(extra) == 0 {
		return ent
	}
	if ent.Metadata == nil {
		ent.Metadata = make(map[string]interface{}, len(extra))
	}
	for k, val := range extra {
		ent.Metadata[k] = val
	}
	return ent
}
