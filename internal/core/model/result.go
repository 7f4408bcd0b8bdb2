package model

import "time"

// StructuredResult is the outbound feed message: one document's validated
// entities, causal relationships and impact assessment, plus processing
// provenance. Downstream consumers must treat ArticleID as an idempotency
// key since at-least-once delivery can duplicate results.
type StructuredResult struct {
	ArticleID           string               `json:"article_id"`
	Entities            []Entity             `json:"entities"`
	Relationships       []CausalRelationship `json:"relationships"`
	ImpactSummary       ImpactSummary        `json:"impact_summary"`
	ProcessingTimestamp time.Time            `json:"processing_timestamp"`
	LLMModelUsed        string               `json:"llm_model_used"`
	FactCheckPassed     bool                 `json:"fact_check_passed"`
	HallucinationFlags  []string             `json:"hallucination_flags"`
}
