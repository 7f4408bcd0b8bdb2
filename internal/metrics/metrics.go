package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cognitive_documents_processed_total",
			Help: "Documents that completed the pipeline, by outcome",
		},
		[]string{"outcome"}, // published, short_circuit, failed
	)

	EntitiesExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cognitive_entities_extracted_total",
			Help: "High-confidence entities accepted by the extractor",
		},
	)

	HallucinationsFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cognitive_hallucinations_flagged_total",
			Help: "Entities that failed reference validation",
		},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cognitive_stage_duration_seconds",
			Help: "Time spent in each pipeline stage",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(DocumentsProcessed)
	prometheus.MustRegister(EntitiesExtracted)
	prometheus.MustRegister(HallucinationsFlagged)
	prometheus.MustRegister(StageDuration)
}
