package impact

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/core/common"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/llm"
	"github.com/newsmesh/cognition/internal/logging"
)

// Summarizer produces the executive-level business impact assessment.
type Summarizer struct {
	llm llm.Client
	log *logrus.Entry
}

func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{
		llm: client,
		log: logging.New("impact-summarizer"),
	}
}

type summaryResponse struct {
	Summary         string   `json:"summary"`
	Severity        int      `json:"severity"`
	AffectedSectors []string `json:"affected_sectors"`
	KeyStakeholders []string `json:"key_stakeholders"`
}

// GenerateSummary builds a severity-scored two-sentence assessment from the
// validated entities and relationships. Summarization is non-fatal to the
// document: any inference or decode failure yields the fixed degraded
// summary instead of an error.
func (s *Summarizer) GenerateSummary(ctx context.Context, articleText string, entities []model.Entity, relationships []model.CausalRelationship) model.ImpactSummary {
	response, err := s.llm.Generate(ctx, buildSummaryPrompt(articleText, entities, relationships))
	if err != nil {
		s.log.WithError(err).Error("Impact summarization failed")
		return degradedSummary()
	}

	parsed, err := common.ParseJSON[summaryResponse](response)
	if err != nil {
		s.log.WithError(err).Error("Failed to parse LLM response as JSON")
		return degradedSummary()
	}

	summary, err := buildSummary(parsed)
	if err != nil {
		s.log.WithError(err).Error("Rejected malformed impact summary")
		return degradedSummary()
	}

	s.log.WithFields(logrus.Fields{
		"severity": summary.Severity,
		"sectors":  len(summary.AffectedSectors),
	}).Info("Impact summary generated")

	return summary
}

func buildSummary(parsed summaryResponse) (model.ImpactSummary, error) {
	if parsed.Summary == "" {
		return model.ImpactSummary{}, fmt.Errorf("summary text is empty")
	}
	if parsed.Severity < 1 || parsed.Severity > 10 {
		return model.ImpactSummary{}, fmt.Errorf("severity %d out of range", parsed.Severity)
	}

	// The length cap is in characters; truncating bytes could split a rune.
	text := parsed.Summary
	if runes := []rune(text); len(runes) > model.MaxSummaryLength {
		text = string(runes[:model.MaxSummaryLength])
	}

	stakeholders := parsed.KeyStakeholders
	if stakeholders == nil {
		stakeholders = []string{}
	}

	return model.ImpactSummary{
		Summary:         text,
		Severity:        parsed.Severity,
		AffectedSectors: dedupeSectors(parsed.AffectedSectors),
		KeyStakeholders: stakeholders,
	}, nil
}

// dedupeSectors removes repeated sector names, preserving first-seen order.
func dedupeSectors(sectors []string) []string {
	seen := mapset.NewSet[string]()
	out := make([]string, 0, len(sectors))
	for _, sector := range sectors {
		if seen.Add(sector) {
			out = append(out, sector)
		}
	}
	return out
}

// degradedSummary is the fixed low-confidence fallback the caller receives
// when summarization cannot complete.
func degradedSummary() model.ImpactSummary {
	return model.ImpactSummary{
		Summary:         "Unable to generate impact summary due to processing error.",
		Severity:        1,
		AffectedSectors: []string{"Unknown"},
		KeyStakeholders: []string{},
	}
}
