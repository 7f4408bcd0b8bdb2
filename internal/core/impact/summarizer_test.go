package impact

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/newsmesh/cognition/internal/core/model"
)

var pharmaEntities = []model.Entity{
	{Name: "FDA", Type: model.EntityTypeCompany, Confidence: 0.95},
	{Name: "PharmaCorp", Type: model.EntityTypeCompany, Confidence: 0.92, Industry: "Pharmaceuticals"},
}

var pharmaRelationships = []model.CausalRelationship{
	{
		Subject:    pharmaEntities[0],
		Action:     "REJECTS",
		Object:     pharmaEntities[1],
		Sentiment:  -0.9,
		Confidence: 0.95,
		Reasoning:  "Regulatory rejection blocks the drug launch.",
	},
}

const pharmaArticle = "The FDA rejected PharmaCorp's flagship drug application."

func TestGenerateSummarySuccess(t *testing.T) {
	mockJSON := `{
		"summary": "The FDA rejection removes PharmaCorp's primary revenue catalyst. Expect downward pressure on the pharmaceutical sector.",
		"severity": 8,
		"affected_sectors": ["Pharmaceuticals", "Biotechnology"],
		"key_stakeholders": ["PharmaCorp investors", "Patients"]
	}`
	mockLLM := &MockLLMClient{Response: mockJSON}
	summarizer := NewSummarizer(mockLLM)

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, pharmaRelationships)

	assert.Equal(t, 8, summary.Severity)
	assert.Equal(t, []string{"Pharmaceuticals", "Biotechnology"}, summary.AffectedSectors)
	assert.Equal(t, []string{"PharmaCorp investors", "Patients"}, summary.KeyStakeholders)
	assert.Contains(t, summary.Summary, "FDA rejection")
	assert.Equal(t, 1, mockLLM.Calls)
}

func TestGenerateSummaryDedupesSectors(t *testing.T) {
	mockJSON := `{
		"summary": "Sector-wide impact expected.",
		"severity": 5,
		"affected_sectors": ["Technology", "Finance", "Technology"],
		"key_stakeholders": []
	}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, pharmaRelationships)

	assert.Equal(t, []string{"Technology", "Finance"}, summary.AffectedSectors)
}

func TestGenerateSummaryAcceptsEmptySectors(t *testing.T) {
	mockJSON := `{"summary": "Quiet day with no sector impact.", "severity": 1, "affected_sectors": []}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.Equal(t, "Quiet day with no sector impact.", summary.Summary)
	assert.Equal(t, 1, summary.Severity)
	assert.NotNil(t, summary.AffectedSectors)
	assert.Empty(t, summary.AffectedSectors)
}

func TestGenerateSummaryTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", model.MaxSummaryLength+200)
	mockJSON := `{"summary": "` + long + `", "severity": 3, "affected_sectors": ["Energy"]}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.Len(t, summary.Summary, model.MaxSummaryLength)
}

func TestGenerateSummaryTruncatesByCharactersNotBytes(t *testing.T) {
	long := strings.Repeat("株", model.MaxSummaryLength+50)
	mockJSON := `{"summary": "` + long + `", "severity": 4, "affected_sectors": ["Finance"]}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.Equal(t, model.MaxSummaryLength, utf8.RuneCountInString(summary.Summary))
	assert.True(t, utf8.ValidString(summary.Summary))
}

func TestGenerateSummaryKeepsShortMultibyteText(t *testing.T) {
	text := strings.Repeat("株", 200) // 600 bytes, well under the character cap
	mockJSON := `{"summary": "` + text + `", "severity": 4, "affected_sectors": ["Finance"]}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.Equal(t, text, summary.Summary)
}

func TestGenerateSummaryNilStakeholdersBecomesEmpty(t *testing.T) {
	mockJSON := `{"summary": "Minor impact.", "severity": 2, "affected_sectors": ["Retail"]}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.NotNil(t, summary.KeyStakeholders)
	assert.Empty(t, summary.KeyStakeholders)
}

func TestGenerateSummaryDegradedOnInferenceError(t *testing.T) {
	summarizer := NewSummarizer(&MockLLMClient{Err: errors.New("timeout")})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, pharmaRelationships)

	assert.Equal(t, "Unable to generate impact summary due to processing error.", summary.Summary)
	assert.Equal(t, 1, summary.Severity)
	assert.Equal(t, []string{"Unknown"}, summary.AffectedSectors)
	assert.Empty(t, summary.KeyStakeholders)
}

func TestGenerateSummaryDegradedOnBadJSON(t *testing.T) {
	summarizer := NewSummarizer(&MockLLMClient{Response: "not json at all"})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.Equal(t, 1, summary.Severity)
	assert.Equal(t, []string{"Unknown"}, summary.AffectedSectors)
}

func TestGenerateSummaryRejectsOutOfRangeSeverity(t *testing.T) {
	mockJSON := `{"summary": "Catastrophic.", "severity": 11, "affected_sectors": ["Everything"]}`
	summarizer := NewSummarizer(&MockLLMClient{Response: mockJSON})

	summary := summarizer.GenerateSummary(context.Background(), pharmaArticle, pharmaEntities, nil)

	assert.Equal(t, 1, summary.Severity, "out-of-range severity falls back to the degraded summary")
	assert.Equal(t, []string{"Unknown"}, summary.AffectedSectors)
}
