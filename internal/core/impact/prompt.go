package impact

import (
	"fmt"
	"strings"

	"github.com/newsmesh/cognition/internal/core/model"
)

const summaryInstructions = `You are a business analyst creating executive summaries of news impact.

Your task is to generate a 2-sentence summary that answers:
1. What happened? (first sentence: the core event)
2. Who cares? (second sentence: the stakeholders/industries affected)

Additionally provide:
- severity: integer from 1-10
  - 1-3: minor operational news
  - 4-6: significant market movement
  - 7-8: major industry disruption
  - 9-10: economy-wide crisis
- affected_sectors: list of industries impacted
- key_stakeholders: main parties who should care

CRITICAL RULES:
1. Be concise (max 2 sentences total).
2. Focus on BUSINESS IMPACT, not just the event itself.
3. Severity should match the actual economic consequence.
4. List specific industries, not vague categories.

Respond with a JSON object:
{"summary": "string (2 sentences, max 500 chars)", "severity": 1-10, "affected_sectors": ["Industry1"], "key_stakeholders": ["Stakeholder1"]}`

const summaryExample = `Example article:
"The FDA rejected PharmaCorp's new cancer drug application due to insufficient clinical trial data. The company's stock dropped 15% in after-hours trading."

Example response:
{
  "summary": "FDA's rejection of PharmaCorp's cancer drug halts a major revenue stream and threatens the company's growth trajectory. This affects pharmaceutical investors, oncology research partners, and potentially delays treatment options for cancer patients.",
  "severity": 7,
  "affected_sectors": ["Pharmaceuticals", "Healthcare", "Biotechnology", "Clinical Research"],
  "key_stakeholders": ["PharmaCorp shareholders", "Pharmaceutical supply chain partners", "Cancer treatment facilities"]
}`

func buildSummaryPrompt(articleText string, entities []model.Entity, relationships []model.CausalRelationship) string {
	var entityContext strings.Builder
	for _, e := range entities {
		if e.Industry != "" {
			fmt.Fprintf(&entityContext, "- %s (%s, %s)\n", e.Name, e.Type, e.Industry)
		} else {
			fmt.Fprintf(&entityContext, "- %s (%s)\n", e.Name, e.Type)
		}
	}

	var relationshipContext strings.Builder
	for _, r := range relationships {
		fmt.Fprintf(&relationshipContext, "- %s %s %s (sentiment %.2f)\n", r.Subject.Name, r.Action, r.Object.Name, r.Sentiment)
	}

	var b strings.Builder
	b.WriteString(summaryInstructions)
	b.WriteString("\n\n")
	b.WriteString(summaryExample)
	b.WriteString("\n\nArticle: ")
	b.WriteString(articleText)
	b.WriteString("\n\nEntities:\n")
	b.WriteString(entityContext.String())
	b.WriteString("\nRelationships:\n")
	b.WriteString(relationshipContext.String())
	b.WriteString("\nGenerate the impact summary as JSON:")
	return b.String()
}
