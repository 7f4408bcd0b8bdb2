package relation

import (
	"fmt"
	"strings"

	"github.com/newsmesh/cognition/internal/core/model"
)

const mappingInstructions = `You are an expert in causal analysis for business and financial news.

Your task is to extract causal relationships in the format:
Subject -> Action -> Object

Where:
- Subject: the actor/cause (an entity that initiates change)
- Action: the relationship verb (e.g., ACQUIRES, REJECTS, INVESTS_IN, DISRUPTS)
- Object: the affected entity (what/who is impacted)

For each relationship provide:
1. sentiment: -1.0 (very negative) to +1.0 (very positive), reflecting the impact on the OBJECT entity
2. confidence: 0.0 (uncertain) to 1.0 (certain)
3. reasoning: your chain-of-thought in 1-2 sentences

CRITICAL RULES:
1. Only extract DIRECT causal relationships stated in the text.
2. Use standardized uppercase action verbs: ACQUIRES, REJECTS, INVESTS_IN, DISRUPTS, PARTNERS_WITH, etc.
3. Only relate entities from the known entity list.
4. If the relationship is ambiguous, set confidence below 0.7.

Respond with a JSON object of the form:
{"relationships": [{"subject": {"name": "...", "type": "...", "confidence": 0.0}, "action": "VERB", "object": {"name": "...", "type": "...", "confidence": 0.0}, "sentiment": 0.0, "confidence": 0.0, "reasoning": "..."}]}`

const mappingExample = `Example article:
"The Federal Reserve raised interest rates by 0.25%, impacting mortgage lenders and tech companies reliant on cheap debt."

Example response:
{
  "relationships": [
    {
      "subject": {"name": "Federal Reserve", "type": "organization", "confidence": 0.98},
      "action": "RAISES_RATES_FOR",
      "object": {"name": "Mortgage Lenders", "type": "industry", "confidence": 0.90},
      "sentiment": -0.6,
      "confidence": 0.92,
      "reasoning": "Higher interest rates directly reduce mortgage demand, negatively impacting lenders' revenue."
    },
    {
      "subject": {"name": "Federal Reserve", "type": "organization", "confidence": 0.98},
      "action": "RAISES_RATES_FOR",
      "object": {"name": "Tech Companies", "type": "industry", "confidence": 0.88},
      "sentiment": -0.7,
      "confidence": 0.89,
      "reasoning": "Tech firms relying on debt for growth face higher borrowing costs, constraining expansion."
    }
  ]
}`

func buildMappingPrompt(articleText string, entities []model.Entity) string {
	var summary strings.Builder
	for _, e := range entities {
		fmt.Fprintf(&summary, "- %s (%s)\n", e.Name, e.Type)
	}

	var b strings.Builder
	b.WriteString(mappingInstructions)
	b.WriteString("\n\n")
	b.WriteString(mappingExample)
	b.WriteString("\n\nArticle: ")
	b.WriteString(articleText)
	b.WriteString("\n\nKnown entities:\n")
	b.WriteString(summary.String())
	b.WriteString("\nExtract causal relationships between these entities as JSON:")
	return b.String()
}
