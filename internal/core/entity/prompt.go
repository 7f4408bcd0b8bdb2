package entity

import (
	"fmt"
	"strings"
)

const extractionInstructions = `You are an expert financial news analyst specializing in extracting structured entities from business articles.

Your task is to identify and classify entities into these categories:
- Companies: business entities (include industry)
- People: individuals (include their role/title)
- Locations: countries, cities, regions (include country)
- Events: significant occurrences (include severity: low/medium/high/critical)

CRITICAL RULES:
1. Only extract entities EXPLICITLY mentioned in the text.
2. DO NOT infer or hallucinate entities not present.
3. Assign confidence scores: 0.9+ for explicit mentions, 0.7-0.9 for inferred context.
4. If unsure about an entity's type, mark confidence below 0.7.

Respond with a JSON object of the form:
{
  "entities": [
    {
      "name": "string",
      "type": "company|person|location|event",
      "confidence": 0.0-1.0,
      "metadata": {
        "industry": "string (for companies)",
        "role": "string (for people)",
        "country": "string (for locations)",
        "severity": "low|medium|high|critical (for events)"
      }
    }
  ]
}`

const extractionExample = `Example article:
"Tesla CEO Elon Musk announced a $25 billion investment in a new Gigafactory in Austin, Texas. The move comes as the EV manufacturer faces increased competition from Chinese automaker BYD."

Example response:
{
  "entities": [
    {"name": "Tesla", "type": "company", "confidence": 0.98, "metadata": {"industry": "Electric Vehicles"}},
    {"name": "Elon Musk", "type": "person", "confidence": 0.98, "metadata": {"role": "CEO of Tesla"}},
    {"name": "Austin", "type": "location", "confidence": 0.95, "metadata": {"country": "United States"}},
    {"name": "Texas", "type": "location", "confidence": 0.95, "metadata": {"country": "United States"}},
    {"name": "BYD", "type": "company", "confidence": 0.92, "metadata": {"industry": "Electric Vehicles"}},
    {"name": "Gigafactory Investment", "type": "event", "confidence": 0.90, "metadata": {"severity": "high"}}
  ]
}`

func buildExtractionPrompt(articleText string, provisional []string) string {
	var b strings.Builder
	b.WriteString(extractionInstructions)
	b.WriteString("\n\n")
	b.WriteString(extractionExample)
	b.WriteString("\n\nArticle: ")
	b.WriteString(articleText)
	if len(provisional) > 0 {
		fmt.Fprintf(&b, "\n\nPre-identified entities (context only, verify against the text): %s", strings.Join(provisional, ", "))
	}
	b.WriteString("\n\nExtract all entities as JSON:")
	return b.String()
}
