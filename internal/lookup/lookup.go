// Package lookup holds the reference knowledge-base clients the fact
// validator checks extracted entities against: a business registry for
// companies and a general knowledge graph for people, locations and events.
package lookup

// Result is the outcome of one reference lookup. On a match, Confidence is
// the ceiling the validator applies to the entity (never a raise), and
// Metadata carries canonical identifiers to merge into the entity.
type Result struct {
	Validated  bool
	Confidence float64
	Reason     string
	Metadata   map[string]interface{}
}

const (
	ReasonNotFound = "not_found"
	ReasonNoAPIKey = "no_api_key"
)
