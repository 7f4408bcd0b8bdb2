package model

// Entity types recognized by the pipeline. Type stays an open string so the
// extractor can surface categories outside this set; the validator passes
// unknown types through unvalidated.
const (
	EntityTypeCompany  = "company"
	EntityTypePerson   = "person"
	EntityTypeLocation = "location"
	EntityTypeEvent    = "event"
)

// Entity is a typed, named thing mentioned in a document. Confidence only
// ever decreases after extraction: validation may cap it, never raise it.
type Entity struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Confidence float64                `json:"confidence"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`

	// Type-specific conveniences, duplicated from Metadata.
	Industry string `json:"industry,omitempty"` // companies
	Role     string `json:"role,omitempty"`     // people
	Country  string `json:"country,omitempty"`  // locations
	Severity string `json:"severity,omitempty"` // events: low/medium/high/critical
}
