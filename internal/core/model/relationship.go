package model

// CausalRelationship is a directed, labeled edge: Subject -> Action -> Object.
// Subject and Object are copies, not references, since extraction and
// validation run independently. Sentiment reflects impact on the Object.
type CausalRelationship struct {
	Subject    Entity  `json:"subject"`
	Action     string  `json:"action"` // uppercase verb, e.g. ACQUIRES, REJECTS
	Object     Entity  `json:"object"`
	Sentiment  float64 `json:"sentiment"`  // -1.0 to +1.0
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Reasoning  string  `json:"reasoning"`  // required, non-empty
}
