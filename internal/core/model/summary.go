package model

// MaxSummaryLength caps the executive summary text.
const MaxSummaryLength = 500

// ImpactSummary is the document-level business impact assessment.
// Severity rubric: 1-3 minor, 4-6 significant market movement, 7-8 major
// industry disruption, 9-10 economy-wide crisis.
type ImpactSummary struct {
	Summary         string   `json:"summary"`
	Severity        int      `json:"severity"`
	AffectedSectors []string `json:"affected_sectors"`
	KeyStakeholders []string `json:"key_stakeholders"`
}
