package assess

import "github.com/essaymark/essaymark-api/internal/rubric"

// CriterionResult is the scored outcome for one rubric criterion.
type CriterionResult struct {
	Criterion    string   `json:"criterion"`
	Score        float64  `json:"score"`
	MaxScore     float64  `json:"maxScore"`
	Comment      string   `json:"comment"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Result is the complete assessment for one submission. Invariants:
// every criterion score lies in [0, MaxScore]; TotalScore equals the sum
// of criterion scores; Band is a deterministic function of the percentage.
type Result struct {
	Criteria        []CriterionResult `json:"criteria"`
	TotalScore      float64           `json:"totalScore"`
	MaxScore        float64           `json:"maxScore"`
	Percentage      int               `json:"percentage"`
	Band            rubric.Band       `json:"band"`
	OverallComment  string            `json:"overallComment"`
	Recommendations []string          `json:"recommendations"`
	// Provider records which path produced the result: a generation model
	// name or "fallback". The shape is identical either way.
	Provider string `json:"provider"`
	// Attempted is false only for blank questions inside a batch.
	Attempted bool `json:"attempted"`
}

// BatchResult combines independently assessed short-answer questions.
type BatchResult struct {
	Questions  []Result    `json:"questions"`
	TotalScore float64     `json:"totalScore"`
	MaxScore   float64     `json:"maxScore"`
	Percentage int         `json:"percentage"`
	Band       rubric.Band `json:"band"`
	// Completion is the mean fraction of questions attempted. It reports
	// coverage, not quality.
	Completion float64 `json:"completion"`
}
