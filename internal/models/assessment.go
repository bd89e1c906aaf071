package models

import (
	"time"

	"gorm.io/datatypes"
)

// AssessmentRecord is the persisted outcome of one pipeline run. Writing it
// is a fire-and-forget side effect: a failed write is logged and never
// affects the result the caller already received.
type AssessmentRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SubmissionID string `gorm:"size:64;uniqueIndex;not null" json:"submission_id"`
	Kind         string `gorm:"size:32;index;not null" json:"kind"`
	// Selector narrows the rubric within a kind: essay variant, component
	// name or short-answer marks.
	Selector string `gorm:"size:32" json:"selector"`
	// TextDigest is the SHA-256 of the submitted text, stored instead of
	// the text itself.
	TextDigest      string         `gorm:"size:64;index" json:"text_digest"`
	WordCount       int            `json:"word_count"`
	TotalScore      float64        `gorm:"not null" json:"total_score"`
	MaxScore        float64        `gorm:"not null" json:"max_score"`
	Percentage      int            `gorm:"not null" json:"percentage"`
	Band            int            `gorm:"not null" json:"band"`
	Provider        string         `gorm:"size:32" json:"provider"`
	Breakdown       datatypes.JSON `json:"breakdown"`
	OverallComment  string         `gorm:"type:text" json:"overall_comment"`
	Recommendations datatypes.JSON `json:"recommendations"`
	CreatedAt       time.Time      `json:"created_at"`
}

const (
	// ProviderFallback marks records graded without the generation service.
	ProviderFallback = "fallback"
)

// IsFallback reports whether the record was produced by the local grader.
func (a AssessmentRecord) IsFallback() bool {
	return a.Provider == ProviderFallback
}
