package dto

import (
	"time"

	"github.com/essaymark/essaymark-api/internal/assess"
)

// EssayAssessRequest submits a complete essay for marking.
type EssayAssessRequest struct {
	Text      string `json:"text" validate:"required"`
	Question  string `json:"question" validate:"max=1000"`
	TextTitle string `json:"text_title" validate:"max=255"`
	Theme     string `json:"theme" validate:"max=255"`
	// Marks selects the marking scale; defaults to the 10-point rubric.
	Marks int `json:"marks" validate:"omitempty,oneof=10 20"`
}

// ComponentAssessRequest submits a single essay part.
type ComponentAssessRequest struct {
	Component string `json:"component" validate:"required,oneof=introduction body conclusion"`
	Text      string `json:"text" validate:"required"`
	Question  string `json:"question" validate:"max=1000"`
	TextTitle string `json:"text_title" validate:"max=255"`
	Theme     string `json:"theme" validate:"max=255"`
}

// PetalAssessRequest submits a PETAL body paragraph.
type PetalAssessRequest struct {
	Text      string `json:"text" validate:"required"`
	Question  string `json:"question" validate:"max=1000"`
	TextTitle string `json:"text_title" validate:"max=255"`
	Theme     string `json:"theme" validate:"max=255"`
}

// ShortAnswerRequest submits one answer to an unseen-text question.
type ShortAnswerRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
	Answer   string `json:"answer" validate:"required"`
	Marks    int    `json:"marks" validate:"required,min=1,max=20"`
	Extract  string `json:"extract" validate:"max=10000"`
}

// ShortAnswerBatchRequest submits a whole unseen-text section. Individual
// answers may be blank; blank questions score zero without failing the
// section.
type ShortAnswerBatchRequest struct {
	Questions []ShortAnswerBatchQuestion `json:"questions" validate:"required,min=1,max=10,dive"`
}

// ShortAnswerBatchQuestion is one question within a batch. Answer is not
// required here, unlike the single-question endpoint.
type ShortAnswerBatchQuestion struct {
	Question string `json:"question" validate:"required,max=1000"`
	Answer   string `json:"answer"`
	Marks    int    `json:"marks" validate:"required,min=1,max=20"`
	Extract  string `json:"extract" validate:"max=10000"`
}

// CriterionScore is one rubric dimension in an assessment response.
type CriterionScore struct {
	Criterion    string   `json:"criterion"`
	Score        float64  `json:"score"`
	MaxScore     float64  `json:"max_score"`
	Comment      string   `json:"comment"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// AssessmentResponse is the full result returned for one submission.
type AssessmentResponse struct {
	SubmissionID    string           `json:"submission_id"`
	Kind            string           `json:"kind"`
	Criteria        []CriterionScore `json:"criteria"`
	TotalScore      float64          `json:"total_score"`
	MaxScore        float64          `json:"max_score"`
	Percentage      int              `json:"percentage"`
	Band            int              `json:"band"`
	BandDescriptor  string           `json:"band_descriptor"`
	OverallComment  string           `json:"overall_comment"`
	Recommendations []string         `json:"recommendations"`
	Provider        string           `json:"provider"`
	Cached          bool             `json:"cached,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// BatchAssessmentResponse combines a short-answer section's results.
type BatchAssessmentResponse struct {
	SubmissionID string               `json:"submission_id"`
	Questions    []AssessmentResponse `json:"questions"`
	TotalScore   float64              `json:"total_score"`
	MaxScore     float64              `json:"max_score"`
	Percentage   int                  `json:"percentage"`
	Band         int                  `json:"band"`
	Completion   float64              `json:"completion"`
}

// NewAssessmentResponse maps a pipeline result onto the response shape.
func NewAssessmentResponse(submissionID string, kind string, result assess.Result) AssessmentResponse {
	criteria := make([]CriterionScore, 0, len(result.Criteria))
	for _, c := range result.Criteria {
		criteria = append(criteria, CriterionScore{
			Criterion:    c.Criterion,
			Score:        c.Score,
			MaxScore:     c.MaxScore,
			Comment:      c.Comment,
			Strengths:    c.Strengths,
			Improvements: c.Improvements,
		})
	}

	return AssessmentResponse{
		SubmissionID:    submissionID,
		Kind:            kind,
		Criteria:        criteria,
		TotalScore:      result.TotalScore,
		MaxScore:        result.MaxScore,
		Percentage:      result.Percentage,
		Band:            int(result.Band),
		BandDescriptor:  result.Band.Descriptor(),
		OverallComment:  result.OverallComment,
		Recommendations: result.Recommendations,
		Provider:        result.Provider,
		CreatedAt:       time.Now().UTC(),
	}
}
