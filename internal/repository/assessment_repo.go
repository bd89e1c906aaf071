package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/essaymark/essaymark-api/internal/models"
)

// AssessmentFilter narrows assessment history queries.
type AssessmentFilter struct {
	Kind     *string
	Provider *string
	Limit    int
}

// AssessmentRepository defines data operations for stored assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, record *models.AssessmentRecord) error
	GetBySubmissionID(ctx context.Context, submissionID string) (models.AssessmentRecord, error)
	List(ctx context.Context, filter AssessmentFilter) ([]models.AssessmentRecord, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository instantiates the repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, record *models.AssessmentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *assessmentRepository) GetBySubmissionID(ctx context.Context, submissionID string) (models.AssessmentRecord, error) {
	var record models.AssessmentRecord
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&record).Error; err != nil {
		return models.AssessmentRecord{}, err
	}

	return record, nil
}

func (r *assessmentRepository) List(ctx context.Context, filter AssessmentFilter) ([]models.AssessmentRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.AssessmentRecord{})

	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Provider != nil {
		query = query.Where("provider = ?", *filter.Provider)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var records []models.AssessmentRecord
	if err := query.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
