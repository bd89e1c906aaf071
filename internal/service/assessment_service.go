package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/essaymark/essaymark-api/internal/assess"
	"github.com/essaymark/essaymark-api/internal/dto"
	"github.com/essaymark/essaymark-api/internal/models"
	"github.com/essaymark/essaymark-api/internal/repository"
	"github.com/essaymark/essaymark-api/internal/rubric"
)

// ErrAssessmentNotFound indicates no stored result exists for the identifier.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentService exposes the marking operations behind the HTTP surface.
type AssessmentService interface {
	AssessEssay(ctx context.Context, payload dto.EssayAssessRequest) (dto.AssessmentResponse, error)
	AssessComponent(ctx context.Context, payload dto.ComponentAssessRequest) (dto.AssessmentResponse, error)
	AssessPetal(ctx context.Context, payload dto.PetalAssessRequest) (dto.AssessmentResponse, error)
	AssessShortAnswer(ctx context.Context, payload dto.ShortAnswerRequest) (dto.AssessmentResponse, error)
	AssessShortAnswerBatch(ctx context.Context, payload dto.ShortAnswerBatchRequest) (dto.BatchAssessmentResponse, error)
	GetResult(ctx context.Context, submissionID string) (dto.AssessmentResponse, error)
}

// AssessmentServiceConfig carries the service's runtime knobs.
type AssessmentServiceConfig struct {
	// CacheTTL bounds how long identical resubmissions reuse a stored
	// result instead of re-invoking the generation service.
	CacheTTL time.Duration
	// EventSubject is the NATS subject completed assessments publish to.
	EventSubject string
}

type assessmentService struct {
	assessor  *assess.Assessor
	records   repository.AssessmentRepository
	cache     *redis.Client
	nats      *nats.Conn
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	cfg       AssessmentServiceConfig
	logger    zerolog.Logger
}

// NewAssessmentService constructs the service. The redis client and NATS
// connection are optional; a nil value disables caching or events.
func NewAssessmentService(assessor *assess.Assessor, records repository.AssessmentRepository, cache *redis.Client, natsConn *nats.Conn, validate *validator.Validate, cfg AssessmentServiceConfig, logger zerolog.Logger) AssessmentService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.EventSubject == "" {
		cfg.EventSubject = "assessments.completed"
	}

	return &assessmentService{
		assessor:  assessor,
		records:   records,
		cache:     cache,
		nats:      natsConn,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		cfg:       cfg,
		logger:    logger.With().Str("component", "assessment_service").Logger(),
	}
}

func (s *assessmentService) AssessEssay(ctx context.Context, payload dto.EssayAssessRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	variant := rubric.EssayVariantTen
	if payload.Marks == 20 {
		variant = rubric.EssayVariantTwenty
	}

	sub := assess.Submission{
		ID:        uuid.NewString(),
		Kind:      rubric.KindEssay,
		Text:      s.cleanText(payload.Text),
		Question:  s.cleanText(payload.Question),
		TextTitle: s.cleanText(payload.TextTitle),
		Theme:     s.cleanText(payload.Theme),
		Variant:   variant,
	}

	return s.assessOne(ctx, sub, strconv.Itoa(int(variant)))
}

func (s *assessmentService) AssessComponent(ctx context.Context, payload dto.ComponentAssessRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	sub := assess.Submission{
		ID:        uuid.NewString(),
		Kind:      rubric.KindEssayComponent,
		Text:      s.cleanText(payload.Text),
		Question:  s.cleanText(payload.Question),
		TextTitle: s.cleanText(payload.TextTitle),
		Theme:     s.cleanText(payload.Theme),
		Component: rubric.Component(payload.Component),
	}

	return s.assessOne(ctx, sub, payload.Component)
}

func (s *assessmentService) AssessPetal(ctx context.Context, payload dto.PetalAssessRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	sub := assess.Submission{
		ID:        uuid.NewString(),
		Kind:      rubric.KindPetalParagraph,
		Text:      s.cleanText(payload.Text),
		Question:  s.cleanText(payload.Question),
		TextTitle: s.cleanText(payload.TextTitle),
		Theme:     s.cleanText(payload.Theme),
	}

	return s.assessOne(ctx, sub, "")
}

func (s *assessmentService) AssessShortAnswer(ctx context.Context, payload dto.ShortAnswerRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	sub := assess.Submission{
		ID:       uuid.NewString(),
		Kind:     rubric.KindShortAnswer,
		Text:     s.cleanText(payload.Answer),
		Question: s.cleanText(payload.Question),
		Extract:  s.cleanText(payload.Extract),
		Marks:    payload.Marks,
	}

	return s.assessOne(ctx, sub, strconv.Itoa(payload.Marks))
}

func (s *assessmentService) AssessShortAnswerBatch(ctx context.Context, payload dto.ShortAnswerBatchRequest) (dto.BatchAssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BatchAssessmentResponse{}, err
	}

	sectionID := uuid.NewString()
	subs := make([]assess.Submission, 0, len(payload.Questions))
	for i, question := range payload.Questions {
		subs = append(subs, assess.Submission{
			ID:       fmt.Sprintf("%s-q%d", sectionID, i+1),
			Kind:     rubric.KindShortAnswer,
			Text:     s.cleanText(question.Answer),
			Question: s.cleanText(question.Question),
			Extract:  s.cleanText(question.Extract),
			Marks:    question.Marks,
		})
	}

	batch, err := s.assessor.AssessBatch(ctx, subs)
	if err != nil {
		return dto.BatchAssessmentResponse{}, err
	}

	response := dto.BatchAssessmentResponse{
		SubmissionID: sectionID,
		TotalScore:   batch.TotalScore,
		MaxScore:     batch.MaxScore,
		Percentage:   batch.Percentage,
		Band:         int(batch.Band),
		Completion:   batch.Completion,
	}
	for i, result := range batch.Questions {
		questionResponse := dto.NewAssessmentResponse(subs[i].ID, string(rubric.KindShortAnswer), result)
		response.Questions = append(response.Questions, questionResponse)
		s.persistResult(subs[i], strconv.Itoa(subs[i].Marks), result)
	}
	s.publishEvent(sectionID, string(rubric.KindShortAnswer), int(batch.Band), "batch")

	return response, nil
}

func (s *assessmentService) GetResult(ctx context.Context, submissionID string) (dto.AssessmentResponse, error) {
	record, err := s.records.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssessmentResponse{}, ErrAssessmentNotFound
		}
		return dto.AssessmentResponse{}, err
	}

	response := dto.AssessmentResponse{
		SubmissionID:   record.SubmissionID,
		Kind:           record.Kind,
		TotalScore:     record.TotalScore,
		MaxScore:       record.MaxScore,
		Percentage:     record.Percentage,
		Band:           record.Band,
		BandDescriptor: rubric.Band(record.Band).Descriptor(),
		OverallComment: record.OverallComment,
		Provider:       record.Provider,
		CreatedAt:      record.CreatedAt,
	}
	if len(record.Breakdown) > 0 {
		if err := json.Unmarshal(record.Breakdown, &response.Criteria); err != nil {
			s.logger.Warn().Err(err).Str("submission_id", submissionID).Msg("failed to decode stored breakdown")
		}
	}
	if len(record.Recommendations) > 0 {
		if err := json.Unmarshal(record.Recommendations, &response.Recommendations); err != nil {
			s.logger.Warn().Err(err).Str("submission_id", submissionID).Msg("failed to decode stored recommendations")
		}
	}

	return response, nil
}

// assessOne runs the pipeline for a single submission, consulting the
// resubmission cache first and persisting the outcome afterwards.
func (s *assessmentService) assessOne(ctx context.Context, sub assess.Submission, selector string) (dto.AssessmentResponse, error) {
	cacheKey := s.cacheKey(sub, selector)
	if cached, ok := s.cachedResponse(ctx, cacheKey); ok {
		return cached, nil
	}

	result, err := s.assessor.Assess(ctx, sub)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	response := dto.NewAssessmentResponse(sub.ID, string(sub.Kind), result)
	s.persistResult(sub, selector, result)
	s.storeCache(ctx, cacheKey, response)
	s.publishEvent(sub.ID, string(sub.Kind), int(result.Band), result.Provider)

	return response, nil
}

// persistResult writes the record as a fire-and-forget side effect. The
// result has already been computed; a storage failure is logged and
// swallowed so the caller still gets their grade.
func (s *assessmentService) persistResult(sub assess.Submission, selector string, result assess.Result) {
	breakdown, err := json.Marshal(result.Criteria)
	if err != nil {
		s.logger.Error().Err(err).Str("submission_id", sub.ID).Msg("failed to encode breakdown")
		breakdown = []byte("[]")
	}
	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		recommendations = []byte("[]")
	}

	record := models.AssessmentRecord{
		SubmissionID:    sub.ID,
		Kind:            string(sub.Kind),
		Selector:        selector,
		TextDigest:      textDigest(sub.Text),
		WordCount:       len(strings.Fields(sub.Text)),
		TotalScore:      result.TotalScore,
		MaxScore:        result.MaxScore,
		Percentage:      result.Percentage,
		Band:            int(result.Band),
		Provider:        result.Provider,
		Breakdown:       datatypes.JSON(breakdown),
		OverallComment:  result.OverallComment,
		Recommendations: datatypes.JSON(recommendations),
	}

	// Detached context: the client response must not wait on, or fail
	// because of, the write.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.records.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("submission_id", sub.ID).Msg("failed to persist assessment")
	}
}

func (s *assessmentService) cacheKey(sub assess.Submission, selector string) string {
	return fmt.Sprintf("assessment:%s:%s:%s", sub.Kind, selector, textDigest(sub.Text))
}

func (s *assessmentService) cachedResponse(ctx context.Context, key string) (dto.AssessmentResponse, bool) {
	if s.cache == nil {
		return dto.AssessmentResponse{}, false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read assessment cache")
		}
		return dto.AssessmentResponse{}, false
	}

	var response dto.AssessmentResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode cached assessment")
		return dto.AssessmentResponse{}, false
	}

	s.logger.Debug().Str("submission_id", response.SubmissionID).Msg("assessment cache hit")
	response.Cached = true
	return response, true
}

func (s *assessmentService) storeCache(ctx context.Context, key string, response dto.AssessmentResponse) {
	if s.cache == nil {
		return
	}

	encoded, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, encoded, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write assessment cache")
	}
}

// publishEvent emits a completion event when a NATS connection is wired.
// Best effort only.
func (s *assessmentService) publishEvent(submissionID, kind string, band int, provider string) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"submission_id": submissionID,
		"kind":          kind,
		"band":          band,
		"provider":      provider,
		"completed_at":  time.Now().UTC(),
	})
	if err != nil {
		return
	}
	if err := s.nats.Publish(s.cfg.EventSubject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.cfg.EventSubject).Msg("failed to publish assessment event")
	}
}

// cleanText strips any HTML markup from web-form input. The policy escapes
// entities while stripping, so the result is unescaped to keep quotation
// marks intact for the pipeline's text statistics.
func (s *assessmentService) cleanText(text string) string {
	return html.UnescapeString(s.sanitizer.Sanitize(text))
}

func textDigest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
