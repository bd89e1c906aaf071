package assess

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/essaymark/essaymark-api/internal/rubric"
	"github.com/essaymark/essaymark-api/pkg/ai"
)

var (
	assessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "essaymark",
		Subsystem: "assess",
		Name:      "duration_seconds",
		Help:      "Duration of assessment pipeline runs",
	}, []string{"kind"})

	fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "essaymark",
		Subsystem: "assess",
		Name:      "fallback_total",
		Help:      "Number of assessments graded by the local fallback",
	}, []string{"kind", "reason"})
)

// Config holds the pipeline's runtime knobs.
type Config struct {
	// Timeout bounds a single generation service call. The call is never
	// retried; on timeout the request proceeds straight to fallback grading.
	Timeout time.Duration
	// BatchConcurrency limits simultaneous generation calls for a
	// short-answer section.
	BatchConcurrency int
}

// Assessor runs the assessment pipeline: prompt construction, generation,
// sanitizing, validation, fallback and aggregation. Stateless per request;
// safe for concurrent use.
type Assessor struct {
	generator ai.Generator
	catalog   *rubric.Catalog
	cfg       Config
	logger    zerolog.Logger
}

// NewAssessor constructs the pipeline. A nil generator is valid and routes
// every request to fallback grading.
func NewAssessor(generator ai.Generator, catalog *rubric.Catalog, cfg Config, logger zerolog.Logger) *Assessor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}

	return &Assessor{
		generator: generator,
		catalog:   catalog,
		cfg:       cfg,
		logger:    logger.With().Str("component", "assessor").Logger(),
	}
}

// Assess grades one submission. Every failure mode past the length gate is
// absorbed into a complete fallback result, so the only error a caller can
// see is ErrSubmissionTooShort (or an unknown rubric selector).
func (a *Assessor) Assess(ctx context.Context, sub Submission) (Result, error) {
	start := time.Now()
	defer func() {
		assessDuration.WithLabelValues(string(sub.Kind)).Observe(time.Since(start).Seconds())
	}()

	rb, err := a.rubricFor(sub)
	if err != nil {
		return Result{}, err
	}

	prompt, err := BuildPrompt(sub, rb)
	if err != nil {
		return Result{}, err
	}

	raw, err := a.generate(ctx, prompt)
	if err != nil {
		a.logger.Warn().Err(err).Str("kind", string(sub.Kind)).Str("submission_id", sub.ID).
			Msg("generation unavailable, using fallback grade")
		fallbackTotal.WithLabelValues(string(sub.Kind), "unavailable").Inc()
		return FallbackGrade(sub, rb), nil
	}

	reply, err := ValidateReply(SanitizeReply(raw), rb)
	if err != nil {
		a.logger.Warn().Err(err).Str("kind", string(sub.Kind)).Str("submission_id", sub.ID).
			Msg("generation reply rejected, using fallback grade")
		fallbackTotal.WithLabelValues(string(sub.Kind), "malformed").Inc()
		return FallbackGrade(sub, rb), nil
	}

	return Aggregate(reply.Criteria, reply.OverallComment, reply.Recommendations, a.generator.Name()), nil
}

// AssessBatch grades a short-answer section. Questions are dispatched
// concurrently and resolve independently; a failing question falls back on
// its own without affecting the rest, and blank questions score zero
// instead of erroring. Aggregation happens only after every question has
// resolved.
func (a *Assessor) AssessBatch(ctx context.Context, subs []Submission) (BatchResult, error) {
	for i, sub := range subs {
		if sub.Kind != rubric.KindShortAnswer {
			return BatchResult{}, fmt.Errorf("batch assessment requires short-answer submissions, question %d is %q", i+1, sub.Kind)
		}
		if _, err := a.catalog.ShortAnswer(sub.Marks); err != nil {
			return BatchResult{}, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	results := make([]Result, len(subs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.cfg.BatchConcurrency)
	for i, sub := range subs {
		group.Go(func() error {
			rb, err := a.catalog.ShortAnswer(sub.Marks)
			if err != nil {
				return err
			}

			if countWords(sub.Text) < MinWords(sub.Kind) {
				results[i] = unattemptedResult(rb)
				return nil
			}

			result, err := a.Assess(groupCtx, sub)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return BatchResult{}, err
	}

	return AggregateBatch(results), nil
}

func (a *Assessor) rubricFor(sub Submission) (rubric.Rubric, error) {
	switch sub.Kind {
	case rubric.KindEssay:
		variant := sub.Variant
		if variant == 0 {
			variant = rubric.EssayVariantTen
		}
		return a.catalog.Essay(variant)
	case rubric.KindEssayComponent:
		return a.catalog.Component(sub.Component)
	case rubric.KindPetalParagraph:
		return a.catalog.Petal(), nil
	case rubric.KindShortAnswer:
		return a.catalog.ShortAnswer(sub.Marks)
	default:
		return rubric.Rubric{}, rubric.ErrUnknownRubric{Kind: sub.Kind}
	}
}

// generate performs the single bounded generation call. This is the
// pipeline's only suspension point.
func (a *Assessor) generate(ctx context.Context, prompt ai.Prompt) (string, error) {
	if a.generator == nil {
		return "", fmt.Errorf("%w: no generator configured", ErrServiceUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	raw, err := a.generator.Generate(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return raw, nil
}

// unattemptedResult is the zero grade for a blank question inside a batch.
// Blank questions are not an error: one unanswered question must not fail
// the section.
func unattemptedResult(rb rubric.Rubric) Result {
	criteria := make([]CriterionResult, 0, len(rb.Criteria))
	for _, criterion := range rb.Criteria {
		criteria = append(criteria, CriterionResult{
			Criterion:    criterion.Name,
			Score:        0,
			MaxScore:     criterion.MaxScore,
			Comment:      "No response was provided for this question.",
			Strengths:    []string{},
			Improvements: []string{"Attempt every question, even if only with a brief response."},
		})
	}

	result := Aggregate(criteria, "This question was not attempted.", []string{"Attempt every question; partial answers can still earn marks."}, fallbackProvider)
	result.Attempted = false
	return result
}
