package assess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

func scoredResult(score, max float64, attempted bool) Result {
	r := Aggregate([]CriterionResult{{
		Criterion:    "Response quality",
		Score:        score,
		MaxScore:     max,
		Comment:      "c",
		Strengths:    []string{},
		Improvements: []string{},
	}}, "", nil, "openai")
	r.Attempted = attempted
	return r
}

func TestAggregateSumsAndBands(t *testing.T) {
	criteria := []CriterionResult{
		{Criterion: "A", Score: 1.5, MaxScore: 2},
		{Criterion: "B", Score: 2, MaxScore: 2},
		{Criterion: "C", Score: 1, MaxScore: 2},
	}

	result := Aggregate(criteria, "overall", []string{"rec"}, "openai")
	require.Equal(t, 4.5, result.TotalScore)
	require.Equal(t, 6.0, result.MaxScore)
	require.Equal(t, 75, result.Percentage)
	require.Equal(t, rubric.Band4, result.Band)
	require.True(t, result.Attempted)
}

func TestAggregateRoundsHalfUpOnceOnFinalPercentage(t *testing.T) {
	// 1.25/2.5 = 50% exactly on the Band3 boundary: upper band wins.
	result := Aggregate([]CriterionResult{{Score: 1.25, MaxScore: 2.5}}, "", nil, "openai")
	require.Equal(t, 50, result.Percentage)
	require.Equal(t, rubric.Band3, result.Band)

	// 2.5/4 = 62.5% rounds half up to 63, not 62.
	result = Aggregate([]CriterionResult{{Score: 2.5, MaxScore: 4}}, "", nil, "openai")
	require.Equal(t, 63, result.Percentage)
}

func TestAggregateEmptyRecommendationsNotNil(t *testing.T) {
	result := Aggregate([]CriterionResult{{Score: 1, MaxScore: 2}}, "", nil, "openai")
	require.NotNil(t, result.Recommendations)
}

func TestAggregateBatchSectionScores(t *testing.T) {
	questions := []Result{
		scoredResult(2, 3, true),
		scoredResult(0, 2, false),
		scoredResult(4, 5, true),
	}

	batch := AggregateBatch(questions)
	require.Equal(t, 6.0, batch.TotalScore)
	require.Equal(t, 10.0, batch.MaxScore)
	require.Equal(t, 60, batch.Percentage)
	require.Equal(t, rubric.Band3, batch.Band)
	require.InDelta(t, 2.0/3.0, batch.Completion, 1e-9)
}

func TestAggregateBatchEmpty(t *testing.T) {
	batch := AggregateBatch(nil)
	require.Equal(t, 0.0, batch.TotalScore)
	require.Equal(t, 0, batch.Percentage)
	require.Equal(t, 0.0, batch.Completion)
}
