package assess

import (
	"math"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

// Aggregate derives totals, percentage and band from per-criterion scores.
// The total is always the sum of the criterion scores, never taken from the
// reply, and rounding happens exactly once on the final percentage.
func Aggregate(criteria []CriterionResult, overallComment string, recommendations []string, provider string) Result {
	var total, max float64
	for _, c := range criteria {
		total += c.Score
		max += c.MaxScore
	}

	percentage := 0
	if max > 0 {
		percentage = roundHalfUp(100 * total / max)
	}

	if recommendations == nil {
		recommendations = []string{}
	}

	return Result{
		Criteria:        criteria,
		TotalScore:      total,
		MaxScore:        max,
		Percentage:      percentage,
		Band:            rubric.BandFor(percentage),
		OverallComment:  overallComment,
		Recommendations: recommendations,
		Provider:        provider,
		Attempted:       true,
	}
}

// AggregateBatch combines resolved short-answer results into section totals.
func AggregateBatch(questions []Result) BatchResult {
	var total, max float64
	attempted := 0
	for _, q := range questions {
		total += q.TotalScore
		max += q.MaxScore
		if q.Attempted {
			attempted++
		}
	}

	percentage := 0
	if max > 0 {
		percentage = roundHalfUp(100 * total / max)
	}

	completion := 0.0
	if len(questions) > 0 {
		completion = float64(attempted) / float64(len(questions))
	}

	return BatchResult{
		Questions:  questions,
		TotalScore: total,
		MaxScore:   max,
		Percentage: percentage,
		Band:       rubric.BandFor(percentage),
		Completion: completion,
	}
}

// roundHalfUp rounds to the nearest integer with .5 always rounding up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
