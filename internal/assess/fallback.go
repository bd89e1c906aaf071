package assess

import (
	"fmt"
	"math"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

// fallbackProvider marks results produced without the generation service.
const fallbackProvider = "fallback"

// FallbackGrade produces a complete rubric-conformant result from local
// text statistics alone. Invoked whenever the generation service errors,
// times out, or returns an untrustworthy reply. It cannot fail, never
// returns an all-zero result for anything that passed the length gate, and
// visibly rewards partial effort so the grade does not look arbitrary.
func FallbackGrade(sub Submission, rb rubric.Rubric) Result {
	stats := analyzeText(sub.Text)

	criteria := make([]CriterionResult, 0, len(rb.Criteria))
	for _, criterion := range rb.Criteria {
		criteria = append(criteria, fallbackCriterion(criterion, sub.Text, stats))
	}

	result := Aggregate(criteria, fallbackOverallComment(stats), fallbackRecommendations(stats), fallbackProvider)
	return result
}

func fallbackCriterion(criterion rubric.Criterion, text string, stats textStats) CriterionResult {
	hits := keywordHits(text, criterion.Keywords)
	fraction := fallbackFraction(criterion.Class, stats, hits)

	// Heuristic grades stay below full marks, and every criterion keeps at
	// least half a point so effort is never scored to zero.
	score := roundHalfStep(fraction * criterion.MaxScore)
	score = clamp(score, math.Min(0.5, criterion.MaxScore), criterion.MaxScore)

	strengths, improvements := fallbackFeedback(criterion.Class, stats, hits)

	return CriterionResult{
		Criterion:    criterion.Name,
		Score:        score,
		MaxScore:     criterion.MaxScore,
		Comment:      fallbackComment(criterion, stats, hits),
		Strengths:    strengths,
		Improvements: improvements,
	}
}

// fallbackFraction converts the observable signals for a criterion class
// into a score fraction. Thresholds are fixed so identical submissions
// always receive identical grades.
func fallbackFraction(class rubric.Class, stats textStats, hits int) float64 {
	var fraction float64

	switch class {
	case rubric.ClassStructure:
		switch {
		case stats.paragraphs >= 3:
			fraction = 0.7
		case stats.paragraphs == 2:
			fraction = 0.55
		default:
			fraction = 0.35
		}
		if hits > 0 {
			fraction += 0.1
		}
		// A substantial opening and closing paragraph suggest a real
		// introduction and conclusion.
		if stats.paragraphs >= 3 && stats.firstParaWords >= 40 && stats.lastParaWords >= 30 {
			fraction += 0.05
		}

	case rubric.ClassEvidence:
		if stats.hasQuotes {
			fraction = 0.7
		} else {
			fraction = 0.3
		}
		if hits > 0 {
			fraction += 0.1
		}

	case rubric.ClassAnalysis:
		switch {
		case hits >= 3:
			fraction = 0.7
		case hits >= 1:
			fraction = 0.55
		default:
			fraction = 0.35
		}
		if stats.words >= 300 {
			fraction += 0.05
		}

	case rubric.ClassExpression:
		switch {
		case stats.words >= 400:
			fraction = 0.65
		case stats.words >= 150:
			fraction = 0.55
		case stats.words >= 40:
			fraction = 0.45
		default:
			fraction = 0.35
		}

	default:
		switch {
		case stats.words >= 300:
			fraction = 0.6
		case stats.words >= 100:
			fraction = 0.5
		default:
			fraction = 0.35
		}
		if hits > 0 {
			fraction += 0.1
		}
	}

	return math.Min(fraction, 0.85)
}

func fallbackComment(criterion rubric.Criterion, stats textStats, hits int) string {
	met := criterionThresholdMet(criterion.Class, stats, hits)
	if met {
		return fmt.Sprintf("Your work shows solid signs of %s based on an automated review of its structure and language.",
			classPhrase(criterion.Class))
	}
	return fmt.Sprintf("An automated review could not find strong signs of %s in this response; see the suggestions below.",
		classPhrase(criterion.Class))
}

func criterionThresholdMet(class rubric.Class, stats textStats, hits int) bool {
	switch class {
	case rubric.ClassStructure:
		return stats.paragraphs >= 3
	case rubric.ClassEvidence:
		return stats.hasQuotes
	case rubric.ClassAnalysis:
		return hits >= 1
	case rubric.ClassExpression:
		return stats.words >= 150
	default:
		return stats.words >= 100
	}
}

func classPhrase(class rubric.Class) string {
	switch class {
	case rubric.ClassStructure:
		return "deliberate structure"
	case rubric.ClassEvidence:
		return "textual evidence"
	case rubric.ClassAnalysis:
		return "analytical engagement"
	case rubric.ClassExpression:
		return "developed expression"
	default:
		return "sustained effort"
	}
}

// fallbackFeedback selects template sentences by which thresholds were met.
// Both lists are always non-empty.
func fallbackFeedback(class rubric.Class, stats textStats, hits int) (strengths, improvements []string) {
	switch class {
	case rubric.ClassStructure:
		if stats.paragraphs >= 3 {
			strengths = append(strengths, "Your response is organised into distinct paragraphs.")
		} else {
			improvements = append(improvements, "Break your response into at least three paragraphs, each developing one idea.")
		}
		if stats.firstParaWords >= 40 {
			strengths = append(strengths, "Your opening paragraph is substantial enough to establish your argument.")
		} else {
			improvements = append(improvements, "Develop your opening paragraph so it clearly sets up your argument.")
		}

	case rubric.ClassEvidence:
		if stats.hasQuotes {
			strengths = append(strengths, "You support your points with quoted material from the text.")
		} else {
			improvements = append(improvements, "Include short, direct quotations from the text as evidence for each point.")
		}

	case rubric.ClassAnalysis:
		if hits >= 1 {
			strengths = append(strengths, "You use analytical vocabulary relevant to this task.")
		} else {
			improvements = append(improvements, "Name the techniques the composer uses and explain the effect each one creates.")
		}
		if stats.words >= 300 {
			strengths = append(strengths, "You sustain your discussion at length.")
		} else {
			improvements = append(improvements, "Extend your discussion of each piece of evidence before moving on.")
		}

	case rubric.ClassExpression:
		if stats.words >= 150 {
			strengths = append(strengths, "You write at a length that allows your ideas to develop.")
		} else {
			improvements = append(improvements, "Aim for fuller sentences and more developed explanations.")
		}

	default:
		if stats.words >= 100 {
			strengths = append(strengths, "You have produced a substantial response to the task.")
		} else {
			improvements = append(improvements, "Develop your response further so each idea is fully explained.")
		}
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "You have made a genuine attempt at this part of the task.")
	}
	if len(improvements) == 0 {
		improvements = append(improvements, "Keep refining this area against the rubric's descriptors.")
	}

	return strengths, improvements
}

func fallbackOverallComment(stats textStats) string {
	return fmt.Sprintf(
		"This feedback was produced by an automated structural review of your writing (%d words across %d paragraphs). "+
			"It rewards the effort visible in your response; ask your teacher for detailed comments on the ideas themselves.",
		stats.words, stats.paragraphs)
}

func fallbackRecommendations(stats textStats) []string {
	recommendations := []string{}
	if stats.paragraphs < 3 {
		recommendations = append(recommendations, "Plan your response as an introduction, body paragraphs and a conclusion before writing.")
	}
	if !stats.hasQuotes {
		recommendations = append(recommendations, "Memorise a bank of short quotations so every argument can be supported with evidence.")
	}
	if stats.words < 300 {
		recommendations = append(recommendations, "Practise writing longer responses under timed conditions to build stamina.")
	}
	recommendations = append(recommendations, "Resubmit this piece when detailed feedback is available for a full rubric assessment.")
	return recommendations
}

// roundHalfStep rounds to the nearest half point.
func roundHalfStep(x float64) float64 {
	return math.Round(x*2) / 2
}
