package assess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

// essayOfShape builds a synthetic essay with the requested word and
// paragraph counts, optionally salting in quoted passages.
func essayOfShape(words, paragraphs, quotes int) string {
	perParagraph := words / paragraphs
	var blocks []string
	for p := 0; p < paragraphs; p++ {
		sentence := strings.TrimSpace(strings.Repeat("the composer develops meaning across the narrative ", perParagraph/7+1))
		if p > 0 && quotes > 0 {
			sentence += ` The author states "memory shapes identity" here.`
			quotes--
		}
		blocks = append(blocks, sentence)
	}
	return strings.Join(blocks, "\n\n")
}

func TestFallbackGradeRewardsStructureAndEvidence(t *testing.T) {
	catalog := rubric.NewCatalog()
	rb, err := catalog.Essay(rubric.EssayVariantTen)
	require.NoError(t, err)

	sub := Submission{
		Kind: rubric.KindEssay,
		Text: essayOfShape(1200, 4, 3),
	}

	result := FallbackGrade(sub, rb)

	evidence := criterionByName(t, result, "Evidence")
	require.Greater(t, evidence.Score, evidence.MaxScore/2, "quoted passages must lift evidence above its midpoint")

	structure := criterionByName(t, result, "Structure")
	require.Greater(t, structure.Score, structure.MaxScore/2, "four paragraphs must lift structure above its midpoint")
}

func TestFallbackGradeMinimalSubmissionStillScores(t *testing.T) {
	catalog := rubric.NewCatalog()
	rb, err := catalog.Essay(rubric.EssayVariantTen)
	require.NoError(t, err)

	// Exactly at the 20-word minimum, no quotes, one paragraph.
	sub := Submission{
		Kind: rubric.KindEssay,
		Text: strings.TrimSpace(strings.Repeat("word ", 20)),
	}

	result := FallbackGrade(sub, rb)

	require.Greater(t, result.TotalScore, 0.0)
	require.NotEmpty(t, result.OverallComment)
	require.NotEmpty(t, result.Recommendations)
	for _, c := range result.Criteria {
		require.NotEmpty(t, c.Comment, "criterion %s", c.Criterion)
		require.NotEmpty(t, c.Strengths, "criterion %s", c.Criterion)
		require.NotEmpty(t, c.Improvements, "criterion %s", c.Criterion)
	}
}

func TestFallbackGradeInvariants(t *testing.T) {
	catalog := rubric.NewCatalog()

	rubrics := []rubric.Rubric{catalog.Petal()}
	if rb, err := catalog.Essay(rubric.EssayVariantTwenty); err == nil {
		rubrics = append(rubrics, rb)
	}
	if rb, err := catalog.ShortAnswer(3); err == nil {
		rubrics = append(rubrics, rb)
	}

	texts := []string{
		essayOfShape(1000, 5, 4),
		essayOfShape(120, 2, 0),
		strings.Repeat("short answer about imagery and tone ", 5),
	}

	for _, rb := range rubrics {
		for _, text := range texts {
			result := FallbackGrade(Submission{Kind: rb.Kind, Text: text}, rb)

			var sum float64
			for _, c := range result.Criteria {
				require.GreaterOrEqual(t, c.Score, 0.0)
				require.LessOrEqual(t, c.Score, c.MaxScore)
				sum += c.Score
			}
			require.InDelta(t, sum, result.TotalScore, 1e-9)
			require.Equal(t, rb.MaxScore(), result.MaxScore)
			require.Equal(t, rubric.BandFor(result.Percentage), result.Band)
			require.Equal(t, fallbackProvider, result.Provider)
		}
	}
}

func TestFallbackGradeDeterministic(t *testing.T) {
	rb := rubric.NewCatalog().Petal()
	sub := Submission{Kind: rubric.KindPetalParagraph, Text: essayOfShape(200, 1, 1)}

	first := FallbackGrade(sub, rb)
	second := FallbackGrade(sub, rb)
	require.Equal(t, first, second)
}

func criterionByName(t *testing.T, result Result, name string) CriterionResult {
	t.Helper()
	for _, c := range result.Criteria {
		if c.Criterion == name {
			return c
		}
	}
	t.Fatalf("criterion %q not found in result", name)
	return CriterionResult{}
}
