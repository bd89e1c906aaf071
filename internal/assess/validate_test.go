package assess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

func petalTestRubric() rubric.Rubric {
	return rubric.NewCatalog().Petal()
}

func fullPetalReply() string {
	return `{
		"criteria": [
			{"criterion": "Point", "score": 1.5, "comment": "Clear point", "strengths": ["direct"], "improvements": ["sharpen"]},
			{"criterion": "Evidence", "score": 2, "comment": "Good quote", "strengths": ["apt"], "improvements": []},
			{"criterion": "Technique", "score": 1, "comment": "Named", "strengths": [], "improvements": ["be precise"]},
			{"criterion": "Analysis", "score": 1.5, "comment": "Solid", "strengths": ["effect"], "improvements": []},
			{"criterion": "Link", "score": 2, "comment": "Ties back", "strengths": ["neat"], "improvements": []}
		],
		"overallComment": "Strong paragraph",
		"recommendations": ["Vary sentence openers"]
	}`
}

func TestValidateReplyAcceptsWellFormed(t *testing.T) {
	reply, err := ValidateReply(fullPetalReply(), petalTestRubric())
	require.NoError(t, err)
	require.Len(t, reply.Criteria, 5)
	require.Equal(t, 1.5, reply.Criteria[0].Score)
	require.Equal(t, "Point", reply.Criteria[0].Criterion)
	require.Equal(t, "Strong paragraph", reply.OverallComment)
	require.Equal(t, []string{"Vary sentence openers"}, reply.Recommendations)
}

func TestValidateReplyFillsMissingOptionalFields(t *testing.T) {
	minimal := `{"criteria": [
		{"score": 1}, {"score": 2}, {"score": 0.5}, {"score": 1}, {"score": 2}
	]}`

	reply, err := ValidateReply(minimal, petalTestRubric())
	require.NoError(t, err)
	for _, c := range reply.Criteria {
		require.NotNil(t, c.Strengths)
		require.NotNil(t, c.Improvements)
		require.Equal(t, "", c.Comment)
	}
	require.Equal(t, "", reply.OverallComment)
	require.NotNil(t, reply.Recommendations)
	require.Empty(t, reply.Recommendations)
}

func TestValidateReplyClampsOutOfRangeScores(t *testing.T) {
	outOfRange := `{"criteria": [
		{"score": 99}, {"score": -3}, {"score": 2}, {"score": 2.4}, {"score": 0}
	]}`

	reply, err := ValidateReply(outOfRange, petalTestRubric())
	require.NoError(t, err)
	require.Equal(t, 2.0, reply.Criteria[0].Score)
	require.Equal(t, 0.0, reply.Criteria[1].Score)
	require.Equal(t, 2.0, reply.Criteria[2].Score)
	require.Equal(t, 2.0, reply.Criteria[3].Score)
}

func TestValidateReplyRejectsNonNumericScore(t *testing.T) {
	naScore := `{"criteria": [
		{"score": "N/A"}, {"score": 2}, {"score": 1}, {"score": 1}, {"score": 2}
	]}`

	_, err := ValidateReply(naScore, petalTestRubric())
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestValidateReplyRejectsMissingScore(t *testing.T) {
	missing := `{"criteria": [
		{"comment": "fine"}, {"score": 2}, {"score": 1}, {"score": 1}, {"score": 2}
	]}`

	_, err := ValidateReply(missing, petalTestRubric())
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestValidateReplyRejectsTooFewCriteria(t *testing.T) {
	short := `{"criteria": [{"score": 2}, {"score": 2}]}`
	_, err := ValidateReply(short, petalTestRubric())
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestValidateReplyRejectsProse(t *testing.T) {
	_, err := ValidateReply("I cannot assist with that.", petalTestRubric())
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestValidateReplyUnwrapsSingleElementArray(t *testing.T) {
	wrapped := "[" + fullPetalReply() + "]"
	reply, err := ValidateReply(wrapped, petalTestRubric())
	require.NoError(t, err)
	require.Len(t, reply.Criteria, 5)
}

func TestValidateReplyWrapsSingleCriteriaObject(t *testing.T) {
	catalog := rubric.NewCatalog()
	saRubric, err := catalog.ShortAnswer(5)
	require.NoError(t, err)

	single := `{"criteria": {"score": 4, "comment": "solid answer"}}`
	reply, err := ValidateReply(single, saRubric)
	require.NoError(t, err)
	require.Len(t, reply.Criteria, 1)
	require.Equal(t, 4.0, reply.Criteria[0].Score)
	require.Equal(t, "Response quality", reply.Criteria[0].Criterion)
}

func TestValidateReplyRejectsDoubleWrappedArray(t *testing.T) {
	doubled := "[[" + fullPetalReply() + "]]"
	_, err := ValidateReply(doubled, petalTestRubric())
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestValidateReplyRepairsTrailingComma(t *testing.T) {
	trailing := `{"criteria": [
		{"score": 1,}, {"score": 2}, {"score": 1}, {"score": 1}, {"score": 2},
	]}`

	reply, err := ValidateReply(trailing, petalTestRubric())
	require.NoError(t, err)
	require.Len(t, reply.Criteria, 5)
}

func TestValidateReplyCoercesScalarStrengths(t *testing.T) {
	scalar := `{"criteria": [
		{"score": 1, "strengths": "concise"}, {"score": 2}, {"score": 1}, {"score": 1}, {"score": 2}
	]}`

	reply, err := ValidateReply(scalar, petalTestRubric())
	require.NoError(t, err)
	require.Equal(t, []string{"concise"}, reply.Criteria[0].Strengths)
}
