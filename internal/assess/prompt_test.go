package assess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

func TestBuildPromptTooShort(t *testing.T) {
	rb := rubric.NewCatalog().Petal()

	_, err := BuildPrompt(Submission{
		Kind: rubric.KindPetalParagraph,
		Text: "way too short",
	}, rb)
	require.ErrorIs(t, err, ErrSubmissionTooShort)
}

func TestBuildPromptShortAnswerThreshold(t *testing.T) {
	catalog := rubric.NewCatalog()
	rb, err := catalog.ShortAnswer(2)
	require.NoError(t, err)

	// Five words meets the short-answer minimum.
	_, err = BuildPrompt(Submission{
		Kind:  rubric.KindShortAnswer,
		Text:  "the metaphor conveys deep loss",
		Marks: 2,
	}, rb)
	require.NoError(t, err)

	_, err = BuildPrompt(Submission{
		Kind:  rubric.KindShortAnswer,
		Text:  "loss",
		Marks: 2,
	}, rb)
	require.ErrorIs(t, err, ErrSubmissionTooShort)
}

func TestBuildPromptEmbedsRubricVerbatim(t *testing.T) {
	catalog := rubric.NewCatalog()
	rb, err := catalog.Essay(rubric.EssayVariantTen)
	require.NoError(t, err)

	sub := Submission{
		Kind:      rubric.KindEssay,
		Text:      essayOfShape(400, 3, 1),
		Question:  "How does the text explore memory?",
		TextTitle: "The Orange Tree",
		Theme:     "Texts and Human Experiences",
	}

	prompt, err := BuildPrompt(sub, rb)
	require.NoError(t, err)
	require.NotEmpty(t, prompt.SystemRole)
	require.Equal(t, float32(defaultTemperature), prompt.Temperature)
	require.Equal(t, defaultMaxOutputTokens, prompt.MaxOutputTokens)

	for _, criterion := range rb.Criteria {
		require.Contains(t, prompt.UserPrompt, criterion.Name)
		for _, bullet := range criterion.Guidance {
			require.Contains(t, prompt.UserPrompt, bullet)
		}
	}
	require.Contains(t, prompt.UserPrompt, sub.Text)
	require.Contains(t, prompt.UserPrompt, sub.Question)
	require.Contains(t, prompt.UserPrompt, sub.TextTitle)
}

// The schema example embedded in the prompt must round-trip through the
// validator: this is the load-bearing coupling between prompt construction
// and reply validation.
func TestBuildPromptSchemaMatchesValidator(t *testing.T) {
	rb := rubric.NewCatalog().Petal()

	prompt, err := BuildPrompt(Submission{
		Kind: rubric.KindPetalParagraph,
		Text: essayOfShape(150, 1, 1),
	}, rb)
	require.NoError(t, err)

	marker := "## Output Schema"
	idx := strings.Index(prompt.UserPrompt, marker)
	require.GreaterOrEqual(t, idx, 0)
	example := SanitizeReply(prompt.UserPrompt[idx:])

	reply, err := ValidateReply(example, rb)
	require.NoError(t, err)
	require.Len(t, reply.Criteria, len(rb.Criteria))
	for i, criterion := range rb.Criteria {
		require.Equal(t, criterion.Name, reply.Criteria[i].Criterion)
		require.Equal(t, criterion.MaxScore/2, reply.Criteria[i].Score)
	}
	require.NotEmpty(t, reply.OverallComment)
}
