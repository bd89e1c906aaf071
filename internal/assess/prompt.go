package assess

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/essaymark/essaymark-api/internal/rubric"
	"github.com/essaymark/essaymark-api/pkg/ai"
)

const (
	defaultTemperature     = 0.3
	defaultMaxOutputTokens = 1200
)

const markerSystemRole = "You are an experienced HSC English marker. Assess the student's work against the rubric provided, " +
	"awarding scores within each criterion's stated maximum. Respond with a single JSON object that follows the given schema " +
	"exactly. Do not include any text outside the JSON object."

// BuildPrompt turns a submission and its rubric into the instruction payload
// for the generation service. Pure transform, no side effects. Fails only
// with ErrSubmissionTooShort, before the service is ever invoked.
func BuildPrompt(sub Submission, rb rubric.Rubric) (ai.Prompt, error) {
	words := countWords(sub.Text)
	if min := MinWords(sub.Kind); words < min {
		return ai.Prompt{}, fmt.Errorf("%w: %d words, minimum %d", ErrSubmissionTooShort, words, min)
	}

	builder := strings.Builder{}
	builder.WriteString("# Task\n")
	builder.WriteString(taskDescription(sub, rb))

	if sub.Question != "" {
		builder.WriteString("\n\n## Question\n")
		builder.WriteString(sub.Question)
	}
	if sub.TextTitle != "" {
		builder.WriteString("\n\n## Prescribed Text\n")
		builder.WriteString(sub.TextTitle)
	}
	if sub.Theme != "" {
		builder.WriteString("\n\n## Module Theme\n")
		builder.WriteString(sub.Theme)
	}
	if sub.Extract != "" {
		builder.WriteString("\n\n## Unseen Text\n")
		builder.WriteString(sub.Extract)
	}

	builder.WriteString("\n\n## Marking Rubric\n")
	for _, criterion := range rb.Criteria {
		fmt.Fprintf(&builder, "### %s (out of %g)\n", criterion.Name, criterion.MaxScore)
		for _, bullet := range criterion.Guidance {
			builder.WriteString("- ")
			builder.WriteString(bullet)
			builder.WriteString("\n")
		}
	}

	builder.WriteString("\n## Student Response\n")
	builder.WriteString(sub.Text)

	builder.WriteString("\n\n## Output Schema\nReply with JSON matching this example exactly, one criteria entry per rubric criterion in order:\n")
	builder.WriteString(schemaExample(rb))

	return ai.Prompt{
		SystemRole:      markerSystemRole,
		UserPrompt:      builder.String(),
		Temperature:     defaultTemperature,
		MaxOutputTokens: defaultMaxOutputTokens,
	}, nil
}

func taskDescription(sub Submission, rb rubric.Rubric) string {
	switch sub.Kind {
	case rubric.KindEssay:
		return fmt.Sprintf("Mark this complete essay using the %s rubric.", rb.Name)
	case rubric.KindEssayComponent:
		return fmt.Sprintf("Mark this essay %s on its own terms.", sub.Component)
	case rubric.KindPetalParagraph:
		return "Mark this PETAL body paragraph (Point, Evidence, Technique, Analysis, Link)."
	case rubric.KindShortAnswer:
		return fmt.Sprintf("Mark this short answer to an unseen-text question worth %d marks.", sub.Marks)
	default:
		return fmt.Sprintf("Mark this response using the %s rubric.", rb.Name)
	}
}

// schemaExample renders the reply shape using the same wire structs the
// validator parses, so the field names can never drift apart.
func schemaExample(rb rubric.Rubric) string {
	example := replyPayload{
		OverallComment:  "One concise paragraph summarising the response's quality.",
		Recommendations: []string{"A concrete next step for the student."},
	}
	for _, criterion := range rb.Criteria {
		example.Criteria = append(example.Criteria, replyCriterion{
			Criterion:    criterion.Name,
			Score:        criterion.MaxScore / 2,
			Comment:      "One or two sentences justifying the score.",
			Strengths:    []string{"Something the student did well."},
			Improvements: []string{"Something specific to improve."},
		})
	}

	encoded, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		// Marshalling a value of our own wire structs cannot fail.
		return "{}"
	}
	return string(encoded)
}
