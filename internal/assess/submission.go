package assess

import (
	"strings"
	"unicode"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

// Submission is a piece of student writing entering the pipeline, together
// with the context needed to mark it. Treated as immutable once passed in.
type Submission struct {
	ID       string
	Kind     rubric.Kind
	Text     string
	Question string
	// TextTitle names the prescribed or unseen source text, if any.
	TextTitle string
	Theme     string
	// Component selects the rubric for essay-component submissions.
	Component rubric.Component
	// Variant selects the marking scale for full-essay submissions.
	Variant rubric.EssayVariant
	// Marks is the allocation for a short-answer question.
	Marks int
	// Extract carries the unseen text for short-answer questions.
	Extract string
}

// MinWords is the minimum submission length accepted for a kind. Anything
// shorter fails fast with ErrSubmissionTooShort before the generation
// service is involved.
func MinWords(kind rubric.Kind) int {
	if kind == rubric.KindShortAnswer {
		return 5
	}
	return 20
}

// textStats are the deterministic signals the fallback grader works from.
type textStats struct {
	words          int
	paragraphs     int
	hasQuotes      bool
	firstParaWords int
	lastParaWords  int
}

func analyzeText(text string) textStats {
	stats := textStats{
		words:     countWords(text),
		hasQuotes: containsQuotation(text),
	}

	paragraphs := splitParagraphs(text)
	stats.paragraphs = len(paragraphs)
	if len(paragraphs) > 0 {
		stats.firstParaWords = countWords(paragraphs[0])
		stats.lastParaWords = countWords(paragraphs[len(paragraphs)-1])
	}

	return stats
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

// splitParagraphs divides text on blank lines, ignoring whitespace-only
// segments.
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var paragraphs []string
	for _, block := range strings.Split(normalized, "\n\n") {
		if strings.TrimSpace(block) != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// containsQuotation checks for double or curly quotation marks. Straight
// single quotes are excluded because they are indistinguishable from
// apostrophes.
func containsQuotation(text string) bool {
	return strings.ContainsAny(text, "\"“”‘’")
}

// keywordHits counts how many of the criterion's keywords appear in the
// text, case-insensitively on word boundaries.
func keywordHits(text string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	lowered := strings.ToLower(text)
	hits := 0
	for _, keyword := range keywords {
		if containsWord(lowered, strings.ToLower(keyword)) {
			hits++
		}
	}
	return hits
}

func containsWord(text, word string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		beforeOK := idx == 0 || !isWordRune(rune(text[idx-1]))
		afterOK := end >= len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
