package rubric

import "fmt"

// Kind identifies the type of student work being assessed.
type Kind string

const (
	// KindEssay is a complete persuasive or analytical essay.
	KindEssay Kind = "essay"
	// KindEssayComponent is a single essay part: introduction, body or conclusion.
	KindEssayComponent Kind = "essay-component"
	// KindPetalParagraph is a body paragraph following the PETAL scaffold.
	KindPetalParagraph Kind = "petal-paragraph"
	// KindShortAnswer is a response to an unseen-text question.
	KindShortAnswer Kind = "short-answer"
)

// Class groups criteria by what the fallback grader can observe about them
// from local text statistics.
type Class string

const (
	ClassStructure  Class = "structure"
	ClassEvidence   Class = "evidence"
	ClassAnalysis   Class = "analysis"
	ClassExpression Class = "expression"
	ClassGeneric    Class = "generic"
)

// Criterion is a single scored dimension of a rubric.
type Criterion struct {
	Name     string
	MaxScore float64
	Weight   float64
	Class    Class
	// Guidance bullets are embedded verbatim in generation prompts.
	Guidance []string
	// Keywords feed the fallback grader's relevance signal.
	Keywords []string
}

// Rubric is an ordered set of criteria for one assessment kind.
// Rubrics are static: built once at startup and never mutated per request.
type Rubric struct {
	Kind    Kind
	Name    string
	Criteria []Criterion
}

// MaxScore returns the sum of all criterion maxima.
func (r Rubric) MaxScore() float64 {
	var total float64
	for _, c := range r.Criteria {
		total += c.MaxScore
	}
	return total
}

// Criterion returns the named criterion, if present.
func (r Rubric) Criterion(name string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.Name == name {
			return c, true
		}
	}
	return Criterion{}, false
}

// EssayVariant selects between the HSC essay marking scales.
type EssayVariant int

const (
	// EssayVariantTen is the 10-point scale used for practice feedback.
	EssayVariantTen EssayVariant = 10
	// EssayVariantTwenty is the 20-mark scale matching exam conditions.
	EssayVariantTwenty EssayVariant = 20
)

// Component names the parts of an essay that can be assessed standalone.
type Component string

const (
	ComponentIntroduction Component = "introduction"
	ComponentBody         Component = "body"
	ComponentConclusion   Component = "conclusion"
)

// ErrUnknownRubric indicates no rubric exists for the requested selector.
type ErrUnknownRubric struct {
	Kind     Kind
	Selector string
}

func (e ErrUnknownRubric) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("no rubric for kind %q", e.Kind)
	}
	return fmt.Sprintf("no rubric for kind %q selector %q", e.Kind, e.Selector)
}
