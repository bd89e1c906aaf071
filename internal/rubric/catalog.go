package rubric

import "fmt"

// Catalog holds every rubric the assessment pipeline can grade against.
// Read-only after construction, safe for concurrent use.
type Catalog struct {
	essayTen    Rubric
	essayTwenty Rubric
	components  map[Component]Rubric
	petal       Rubric
}

// NewCatalog builds the canonical rubric set.
func NewCatalog() *Catalog {
	return &Catalog{
		essayTen:    essayRubric(EssayVariantTen),
		essayTwenty: essayRubric(EssayVariantTwenty),
		components: map[Component]Rubric{
			ComponentIntroduction: introductionRubric(),
			ComponentBody:         bodyRubric(),
			ComponentConclusion:   conclusionRubric(),
		},
		petal: petalRubric(),
	}
}

// Essay returns the full-essay rubric for the given marking scale.
func (c *Catalog) Essay(variant EssayVariant) (Rubric, error) {
	switch variant {
	case EssayVariantTen:
		return c.essayTen, nil
	case EssayVariantTwenty:
		return c.essayTwenty, nil
	default:
		return Rubric{}, ErrUnknownRubric{Kind: KindEssay, Selector: fmt.Sprintf("%d", variant)}
	}
}

// Component returns the rubric for a standalone essay part.
func (c *Catalog) Component(component Component) (Rubric, error) {
	r, ok := c.components[component]
	if !ok {
		return Rubric{}, ErrUnknownRubric{Kind: KindEssayComponent, Selector: string(component)}
	}
	return r, nil
}

// Petal returns the PETAL body-paragraph rubric.
func (c *Catalog) Petal() Rubric {
	return c.petal
}

// ShortAnswer builds a single-criterion rubric scaled to the marks the
// question is worth. Short-answer questions carry their own mark
// allocations, so the rubric is derived rather than stored.
func (c *Catalog) ShortAnswer(marks int) (Rubric, error) {
	if marks < 1 || marks > 20 {
		return Rubric{}, ErrUnknownRubric{Kind: KindShortAnswer, Selector: fmt.Sprintf("%d marks", marks)}
	}
	return Rubric{
		Kind: KindShortAnswer,
		Name: fmt.Sprintf("Unseen text response (%d marks)", marks),
		Criteria: []Criterion{
			{
				Name:     "Response quality",
				MaxScore: float64(marks),
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Directly answers the question asked",
					"Identifies a relevant technique or feature of the text",
					"Supports the answer with a brief reference to the text",
					"Explains the effect or meaning created",
				},
				Keywords: []string{"technique", "effect", "suggests", "conveys", "imagery", "metaphor", "tone"},
			},
		},
	}, nil
}

func essayRubric(variant EssayVariant) Rubric {
	// Both scales share criteria; only the per-criterion maximum differs.
	perCriterion := 2.0
	name := "HSC essay (10-point)"
	if variant == EssayVariantTwenty {
		perCriterion = 4.0
		name = "HSC essay (20-mark)"
	}

	return Rubric{
		Kind: KindEssay,
		Name: name,
		Criteria: []Criterion{
			{
				Name:     "Thesis and argument",
				MaxScore: perCriterion,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Presents a clear, sustained thesis responsive to the question",
					"Argument develops logically across the essay",
					"Engages conceptually with the module's ideas",
				},
				Keywords: []string{"thesis", "argue", "contend", "notion", "concept", "perspective", "ultimately"},
			},
			{
				Name:     "Structure",
				MaxScore: perCriterion,
				Weight:   1,
				Class:    ClassStructure,
				Guidance: []string{
					"Introduction, body paragraphs and conclusion are all present",
					"Paragraphs are sequenced to build the argument",
					"Topic sentences signpost each paragraph's idea",
				},
				Keywords: []string{"firstly", "furthermore", "however", "finally", "in conclusion", "moreover"},
			},
			{
				Name:     "Evidence",
				MaxScore: perCriterion,
				Weight:   1,
				Class:    ClassEvidence,
				Guidance: []string{
					"Quotations are integrated, accurate and attributed",
					"Evidence is drawn from across the prescribed text",
					"Each claim is supported by textual detail",
				},
				Keywords: []string{"quote", "states", "describes", "scene", "chapter", "act", "stanza"},
			},
			{
				Name:     "Analysis",
				MaxScore: perCriterion,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Identifies techniques and explains their effect",
					"Links evidence back to the thesis rather than retelling plot",
					"Considers the composer's purpose and context",
				},
				Keywords: []string{"metaphor", "symbolism", "irony", "juxtaposition", "imagery", "highlights", "reinforces", "conveys"},
			},
			{
				Name:     "Expression",
				MaxScore: perCriterion,
				Weight:   1,
				Class:    ClassExpression,
				Guidance: []string{
					"Formal register sustained throughout",
					"Varied sentence structure and precise vocabulary",
					"Free of errors that obscure meaning",
				},
				Keywords: []string{},
			},
		},
	}
}

func introductionRubric() Rubric {
	return Rubric{
		Kind: KindEssayComponent,
		Name: "Essay introduction",
		Criteria: []Criterion{
			{
				Name:     "Thesis statement",
				MaxScore: 3,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Opens with a conceptual statement answering the question",
					"Takes a clear position rather than restating the topic",
				},
				Keywords: []string{"thesis", "argue", "explore", "reveal", "notion"},
			},
			{
				Name:     "Roadmap",
				MaxScore: 3,
				Weight:   1,
				Class:    ClassStructure,
				Guidance: []string{
					"Names the text and composer",
					"Previews the main ideas each body paragraph will develop",
				},
				Keywords: []string{"through", "examine", "firstly", "explore"},
			},
			{
				Name:     "Expression",
				MaxScore: 4,
				Weight:   1,
				Class:    ClassExpression,
				Guidance: []string{
					"Concise, formal and confident register",
					"Avoids vague openers and announced intentions",
				},
				Keywords: []string{},
			},
		},
	}
}

func bodyRubric() Rubric {
	return Rubric{
		Kind: KindEssayComponent,
		Name: "Essay body paragraph",
		Criteria: []Criterion{
			{
				Name:     "Topic sentence",
				MaxScore: 2,
				Weight:   1,
				Class:    ClassStructure,
				Guidance: []string{
					"Opens with one clear idea tied to the thesis",
				},
				Keywords: []string{"furthermore", "moreover", "additionally"},
			},
			{
				Name:     "Evidence",
				MaxScore: 4,
				Weight:   1,
				Class:    ClassEvidence,
				Guidance: []string{
					"Includes at least one integrated quotation",
					"Evidence is specific, not paraphrased plot",
				},
				Keywords: []string{"quote", "states", "writes"},
			},
			{
				Name:     "Analysis",
				MaxScore: 4,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Names the technique in the evidence",
					"Explains the effect and links it back to the argument",
				},
				Keywords: []string{"metaphor", "imagery", "symbolism", "conveys", "suggests", "emphasises"},
			},
		},
	}
}

func conclusionRubric() Rubric {
	return Rubric{
		Kind: KindEssayComponent,
		Name: "Essay conclusion",
		Criteria: []Criterion{
			{
				Name:     "Synthesis",
				MaxScore: 4,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Restates the thesis in fresh words",
					"Draws the body paragraphs' ideas together",
				},
				Keywords: []string{"ultimately", "thus", "therefore", "in conclusion"},
			},
			{
				Name:     "Closure",
				MaxScore: 3,
				Weight:   1,
				Class:    ClassStructure,
				Guidance: []string{
					"Ends with a broader insight rather than new evidence",
				},
				Keywords: []string{"enduring", "resonates", "reminds"},
			},
			{
				Name:     "Expression",
				MaxScore: 3,
				Weight:   1,
				Class:    ClassExpression,
				Guidance: []string{
					"Measured, conclusive register without repetition",
				},
				Keywords: []string{},
			},
		},
	}
}

func petalRubric() Rubric {
	return Rubric{
		Kind: KindPetalParagraph,
		Name: "PETAL paragraph",
		Criteria: []Criterion{
			{
				Name:     "Point",
				MaxScore: 2,
				Weight:   1,
				Class:    ClassStructure,
				Guidance: []string{
					"States one idea that answers the question",
				},
				Keywords: []string{},
			},
			{
				Name:     "Evidence",
				MaxScore: 2,
				Weight:   1,
				Class:    ClassEvidence,
				Guidance: []string{
					"Quotes directly from the text",
					"Quotation is short and relevant to the point",
				},
				Keywords: []string{"quote", "states"},
			},
			{
				Name:     "Technique",
				MaxScore: 2,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Correctly names the technique in the evidence",
				},
				Keywords: []string{"metaphor", "simile", "imagery", "alliteration", "personification", "symbolism", "irony"},
			},
			{
				Name:     "Analysis",
				MaxScore: 2,
				Weight:   1,
				Class:    ClassAnalysis,
				Guidance: []string{
					"Explains the effect of the technique on meaning",
				},
				Keywords: []string{"conveys", "suggests", "highlights", "emphasises", "reveals"},
			},
			{
				Name:     "Link",
				MaxScore: 2,
				Weight:   1,
				Class:    ClassStructure,
				Guidance: []string{
					"Final sentence ties the paragraph back to the question",
				},
				Keywords: []string{"therefore", "thus", "ultimately"},
			},
		},
	}
}
