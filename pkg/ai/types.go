package ai

import "context"

// Prompt is the single instruction payload sent to a generation model.
type Prompt struct {
	SystemRole      string
	UserPrompt      string
	Temperature     float32
	MaxOutputTokens int
}

// Generator describes a natural-language model that can produce marking
// feedback. Implementations return the raw reply text; interpreting it is
// the caller's concern.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}
