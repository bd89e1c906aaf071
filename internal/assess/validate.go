package assess

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/kaptinlin/jsonrepair"

	"github.com/essaymark/essaymark-api/internal/rubric"
)

// replyPayload and replyCriterion define the wire shape the generation
// service is instructed to produce. PromptBuilder renders its schema example
// from these structs, so their json tags are the single source of truth for
// field names on both sides.
type replyPayload struct {
	Criteria        []replyCriterion `json:"criteria"`
	OverallComment  string           `json:"overallComment"`
	Recommendations []string         `json:"recommendations"`
}

type replyCriterion struct {
	Criterion    string   `json:"criterion"`
	Score        float64  `json:"score"`
	Comment      string   `json:"comment"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// validatedReply is a reply that passed shape checks, with scores clamped
// and optional fields defaulted.
type validatedReply struct {
	Criteria        []CriterionResult
	OverallComment  string
	Recommendations []string
}

// ValidateReply parses a sanitized candidate against the rubric. The policy
// is strict on shape and lenient on bounds: a missing or non-numeric score
// means the service ignored the schema and the whole reply is rejected with
// ErrMalformedReply, while out-of-range scores are silently clamped and
// missing optional fields are filled with empty values.
func ValidateReply(candidate string, rb rubric.Rubric) (validatedReply, error) {
	value, err := parseLenient(candidate)
	if err != nil {
		return validatedReply{}, err
	}

	object, err := coerceObject(value)
	if err != nil {
		return validatedReply{}, err
	}

	entries, err := coerceCriteria(object["criteria"])
	if err != nil {
		return validatedReply{}, err
	}

	if len(entries) < len(rb.Criteria) {
		return validatedReply{}, fmt.Errorf("%w: %d criteria entries, rubric has %d", ErrMalformedReply, len(entries), len(rb.Criteria))
	}

	reply := validatedReply{
		OverallComment:  stringField(object, "overallComment"),
		Recommendations: stringSliceField(object, "recommendations"),
	}

	for i, criterion := range rb.Criteria {
		entry, ok := entries[i].(map[string]interface{})
		if !ok {
			return validatedReply{}, fmt.Errorf("%w: criteria entry %d is not an object", ErrMalformedReply, i)
		}

		score, err := numericField(entry, "score")
		if err != nil {
			return validatedReply{}, fmt.Errorf("%w: criterion %q: %v", ErrMalformedReply, criterion.Name, err)
		}

		reply.Criteria = append(reply.Criteria, CriterionResult{
			// The rubric's name is normative regardless of what the reply
			// called the criterion.
			Criterion:    criterion.Name,
			Score:        clamp(score, 0, criterion.MaxScore),
			MaxScore:     criterion.MaxScore,
			Comment:      stringField(entry, "comment"),
			Strengths:    stringSliceField(entry, "strengths"),
			Improvements: stringSliceField(entry, "improvements"),
		})
	}

	return reply, nil
}

// parseLenient attempts a strict JSON parse, then a single repair pass for
// the defects models commonly produce: trailing commas, single quotes,
// truncated tails.
func parseLenient(candidate string) (interface{}, error) {
	var value interface{}
	if err := json.Unmarshal([]byte(candidate), &value); err == nil {
		return value, nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: not parseable JSON", ErrMalformedReply)
	}
	if err := json.Unmarshal([]byte(repaired), &value); err != nil {
		return nil, fmt.Errorf("%w: not parseable JSON after repair", ErrMalformedReply)
	}
	return value, nil
}

// coerceObject unwraps exactly one level when an array was returned where an
// object was expected. No deeper coercion is attempted.
func coerceObject(value interface{}) (map[string]interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		if len(v) == 1 {
			if object, ok := v[0].(map[string]interface{}); ok {
				return object, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedReply)
}

// coerceCriteria wraps a single object into a one-element array when an
// array was expected, the mirror of coerceObject.
func coerceCriteria(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		return []interface{}{v}, nil
	}
	return nil, fmt.Errorf("%w: criteria field missing or not an array", ErrMalformedReply)
}

func numericField(object map[string]interface{}, key string) (float64, error) {
	raw, ok := object[key]
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	number, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("field %q is not a number", key)
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Errorf("field %q is not finite", key)
	}
	return number, nil
}

func stringField(object map[string]interface{}, key string) string {
	if s, ok := object[key].(string); ok {
		return s
	}
	return ""
}

func stringSliceField(object map[string]interface{}, key string) []string {
	switch v := object[key].(type) {
	case []interface{}:
		out := []string{}
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{}
	}
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
