package conversation

import (
	"encoding/json"
	"strings"
)

const (
	TypeProblem   = "problem"
	TypeParagraph = "paragraph"
	TypeGeneral   = "general"
)

// StructuredResult is the classification record recovered from free-form
// model output.
type StructuredResult struct {
	Type                  string `json:"type"`
	SolutionOrExplanation string `json:"solution_or_explanation"`
	ExtraNotes            string `json:"extra_notes"`
}

// Recover extracts a StructuredResult from raw model text. It is total: any
// text that cannot be parsed degrades to a "general" result carrying the raw
// text, so a malformed reply never surfaces as an error.
//
// Fallback order: whole-document JSON parse, then the first balanced-brace
// object substring, then the raw-text fallback.
func Recover(raw string) StructuredResult {
	if result, ok := parseResult(raw); ok {
		return result
	}

	if obj, ok := firstBalancedObject(raw); ok {
		if result, ok := parseResult(obj); ok {
			return result
		}
	}

	return StructuredResult{
		Type:                  TypeGeneral,
		SolutionOrExplanation: raw,
		ExtraNotes:            "",
	}
}

func parseResult(s string) (StructuredResult, bool) {
	var result StructuredResult
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		return StructuredResult{}, false
	}
	switch result.Type {
	case TypeProblem, TypeParagraph, TypeGeneral:
		return result, true
	}
	return StructuredResult{}, false
}

// firstBalancedObject finds the first top-level {...} substring by counting
// brace depth. Known limitation: braces inside string literals are counted
// too, so a quoted "}" can close the match early.
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
