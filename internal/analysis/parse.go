package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a non-decodable or schema-nonconforming model output.
// Raw carries the offending text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse analysis: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripCodeFences removes markdown code-fence markers the model may have
// wrapped the JSON in despite the data-only instruction. Stripping twice
// yields the same result as stripping once.
func StripCodeFences(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

// Parse decodes the raw model output into a validated PropertyAnalysis.
// Any decode or shape failure surfaces as *ParseError; a result is never
// partially populated.
func Parse(raw string) (PropertyAnalysis, error) {
	clean := StripCodeFences(raw)
	if clean == "" {
		return PropertyAnalysis{}, &ParseError{Raw: raw, Err: fmt.Errorf("empty output")}
	}

	var wire wireAnalysis
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return PropertyAnalysis{}, &ParseError{Raw: raw, Err: fmt.Errorf("unmarshal: %w", err)}
	}
	if err := wire.validate(); err != nil {
		return PropertyAnalysis{}, &ParseError{Raw: raw, Err: err}
	}
	return wire.result(), nil
}
