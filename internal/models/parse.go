package models

// ParseMethod identifies which parsing strategy produced a record.
type ParseMethod string

const (
	MethodStandard     ParseMethod = "STANDARD"
	MethodAlternative1 ParseMethod = "ALTERNATIVE_1"
	MethodAlternative2 ParseMethod = "ALTERNATIVE_2"
	MethodAlternative3 ParseMethod = "ALTERNATIVE_3"
	MethodFallback     ParseMethod = "FALLBACK"
)

// ParsedBook is one validated, confidence-scored record extracted from an
// oracle response. Kannada title/author are optional. Flags carries
// non-fatal warnings (for example a suspiciously short title); flagged
// records are surfaced, never silently dropped.
type ParsedBook struct {
	EnglishTitle  string      `json:"englishTitle"`
	EnglishAuthor string      `json:"englishAuthor"`
	KannadaTitle  string      `json:"kannadaTitle,omitempty"`
	KannadaAuthor string      `json:"kannadaAuthor,omitempty"`
	Confidence    float64     `json:"confidence"`
	Method        ParseMethod `json:"parsingMethod"`
	Flags         []string    `json:"flags,omitempty"`
}

// ParseResult is the outcome of parsing one oracle response. When Success is
// false, Books is empty and ErrorMessage holds a human-readable reason; the
// caller should re-ask the oracle or fall back to manual entry.
type ParseResult struct {
	Success      bool         `json:"success"`
	Books        []ParsedBook `json:"books"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
}
