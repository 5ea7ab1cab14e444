// Package lexicon holds the fixed vocabulary the detector and extractor match
// against: the inventory keyword gate, per-intent keyword sets, and the
// condition synonym table. The built-in tables can be overridden by a JSON
// registry file validated against a schema before acceptance.
package lexicon

import (
	"strings"
	"unicode"

	"inventory-nlu/internal/models"
)

// ConditionSynonym maps one phrase to a condition. Synonyms are kept in a
// slice, not a map: the first matching entry wins and iteration order is the
// tie-break.
type ConditionSynonym struct {
	Phrase    string           `json:"phrase"`
	Condition models.Condition `json:"condition"`
}

// Lexicon is the complete vocabulary for intent detection.
type Lexicon struct {
	InventoryKeywords  []string           `json:"inventoryKeywords"`
	CatalogingKeywords []string           `json:"catalogingKeywords"`
	SearchVerbs        []string           `json:"searchVerbs"`
	UpdateVerbs        []string           `json:"updateVerbs"`
	DeleteVerbs        []string           `json:"deleteVerbs"`
	AnalyticsKeywords  []string           `json:"analyticsKeywords"`
	HelpKeywords       []string           `json:"helpKeywords"`
	ExportKeywords     []string           `json:"exportKeywords"`
	BatchKeywords      []string           `json:"batchKeywords"`
	ConditionSynonyms  []ConditionSynonym `json:"conditionSynonyms"`
}

// Default returns the built-in vocabulary.
func Default() *Lexicon {
	return &Lexicon{
		InventoryKeywords: []string{
			"book", "books", "inventory", "stock", "shelf", "catalog",
			"search", "find", "show", "list", "get",
			"add", "update", "change", "set", "move",
			"delete", "remove", "clear",
			"count", "total", "stats", "report", "summary", "how many",
			"help", "commands",
			"export", "backup",
			"price", "qty", "quantity", "location", "condition",
		},
		CatalogingKeywords: []string{
			"catalog", "scan", "add", "books", "book", "inventory", "recognize",
		},
		SearchVerbs: []string{"find", "search", "show", "list", "get"},
		UpdateVerbs: []string{"update", "change", "set", "modify", "move"},
		DeleteVerbs: []string{"delete", "remove", "clear"},
		AnalyticsKeywords: []string{
			"count", "total", "stats", "statistics", "report", "summary", "how many",
		},
		HelpKeywords: []string{
			"help", "commands", "what can", "how to", "how do i", "instructions",
		},
		ExportKeywords: []string{"export", "backup", "save", "download"},
		BatchKeywords:  []string{"all", "multiple", "batch", "bulk"},
		ConditionSynonyms: []ConditionSynonym{
			{Phrase: "brand new", Condition: models.ConditionNew},
			{Phrase: "new", Condition: models.ConditionNew},
			{Phrase: "mint", Condition: models.ConditionNew},
			{Phrase: "second hand", Condition: models.ConditionUsed},
			{Phrase: "secondhand", Condition: models.ConditionUsed},
			{Phrase: "pre-owned", Condition: models.ConditionUsed},
			{Phrase: "used", Condition: models.ConditionUsed},
			{Phrase: "damaged", Condition: models.ConditionDamaged},
			{Phrase: "worn", Condition: models.ConditionDamaged},
			{Phrase: "torn", Condition: models.ConditionDamaged},
			{Phrase: "broken", Condition: models.ConditionDamaged},
		},
	}
}

// HasInventoryKeyword is the detector's fast-path gate: a single pass that
// decides whether the message carries any inventory vocabulary at all. It is
// O(len(message)): one lowering, one tokenization, set lookups.
func (l *Lexicon) HasInventoryKeyword(message string) bool {
	return l.matchesAny(message, l.InventoryKeywords)
}

// MatchesAny reports whether the lowered message contains any of the given
// words or phrases. Single words match on token boundaries; phrases match as
// substrings.
func (l *Lexicon) MatchesAny(message string, vocab []string) bool {
	return l.matchesAny(message, vocab)
}

func (l *Lexicon) matchesAny(message string, vocab []string) bool {
	lowered := strings.ToLower(message)
	tokens := tokenSet(lowered)
	for _, w := range vocab {
		if strings.ContainsRune(w, ' ') || strings.ContainsRune(w, '-') {
			if strings.Contains(lowered, w) {
				return true
			}
			continue
		}
		if _, ok := tokens[w]; ok {
			return true
		}
	}
	return false
}

// MatchCondition returns the first condition whose synonym appears in the
// text, or "" when none does. Matching is case-insensitive substring; the
// synonym table order is the tie-break.
func (l *Lexicon) MatchCondition(text string) models.Condition {
	lowered := strings.ToLower(text)
	for _, syn := range l.ConditionSynonyms {
		if strings.Contains(lowered, syn.Phrase) {
			return syn.Condition
		}
	}
	return ""
}

// StripLeadingWords removes leading occurrences of the given words and
// phrases (plus filler like "me", "the", "a", "for") from the message and
// returns the trimmed residue. It is the single strip utility shared by the
// detector and the search-query extractor.
func StripLeadingWords(message string, vocab ...[]string) string {
	residue := strings.TrimSpace(message)
	filler := []string{"me", "all", "please"}
	for {
		lowered := strings.ToLower(residue)
		stripped := false
		for _, set := range vocab {
			for _, w := range set {
				if strings.HasPrefix(lowered, w) && boundaryAfter(lowered, len(w)) {
					residue = strings.TrimSpace(residue[len(w):])
					residue = strings.TrimLeft(residue, ":,")
					residue = strings.TrimSpace(residue)
					stripped = true
					break
				}
			}
			if stripped {
				break
			}
		}
		if !stripped {
			for _, w := range filler {
				lowered = strings.ToLower(residue)
				if strings.HasPrefix(lowered, w) && boundaryAfter(lowered, len(w)) {
					residue = strings.TrimSpace(residue[len(w):])
					stripped = true
					break
				}
			}
		}
		if !stripped || residue == "" {
			return residue
		}
	}
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func tokenSet(lowered string) map[string]struct{} {
	set := make(map[string]struct{})
	start := -1
	for i, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			set[lowered[start:i]] = struct{}{}
			start = -1
		}
	}
	if start >= 0 {
		set[lowered[start:]] = struct{}{}
	}
	return set
}
