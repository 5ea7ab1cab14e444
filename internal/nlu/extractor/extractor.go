// Package extractor pulls typed field values (price, quantity, location,
// condition, title, author) out of free-form text using prioritized pattern
// rules. Every operation is pure: no match means an absent value, never an
// error, and nothing here panics outward.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/models"
	"inventory-nlu/internal/nlu/lexicon"
)

// Weights are the per-field contributions to the completeness confidence of
// an ExtractedBookInfo. They sum to 1.0 by default.
type Weights struct {
	Title     float64
	Author    float64
	Price     float64
	Quantity  float64
	Location  float64
	Condition float64
}

// DefaultWeights returns the standard field weighting: title and author
// dominate because a record is unusable without them.
func DefaultWeights() Weights {
	return Weights{
		Title:     0.40,
		Author:    0.40,
		Price:     0.10,
		Quantity:  0.05,
		Location:  0.03,
		Condition: 0.02,
	}
}

// Extractor runs the pattern rules. It holds no mutable state and is safe
// for concurrent use.
type Extractor struct {
	lex     *lexicon.Lexicon
	weights Weights
	logger  logger.Logger
}

// New builds an Extractor around the given lexicon and weights.
func New(lex *lexicon.Lexicon, weights Weights, log logger.Logger) *Extractor {
	return &Extractor{
		lex:     lex,
		weights: weights,
		logger:  log.With(map[string]interface{}{"component": "extractor"}),
	}
}

// All patterns are bounded (digit runs and field captures carry explicit
// length limits) so multi-kilobyte input cannot trigger pathological
// backtracking.
var (
	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`₹\s*(\d{1,7}(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\brs\.?\s*(\d{1,7}(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\b(\d{1,7}(?:\.\d{1,2})?)\s*rupees\b`),
		regexp.MustCompile(`(?i)\b(?:price|cost)\s*[:=]?\s*(?:₹|rs\.?)?\s*(\d{1,7}(?:\.\d{1,2})?)`),
		regexp.MustCompile(`\$\s*(\d{1,7}(?:\.\d{1,2})?)`),
	}

	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:qty|quantity|count)\s*[:=]?\s*(\d{1,5})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,5})\s*(?:copies|copy|books|pieces|pcs)\b`),
		regexp.MustCompile(`(?i)\bx\s*(\d{1,5})\b`),
	}

	locationLabeled       = regexp.MustCompile(`(?i)\b(?:location|shelf|section)\s*[:=]?\s*([A-Za-z0-9][A-Za-z0-9\-]{0,31})`)
	locationPrepositional = regexp.MustCompile(`(?i)\b(?:at|in)\s+([A-Za-z0-9][A-Za-z0-9\-]{0,31})\b`)

	// The title label outranks the book label: "book: title: X author: Y"
	// must capture X, not the inner label line.
	titleLabeled   = regexp.MustCompile(`(?i)\btitle\s*[:=]\s*(.{1,200})`)
	bookLabeled    = regexp.MustCompile(`(?i)\bbook\s*[:=]\s*(.{1,200})`)
	quotedBeforeBy = regexp.MustCompile(`["'“”‘’]([^"'“”‘’]{1,200})["'“”‘’]\s+by\b`)

	authorLabeled = regexp.MustCompile(`(?i)\bauthor\s*[:=]\s*(.{1,120})`)
	authorAfterBy = regexp.MustCompile(`(?i)\bby\s+(.{1,120})`)

	byToken = regexp.MustCompile(`(?i)\s\bby\b\s`)
)

// fieldLabels terminate a captured title or author: anything after them
// belongs to a different field.
var fieldLabels = []string{
	"price", "cost", "qty", "quantity", "count", "location", "shelf",
	"section", "condition", "author", "rs", "₹", "$",
}

// stopWords are rejected when they are all a captured title or author
// consists of.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "it": {}, "this": {}, "that": {},
	"book": {}, "books": {}, "new": {}, "my": {},
}

// locationStopWords are words the prepositional location pattern must not
// mistake for a shelf token ("in good condition", "in stock").
var locationStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "my": {}, "our": {}, "this": {}, "that": {},
	"good": {}, "excellent": {}, "poor": {}, "bad": {}, "new": {}, "used": {},
	"damaged": {}, "condition": {}, "stock": {}, "inventory": {}, "order": {},
	"english": {}, "kannada": {},
}

// ExtractPrice returns the first positive price found, or nil. Currency
// patterns are tried in priority order: ₹, Rs, rupees, labeled price/cost, $.
func (e *Extractor) ExtractPrice(text string) *float64 {
	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v <= 0 {
			continue
		}
		return &v
	}
	return nil
}

// ExtractQuantity returns the first positive quantity found, or nil.
func (e *Extractor) ExtractQuantity(text string) *int {
	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil || v <= 0 {
			continue
		}
		return &v
	}
	return nil
}

// ExtractLocation returns a shelf/section token, preferring an explicit
// label over a prepositional phrase, or "" when absent.
func (e *Extractor) ExtractLocation(text string) string {
	if m := locationLabeled.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := locationPrepositional.FindStringSubmatch(text); m != nil {
		if _, stop := locationStopWords[strings.ToLower(m[1])]; !stop {
			return m[1]
		}
	}
	return ""
}

// ExtractCondition maps the first condition synonym found in the text to its
// canonical value, or "" when none appears.
func (e *Extractor) ExtractCondition(text string) models.Condition {
	return e.lex.MatchCondition(text)
}

// ExtractTitle returns the book title, or "" when none can be found. Labeled
// forms win over the quoted-before-"by" form, which wins over splitting the
// text on the literal word "by".
func (e *Extractor) ExtractTitle(text string) string {
	for _, re := range []*regexp.Regexp{titleLabeled, bookLabeled} {
		if m := re.FindStringSubmatch(text); m != nil {
			if t := cleanTitle(m[1]); t != "" {
				return t
			}
		}
	}
	if m := quotedBeforeBy.FindStringSubmatch(text); m != nil {
		if t := cleanField(m[1]); t != "" && !isStopWordsOnly(t) {
			return t
		}
	}
	if left, _, ok := splitOnBy(text); ok {
		left = lexicon.StripLeadingWords(left,
			[]string{"add", "new"},
			[]string{"a book", "the book", "this book", "book"},
		)
		if t := cleanTitle(left); t != "" {
			return t
		}
	}
	return ""
}

// ExtractAuthor returns the author name, or "" when none can be found.
func (e *Extractor) ExtractAuthor(text string) string {
	if m := authorLabeled.FindStringSubmatch(text); m != nil {
		if a := cleanAuthor(m[1]); a != "" {
			return a
		}
	}
	if m := authorAfterBy.FindStringSubmatch(text); m != nil {
		if a := cleanAuthor(m[1]); a != "" {
			return a
		}
	}
	return ""
}

// ExtractBookInfo runs every field extractor over the message and scores the
// completeness of the result.
func (e *Extractor) ExtractBookInfo(message string) models.ExtractedBookInfo {
	info := models.ExtractedBookInfo{
		Title:     e.ExtractTitle(message),
		Author:    e.ExtractAuthor(message),
		Price:     e.ExtractPrice(message),
		Quantity:  e.ExtractQuantity(message),
		Location:  e.ExtractLocation(message),
		Condition: e.ExtractCondition(message),
		Language:  e.DetectLanguage(message),
	}
	info.Confidence = e.scoreConfidence(info)

	e.logger.Debug("book info extracted", map[string]interface{}{
		"hasTitle":   info.Title != "",
		"hasAuthor":  info.Author != "",
		"confidence": info.Confidence,
		"language":   info.Language,
	})
	return info
}

func (e *Extractor) scoreConfidence(info models.ExtractedBookInfo) float64 {
	score := 0.0
	if info.Title != "" {
		score += e.weights.Title
	}
	if info.Author != "" {
		score += e.weights.Author
	}
	if info.Price != nil {
		score += e.weights.Price
	}
	if info.Quantity != nil {
		score += e.weights.Quantity
	}
	if info.Location != "" {
		score += e.weights.Location
	}
	if info.Condition != "" {
		score += e.weights.Condition
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// DetectLanguage classifies the script of the text: Kannada codepoints only,
// Latin letters only, or both. Text with neither counts as English.
func (e *Extractor) DetectLanguage(text string) models.Language {
	hasKannada := false
	hasLatin := false
	for _, r := range text {
		switch {
		case r >= 0x0C80 && r <= 0x0CFF:
			hasKannada = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLatin = true
		}
		if hasKannada && hasLatin {
			return models.LanguageMixed
		}
	}
	if hasKannada {
		return models.LanguageKannada
	}
	return models.LanguageEnglish
}

// ExtractSearchQuery strips the leading search verb and the qualifier phrase
// belonging to the search type, returning the residual free text. When
// nothing remains the original message is returned so the caller always has
// something to search with.
func (e *Extractor) ExtractSearchQuery(message string, searchType models.SearchType) string {
	residue := lexicon.StripLeadingWords(message, e.lex.SearchVerbs)

	var qualifiers []string
	switch searchType {
	case models.SearchByAuthor:
		qualifiers = []string{"the books", "books written by", "books by", "written by", "books", "book", "author", "by"}
	case models.SearchByTitle:
		qualifiers = []string{"the books", "books titled", "book titled", "titled", "book named", "named", "called", "title", "books", "book"}
	case models.SearchByLocation:
		qualifiers = []string{"the books", "books at", "books in", "books on", "books", "book", "location", "shelf", "section", "at", "in", "on"}
	case models.SearchByCondition:
		qualifiers = []string{"the books", "books in", "books", "book", "condition"}
	default:
		qualifiers = []string{"the books", "books", "book"}
	}
	residue = lexicon.StripLeadingWords(residue, qualifiers)

	residue = cleanField(residue)
	if residue == "" {
		return message
	}
	return residue
}

// ValidateBookInfo returns one message per violated field rule. An empty
// slice means the record is acceptable.
func (e *Extractor) ValidateBookInfo(info models.ExtractedBookInfo) []string {
	var violations []string
	if strings.TrimSpace(info.Title) == "" {
		violations = append(violations, "title is blank")
	}
	if strings.TrimSpace(info.Author) == "" {
		violations = append(violations, "author is blank")
	}
	if info.Price != nil && *info.Price <= 0 {
		violations = append(violations, "price must be greater than zero")
	}
	if info.Quantity != nil && *info.Quantity <= 0 {
		violations = append(violations, "quantity must be greater than zero")
	}
	if info.Condition != "" && !models.IsValidCondition(info.Condition) {
		violations = append(violations, "condition must be one of New, Used, Damaged")
	}
	return violations
}

// splitOnBy splits the text on the first standalone " by " and reports
// whether both sides are non-empty.
func splitOnBy(text string) (left, right string, ok bool) {
	loc := byToken.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}
	left = strings.TrimSpace(text[:loc[0]])
	right = strings.TrimSpace(text[loc[1]:])
	return left, right, left != "" && right != ""
}

// cleanTitle clips a captured title at the word "by" or at any trailing
// field label, then normalizes it.
func cleanTitle(raw string) string {
	if loc := byToken.FindStringIndex(" " + raw); loc != nil && loc[0] == 0 {
		// raw begins with "by ...", so nothing usable precedes the author.
		return ""
	}
	if left, _, ok := splitOnBy(raw); ok {
		raw = left
	}
	raw = cutAtFieldLabel(raw)
	t := cleanField(raw)
	if isStopWordsOnly(t) {
		return ""
	}
	return t
}

// cleanAuthor clips a captured author at the first field label, comma, or
// sentence period. Periods after single-letter initials stay part of the
// name ("J.K. Rowling", "J.R.R. Tolkien").
func cleanAuthor(raw string) string {
	raw = clipAtNameEnd(raw)
	raw = cutAtFieldLabel(raw)
	a := cleanField(raw)
	if isStopWordsOnly(a) {
		return ""
	}
	return a
}

// clipAtNameEnd cuts the text at the first comma or newline, or at a period
// that closes a word of more than one letter. A period preceded by a single
// letter is an initial and belongs to the name.
func clipAtNameEnd(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', '\n':
			return s[:i]
		case '.':
			j := i
			for j > 0 && isASCIILetter(s[j-1]) {
				j--
			}
			if i-j > 1 {
				return s[:i]
			}
		}
	}
	return s
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// cutAtFieldLabel truncates the text at the first standalone field label
// (price, qty, location, ...).
func cutAtFieldLabel(text string) string {
	lowered := strings.ToLower(text)
	cut := len(text)
	for _, label := range fieldLabels {
		idx := 0
		for {
			i := strings.Index(lowered[idx:], label)
			if i < 0 {
				break
			}
			abs := idx + i
			if isWordBoundary(lowered, abs, len(label)) && abs < cut {
				cut = abs
				break
			}
			idx = abs + len(label)
		}
	}
	return text[:cut]
}

func isWordBoundary(s string, start, length int) bool {
	if start > 0 {
		prev := s[start-1]
		if isAlnumByte(prev) {
			return false
		}
	}
	end := start + length
	if end < len(s) && isAlnumByte(s[end]) {
		return false
	}
	return true
}

func isAlnumByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// cleanField strips surrounding quotes and punctuation and collapses
// whitespace.
func cleanField(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'“”‘’`)
	s = strings.Trim(s, " \t:,-")
	return strings.Join(strings.Fields(s), " ")
}

func isStopWordsOnly(s string) bool {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if _, ok := stopWords[f]; !ok {
			return false
		}
	}
	return true
}
