// Package parser turns free text produced by the generative oracle into
// validated, confidence-scored book records. The oracle is expected, but not
// guaranteed, to follow a delimited multi-record format, so parsing walks an
// ordered list of independent try-parse strategies and the first one that
// yields at least one plausible record wins. New formats are added by
// appending a strategy, never by touching existing ones.
package parser

import (
	"regexp"
	"strings"

	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/models"
)

// Config carries the parser's tunables.
type Config struct {
	// MinFieldLength is the minimum title/author length below which a
	// record is flagged (never dropped).
	MinFieldLength int
}

// DefaultConfig returns the standard parser settings.
func DefaultConfig() Config {
	return Config{MinFieldLength: 3}
}

// Parser is stateless and safe for concurrent use.
type Parser struct {
	cfg    Config
	logger logger.Logger
}

// New builds a Parser.
func New(cfg Config, log logger.Logger) *Parser {
	if cfg.MinFieldLength <= 0 {
		cfg.MinFieldLength = DefaultConfig().MinFieldLength
	}
	return &Parser{
		cfg:    cfg,
		logger: log.With(map[string]interface{}{"component": "parser"}),
	}
}

var (
	delimiterLine = regexp.MustCompile(`(?m)^\s*(?:-{3,}|\*{3,}|={3,})\s*$`)
	numberedLine  = regexp.MustCompile(`^\s*([1-4])[.):]\s*(.{1,200}?)\s*$`)
	lineLabel     = regexp.MustCompile(`(?i)^(?:english\s+)?(?:kannada\s+)?(?:title|author)\s*[:\-]\s*`)

	labeledTitle         = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*)?title\s*[:\-]\s*(.{1,200}?)\s*$`)
	labeledAuthor        = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*)?author\s*[:\-]\s*(.{1,200}?)\s*$`)
	labeledKannadaTitle  = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*)?kannada\s+title\s*[:\-]\s*(.{1,200}?)\s*$`)
	labeledKannadaAuthor = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*)?kannada\s+author\s*[:\-]\s*(.{1,200}?)\s*$`)

	compactLine = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*)?book\s*[:\-]?\s*(.{1,150}?)\s+by\s+(.{1,100}?)\s*(?:\(\s*kannada\s*[:\-]?\s*(.{1,150}?)(?:\s+by\s+(.{1,100}?))?\s*\))?\s*$`)

	// The author capture takes capitalized name tokens only, so trailing
	// prose ("... by Eckhart Tolle on the shelf") stays out of the name.
	quotedProse = regexp.MustCompile(`["'“”‘’]([^"'“”‘’]{1,200})["'“”‘’]\s+by\s+([A-Z][A-Za-z.\-']{0,30}(?:\s+[A-Z][A-Za-z.\-']{0,30}){0,4})`)
)

type strategy struct {
	method models.ParseMethod
	parse  func(string) []models.ParsedBook
}

// ParseResponse parses one oracle response. It never returns an error and
// never panics outward: unparseable input yields Success=false with a
// human-readable reason.
func (p *Parser) ParseResponse(raw string) (result models.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("response parsing recovered from panic", map[string]interface{}{
				"panic": r,
			})
			result = models.ParseResult{Success: false, ErrorMessage: "Internal parsing failure"}
		}
	}()

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.ParseResult{Success: false, ErrorMessage: "Empty AI response"}
	}

	strategies := []strategy{
		{models.MethodStandard, p.parseStandard},
		{models.MethodAlternative1, p.parseNumbered},
		{models.MethodAlternative2, p.parseLabeled},
		{models.MethodAlternative3, p.parseCompact},
		{models.MethodFallback, p.parseFreeText},
	}

	for _, s := range strategies {
		books := s.parse(trimmed)
		if len(books) == 0 {
			continue
		}
		p.logger.Debug("oracle response parsed", map[string]interface{}{
			"method": string(s.method),
			"books":  len(books),
		})
		return models.ParseResult{Success: true, Books: books}
	}

	return models.ParseResult{
		Success:      false,
		ErrorMessage: "Response did not match any known book format",
	}
}

// parseStandard handles the expected oracle format: records fenced by
// delimiter lines, each with four numbered lines (title, author, optional
// Kannada title, optional Kannada author).
func (p *Parser) parseStandard(text string) []models.ParsedBook {
	if !delimiterLine.MatchString(text) {
		return nil
	}
	var books []models.ParsedBook
	for _, block := range delimiterLine.Split(text, -1) {
		if b, ok := p.numberedBlock(block, models.MethodStandard); ok {
			books = append(books, b)
		}
	}
	return books
}

// parseNumbered handles the same four numbered lines without any fences.
func (p *Parser) parseNumbered(text string) []models.ParsedBook {
	var books []models.ParsedBook
	var current []string
	flush := func() {
		if len(current) > 0 {
			if b, ok := p.numberedBlock(strings.Join(current, "\n"), models.MethodAlternative1); ok {
				books = append(books, b)
			}
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			flush()
			continue
		}
		if m[1] == "1" {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return books
}

// numberedBlock extracts one record from up to four numbered lines.
func (p *Parser) numberedBlock(block string, method models.ParseMethod) (models.ParsedBook, bool) {
	fields := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := cleanField(lineLabel.ReplaceAllString(m[2], ""))
		if value == "" {
			continue
		}
		// First occurrence wins; a repeated line number means a malformed
		// block and the later value is ignored.
		if _, seen := fields[m[1]]; !seen {
			fields[m[1]] = value
		}
	}

	book := models.ParsedBook{
		EnglishTitle:  fields["1"],
		EnglishAuthor: fields["2"],
		KannadaTitle:  fields["3"],
		KannadaAuthor: fields["4"],
		Method:        method,
	}
	if book.EnglishTitle == "" || book.EnglishAuthor == "" {
		return models.ParsedBook{}, false
	}
	book.Confidence = p.scoreStructured(book, method == models.MethodStandard)
	p.flagShortFields(&book)
	return book, true
}

// parseLabeled handles explicit Title:/Author:/Kannada Title:/Kannada
// Author: lines, one record per Title line.
func (p *Parser) parseLabeled(text string) []models.ParsedBook {
	var books []models.ParsedBook
	var current *models.ParsedBook
	flush := func() {
		if current != nil && current.EnglishTitle != "" && current.EnglishAuthor != "" {
			current.Confidence = p.scoreStructured(*current, false)
			p.flagShortFields(current)
			books = append(books, *current)
		}
		current = nil
	}
	for _, line := range strings.Split(text, "\n") {
		switch {
		case labeledKannadaTitle.MatchString(line):
			if current != nil {
				current.KannadaTitle = cleanField(labeledKannadaTitle.FindStringSubmatch(line)[1])
			}
		case labeledKannadaAuthor.MatchString(line):
			if current != nil {
				current.KannadaAuthor = cleanField(labeledKannadaAuthor.FindStringSubmatch(line)[1])
			}
		case labeledTitle.MatchString(line):
			flush()
			current = &models.ParsedBook{
				EnglishTitle: cleanField(labeledTitle.FindStringSubmatch(line)[1]),
				Method:       models.MethodAlternative2,
			}
		case labeledAuthor.MatchString(line):
			if current != nil {
				current.EnglishAuthor = cleanField(labeledAuthor.FindStringSubmatch(line)[1])
			}
		}
	}
	flush()
	return books
}

// parseCompact handles single-line "Book: X by Y (Kannada: A by B)" records.
func (p *Parser) parseCompact(text string) []models.ParsedBook {
	var books []models.ParsedBook
	for _, line := range strings.Split(text, "\n") {
		m := compactLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		book := models.ParsedBook{
			EnglishTitle:  cleanField(m[1]),
			EnglishAuthor: cleanField(m[2]),
			KannadaTitle:  cleanField(m[3]),
			KannadaAuthor: cleanField(m[4]),
			Method:        models.MethodAlternative3,
		}
		if book.EnglishTitle == "" || book.EnglishAuthor == "" {
			continue
		}
		book.Confidence = p.scoreStructured(book, false)
		p.flagShortFields(&book)
		books = append(books, book)
	}
	return books
}

// parseFreeText is the last resort: a quoted phrase followed by "by <name>"
// anywhere in prose.
func (p *Parser) parseFreeText(text string) []models.ParsedBook {
	var books []models.ParsedBook
	for _, m := range quotedProse.FindAllStringSubmatch(text, -1) {
		author := clipProseAuthor(m[2])
		book := models.ParsedBook{
			EnglishTitle:  cleanField(m[1]),
			EnglishAuthor: cleanField(author),
			Method:        models.MethodFallback,
			Confidence:    0.5,
		}
		if book.EnglishTitle == "" || book.EnglishAuthor == "" {
			continue
		}
		p.flagShortFields(&book)
		books = append(books, book)
	}
	return books
}

// scoreStructured assigns confidence by field completeness. A fenced
// standard record with all four fields scores highest; English-only
// structured records land in the middle band.
func (p *Parser) scoreStructured(book models.ParsedBook, standard bool) float64 {
	populated := 0
	for _, f := range []string{book.EnglishTitle, book.EnglishAuthor, book.KannadaTitle, book.KannadaAuthor} {
		if f != "" {
			populated++
		}
	}
	base := 0.55
	if standard {
		base = 0.60
	}
	conf := base + 0.075*float64(populated)
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func (p *Parser) flagShortFields(book *models.ParsedBook) {
	if len([]rune(book.EnglishTitle)) < p.cfg.MinFieldLength {
		book.Flags = append(book.Flags, "title is suspiciously short")
	}
	if len([]rune(book.EnglishAuthor)) < p.cfg.MinFieldLength {
		book.Flags = append(book.Flags, "author is suspiciously short")
	}
}

// clipProseAuthor cuts a prose-captured name at the first comma, newline, or
// parenthesis, or at a period closing a word of more than one letter. A
// period after a single letter is an initial ("J.R.R. Tolkien") and stays.
func clipProseAuthor(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', '\n', '(':
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

func cleanField(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'“”‘’`)
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), " ")
}
