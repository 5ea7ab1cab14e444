// Package detector classifies user messages into exactly one Intent by
// walking a fixed priority list of specialized matchers. Structured patterns
// (manual entry, explicit verbs) run before keyword-only classifiers so a
// command like "update ... to ..." is never swallowed by a generic match.
package detector

import (
	"regexp"
	"strings"

	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/models"
	"inventory-nlu/internal/nlu/extractor"
	"inventory-nlu/internal/nlu/lexicon"
)

// Detector is stateless and safe for concurrent use.
type Detector struct {
	lex    *lexicon.Lexicon
	ext    *extractor.Extractor
	logger logger.Logger
}

// New builds a Detector sharing the given lexicon and extractor.
func New(lex *lexicon.Lexicon, ext *extractor.Extractor, log logger.Logger) *Detector {
	return &Detector{
		lex:    lex,
		ext:    ext,
		logger: log.With(map[string]interface{}{"component": "detector"}),
	}
}

var (
	manualEntryPrefix  = regexp.MustCompile(`(?i)^\s*add\s+(?:a\s+|new\s+)?book\b`)
	manualEntryLabeled = regexp.MustCompile(`(?is)\btitle\s*[:=].{0,200}?\bauthor\s*[:=]`)
	manualEntryNewBook = regexp.MustCompile(`(?i)^\s*(?:new\s+book|manual\s+entry)\s*[:\-]`)

	updateToPattern = regexp.MustCompile(`(?i)\b(?:update|change|set|modify)\s+(?:the\s+)?(?:price|cost|quantity|qty|stock|location|shelf|condition)\s+(?:of\s+|for\s+)?(.{1,120}?)\s+to\s+(.{1,80})\s*$`)
	updateEqPattern = regexp.MustCompile(`(?i)\b(?:update|change|set|modify)\s+(.{1,120}?)\s*=\s*(.{1,80})\s*$`)
	movePattern     = regexp.MustCompile(`(?i)\bmove\s+(.{1,120}?)\s+to\s+(.{1,80})\s*$`)

	deletePattern = regexp.MustCompile(`(?i)\b(?:delete|remove|clear)\s+(?:the\s+)?(?:book\s+)?(.{1,120}?)\s*$`)
)

// DetectIntent classifies one message. It is total: any input produces
// exactly one intent, and an internal failure degrades to RegularChat with
// the original message preserved.
func (d *Detector) DetectIntent(message string, hasImage bool) (intent models.Intent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("intent detection recovered from panic", map[string]interface{}{
				"panic": r,
			})
			intent = models.RegularChat{Msg: message}
		}
	}()

	// Fast path: ordinary conversation short-circuits the whole cascade.
	inventoryFlavored := d.lex.HasInventoryKeyword(message)
	if !hasImage && !inventoryFlavored {
		return models.RegularChat{Msg: message}
	}

	if hasImage && d.lex.MatchesAny(message, d.lex.CatalogingKeywords) {
		return models.BookCataloging{Msg: message, HasImage: true}
	}

	if it, ok := d.tryManualEntry(message); ok {
		return it
	}
	if it, ok := d.trySearch(message); ok {
		return it
	}
	if it, ok := d.tryUpdate(message); ok {
		return it
	}
	if it, ok := d.tryDelete(message); ok {
		return it
	}
	if d.lex.MatchesAny(message, d.lex.AnalyticsKeywords) {
		return models.InventoryAnalytics{Msg: message, AnalyticsType: d.analyticsType(message)}
	}
	if d.lex.MatchesAny(message, d.lex.HelpKeywords) {
		return models.InventoryHelp{Msg: message}
	}
	if d.lex.MatchesAny(message, d.lex.ExportKeywords) {
		return models.InventoryExport{Msg: message, ExportType: d.exportType(message)}
	}
	if d.lex.MatchesAny(message, d.lex.BatchKeywords) {
		return models.BatchOperation{Msg: message, OperationType: d.batchType(message)}
	}

	if inventoryFlavored {
		// Inventory vocabulary with no recognizable command shape.
		return models.InventoryHelp{Msg: message}
	}
	return models.RegularChat{Msg: message}
}

func (d *Detector) tryManualEntry(message string) (models.Intent, bool) {
	if !manualEntryPrefix.MatchString(message) &&
		!manualEntryLabeled.MatchString(message) &&
		!manualEntryNewBook.MatchString(message) {
		return nil, false
	}

	info := d.ext.ExtractBookInfo(message)
	if !info.IsValid() {
		return nil, false
	}

	d.logger.Debug("manual entry detected", map[string]interface{}{
		"title":  info.Title,
		"author": info.Author,
	})
	return models.ManualBookEntry{
		Msg:      message,
		Title:    info.Title,
		Author:   info.Author,
		Price:    info.Price,
		Quantity: info.Quantity,
		Location: info.Location,
	}, true
}

func (d *Detector) trySearch(message string) (models.Intent, bool) {
	if !d.lex.MatchesAny(message, d.lex.SearchVerbs) {
		return nil, false
	}

	// Sub-type is decided by keyword presence before any query extraction.
	searchType := d.searchType(message)
	query := d.ext.ExtractSearchQuery(message, searchType)
	return models.InventorySearch{Msg: message, Query: query, SearchType: searchType}, true
}

func (d *Detector) searchType(message string) models.SearchType {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "author") || strings.Contains(lowered, " by "):
		return models.SearchByAuthor
	case strings.Contains(lowered, "titled") || strings.Contains(lowered, "title") ||
		strings.Contains(lowered, "named") || strings.Contains(lowered, "called"):
		return models.SearchByTitle
	case strings.Contains(lowered, "location") || strings.Contains(lowered, "shelf") ||
		strings.Contains(lowered, "section"):
		return models.SearchByLocation
	case strings.Contains(lowered, "condition") || d.lex.MatchCondition(lowered) != "":
		return models.SearchByCondition
	case strings.Contains(lowered, "recent") || strings.Contains(lowered, "latest"):
		return models.SearchRecent
	case strings.Contains(lowered, "low stock") || strings.Contains(lowered, "running low") ||
		strings.Contains(lowered, "out of stock"):
		return models.SearchLowStock
	default:
		return models.SearchGeneral
	}
}

func (d *Detector) tryUpdate(message string) (models.Intent, bool) {
	if !d.lex.MatchesAny(message, d.lex.UpdateVerbs) {
		return nil, false
	}

	// Update type comes from keyword presence, ahead of pattern matching.
	updateType := d.updateType(message)

	if m := updateToPattern.FindStringSubmatch(message); m != nil {
		return models.UpdateBook{
			Msg:            message,
			UpdateType:     updateType,
			BookIdentifier: cleanTarget(m[1]),
			NewValue:       cleanTarget(m[2]),
		}, true
	}
	if m := updateEqPattern.FindStringSubmatch(message); m != nil {
		return models.UpdateBook{
			Msg:            message,
			UpdateType:     updateType,
			BookIdentifier: cleanTarget(m[1]),
			NewValue:       cleanTarget(m[2]),
		}, true
	}
	if m := movePattern.FindStringSubmatch(message); m != nil {
		return models.UpdateBook{
			Msg:            message,
			UpdateType:     models.UpdateLocation,
			BookIdentifier: cleanTarget(m[1]),
			NewValue:       cleanTarget(m[2]),
		}, true
	}
	return nil, false
}

func (d *Detector) updateType(message string) models.UpdateType {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "price") || strings.Contains(lowered, "cost"):
		return models.UpdatePrice
	case strings.Contains(lowered, "quantity") || strings.Contains(lowered, "qty") ||
		strings.Contains(lowered, "stock"):
		return models.UpdateQuantity
	case strings.Contains(lowered, "location") || strings.Contains(lowered, "shelf") ||
		strings.Contains(lowered, "section") || strings.Contains(lowered, "move"):
		return models.UpdateLocation
	case strings.Contains(lowered, "condition"):
		return models.UpdateCondition
	default:
		return models.UpdateGeneral
	}
}

func (d *Detector) tryDelete(message string) (models.Intent, bool) {
	if !d.lex.MatchesAny(message, d.lex.DeleteVerbs) {
		return nil, false
	}
	identifier := ""
	if m := deletePattern.FindStringSubmatch(message); m != nil {
		identifier = cleanTarget(m[1])
	}
	return models.DeleteBook{Msg: message, BookIdentifier: identifier}, true
}

func (d *Detector) analyticsType(message string) models.AnalyticsType {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "value") || strings.Contains(lowered, "worth"):
		return models.AnalyticsValue
	case strings.Contains(lowered, "how many") || strings.Contains(lowered, "count") ||
		strings.Contains(lowered, "total"):
		return models.AnalyticsCount
	case strings.Contains(lowered, "condition"):
		return models.AnalyticsByCondition
	case strings.Contains(lowered, "location") || strings.Contains(lowered, "shelf"):
		return models.AnalyticsByLocation
	case strings.Contains(lowered, "low stock") || strings.Contains(lowered, "running low"):
		return models.AnalyticsLowStock
	case strings.Contains(lowered, "recent") || strings.Contains(lowered, "activity"):
		return models.AnalyticsRecentActivity
	default:
		return models.AnalyticsGeneral
	}
}

func (d *Detector) exportType(message string) models.ExportType {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "condition"):
		return models.ExportByCondition
	case strings.Contains(lowered, "location") || strings.Contains(lowered, "shelf"):
		return models.ExportByLocation
	case strings.Contains(lowered, "recent"):
		return models.ExportRecent
	default:
		return models.ExportFull
	}
}

func (d *Detector) batchType(message string) models.BatchOperationType {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "delete") || strings.Contains(lowered, "remove") ||
		strings.Contains(lowered, "clear"):
		return models.BatchDeleteMultiple
	case strings.Contains(lowered, "move"):
		return models.BatchMoveMultiple
	case strings.Contains(lowered, "update") || strings.Contains(lowered, "change") ||
		strings.Contains(lowered, "set"):
		return models.BatchUpdateMultiple
	default:
		return models.BatchAddMultiple
	}
}

func cleanTarget(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'“”‘’`)
	return strings.Join(strings.Fields(s), " ")
}
