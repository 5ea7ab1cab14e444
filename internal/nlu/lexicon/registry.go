package lexicon

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	apperrors "inventory-nlu/internal/common/errors"
)

// registrySchema constrains lexicon override files. Every section is
// optional; a present section fully replaces the built-in table.
const registrySchema = `{
  "type": "object",
  "properties": {
    "version": {"type": "string"},
    "inventoryKeywords":  {"type": "array", "items": {"type": "string", "minLength": 1}},
    "catalogingKeywords": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "searchVerbs":        {"type": "array", "items": {"type": "string", "minLength": 1}},
    "updateVerbs":        {"type": "array", "items": {"type": "string", "minLength": 1}},
    "deleteVerbs":        {"type": "array", "items": {"type": "string", "minLength": 1}},
    "analyticsKeywords":  {"type": "array", "items": {"type": "string", "minLength": 1}},
    "helpKeywords":       {"type": "array", "items": {"type": "string", "minLength": 1}},
    "exportKeywords":     {"type": "array", "items": {"type": "string", "minLength": 1}},
    "batchKeywords":      {"type": "array", "items": {"type": "string", "minLength": 1}},
    "conditionSynonyms": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "phrase":    {"type": "string", "minLength": 1},
          "condition": {"type": "string", "enum": ["New", "Used", "Damaged"]}
        },
        "required": ["phrase", "condition"]
      }
    }
  },
  "additionalProperties": false
}`

// LoadFile merges a JSON registry file over the built-in vocabulary. The file
// is schema-validated before any of it is applied, so a malformed registry
// never produces a half-overridden lexicon. Every failure is reported as a
// LEXICON_LOAD_FAILED StandardError.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewLexiconLoadFailedError(fmt.Errorf("read lexicon registry: %w", err))
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(registrySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, apperrors.NewLexiconLoadFailedError(fmt.Errorf("validate lexicon registry: %w", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, apperrors.NewLexiconLoadFailedError(fmt.Errorf("lexicon registry failed schema validation: %v", errs))
	}

	var override Lexicon
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, apperrors.NewLexiconLoadFailedError(fmt.Errorf("parse lexicon registry: %w", err))
	}

	lex := Default()
	merge(&lex.InventoryKeywords, override.InventoryKeywords)
	merge(&lex.CatalogingKeywords, override.CatalogingKeywords)
	merge(&lex.SearchVerbs, override.SearchVerbs)
	merge(&lex.UpdateVerbs, override.UpdateVerbs)
	merge(&lex.DeleteVerbs, override.DeleteVerbs)
	merge(&lex.AnalyticsKeywords, override.AnalyticsKeywords)
	merge(&lex.HelpKeywords, override.HelpKeywords)
	merge(&lex.ExportKeywords, override.ExportKeywords)
	merge(&lex.BatchKeywords, override.BatchKeywords)
	if len(override.ConditionSynonyms) > 0 {
		lex.ConditionSynonyms = override.ConditionSynonyms
	}
	return lex, nil
}

func merge(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}
