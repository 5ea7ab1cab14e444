// internal/service/models.go
package service

import "inventory-nlu/internal/models"

// DetectIntentInput is the input for one intent detection request.
type DetectIntentInput struct {
	Message  string `json:"message"`
	HasImage bool   `json:"hasImage"`
}

// DetectIntentOutput flattens the detected intent for transport. Only the
// fields relevant to the detected kind are populated.
type DetectIntentOutput struct {
	RequestID string            `json:"requestId"`
	Intent    models.IntentKind `json:"intent"`
	Message   string            `json:"message"`

	HasImage bool `json:"hasImage,omitempty"`

	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Location string   `json:"location,omitempty"`

	Query      string            `json:"query,omitempty"`
	SearchType models.SearchType `json:"searchType,omitempty"`

	UpdateType     models.UpdateType `json:"updateType,omitempty"`
	BookIdentifier string            `json:"bookIdentifier,omitempty"`
	NewValue       string            `json:"newValue,omitempty"`

	AnalyticsType models.AnalyticsType      `json:"analyticsType,omitempty"`
	ExportType    models.ExportType         `json:"exportType,omitempty"`
	OperationType models.BatchOperationType `json:"operationType,omitempty"`
}

// ParseResponseInput is the input for one oracle-response parse request.
type ParseResponseInput struct {
	Response string `json:"response"`
}

// ParseResponseOutput is the parse result plus request bookkeeping. On
// failure, ErrorCode carries the standardized code (EMPTY_ORACLE_RESPONSE or
// ORACLE_PARSE_FAILED) alongside the human-readable ErrorMessage.
type ParseResponseOutput struct {
	RequestID    string              `json:"requestId"`
	Success      bool                `json:"success"`
	Books        []models.ParsedBook `json:"books,omitempty"`
	ErrorCode    string              `json:"errorCode,omitempty"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
	CacheHit     bool                `json:"cacheHit"`
}

// ExtractBookInput is the input for a standalone field-extraction request.
type ExtractBookInput struct {
	Message string `json:"message"`
}

// ExtractBookOutput carries the extracted fields and their validation state.
// ErrorCode is BOOK_VALIDATION_FAILED whenever Violations is non-empty.
type ExtractBookOutput struct {
	RequestID  string                   `json:"requestId"`
	Book       models.ExtractedBookInfo `json:"book"`
	Violations []string                 `json:"violations,omitempty"`
	ErrorCode  string                   `json:"errorCode,omitempty"`
}
