// internal/service/service.go

// Package service fronts the NLU pipeline: it assigns request IDs, records
// metrics, and consults the parse-result cache before delegating to the
// pure detector, extractor, and parser.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"inventory-nlu/internal/common/cache"
	apperrors "inventory-nlu/internal/common/errors"
	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/common/metrics"
	"inventory-nlu/internal/common/observability"
	"inventory-nlu/internal/models"
	"inventory-nlu/internal/nlu/detector"
	"inventory-nlu/internal/nlu/extractor"
	"inventory-nlu/internal/nlu/parser"
)

// Service wires the pipeline components together.
type Service struct {
	detector *detector.Detector
	ext      *extractor.Extractor
	parser   *parser.Parser
	cache    *cache.ResultCache
	obs      *observability.Observability
	logger   logger.Logger
}

// New builds the service. cache and obs may be nil.
func New(
	det *detector.Detector,
	ext *extractor.Extractor,
	p *parser.Parser,
	resultCache *cache.ResultCache,
	obs *observability.Observability,
	log logger.Logger,
) *Service {
	return &Service{
		detector: det,
		ext:      ext,
		parser:   p,
		cache:    resultCache,
		obs:      obs,
		logger:   log.With(map[string]interface{}{"component": "service"}),
	}
}

// DetectIntent classifies one user message.
func (s *Service) DetectIntent(ctx context.Context, input DetectIntentInput) DetectIntentOutput {
	requestID := uuid.New().String()
	start := time.Now()

	intent := s.detector.DetectIntent(input.Message, input.HasImage)
	kind := intent.Kind()

	metrics.IntentsDetected.WithLabelValues(string(kind)).Inc()
	metrics.IntentDetectionDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	if s.obs != nil {
		s.obs.RecordRequestProcessed(ctx, "detect_intent", string(kind))
		s.obs.RecordRequestDuration(ctx, time.Since(start), "detect_intent")
	}

	s.logger.Info("intent detected", map[string]interface{}{
		"request_id": requestID,
		"intent":     string(kind),
		"has_image":  input.HasImage,
	})

	return flattenIntent(requestID, intent)
}

// ParseResponse parses one oracle response, consulting the cache first.
func (s *Service) ParseResponse(ctx context.Context, input ParseResponseInput) ParseResponseOutput {
	requestID := uuid.New().String()
	start := time.Now()

	if result, ok := s.cache.Get(ctx, input.Response); ok {
		s.logger.Debug("parse served from cache", map[string]interface{}{
			"request_id": requestID,
		})
		return ParseResponseOutput{
			RequestID:    requestID,
			Success:      result.Success,
			Books:        result.Books,
			ErrorMessage: result.ErrorMessage,
			CacheHit:     true,
		}
	}

	result := s.parser.ParseResponse(input.Response)

	outcome := "failure"
	method := "none"
	var parseErr *apperrors.StandardError
	if result.Success {
		outcome = "success"
		method = string(result.Books[0].Method)
		metrics.BooksParsed.Add(float64(len(result.Books)))
		s.cache.Set(ctx, input.Response, result)
	} else {
		if strings.TrimSpace(input.Response) == "" {
			parseErr = apperrors.NewEmptyOracleResponseError()
		} else {
			parseErr = apperrors.NewOracleParseFailedError(result.ErrorMessage)
		}
		s.logger.WithError(parseErr).Warn("oracle response unparseable", map[string]interface{}{
			"request_id": requestID,
		})
	}
	metrics.ResponsesParsed.WithLabelValues(method, outcome).Inc()
	metrics.ResponseParseDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if s.obs != nil {
		s.obs.RecordRequestProcessed(ctx, "parse_response", outcome)
		s.obs.RecordRequestDuration(ctx, time.Since(start), "parse_response")
	}

	s.logger.Info("oracle response parsed", map[string]interface{}{
		"request_id": requestID,
		"outcome":    outcome,
		"books":      len(result.Books),
	})

	out := ParseResponseOutput{
		RequestID:    requestID,
		Success:      result.Success,
		Books:        result.Books,
		ErrorMessage: result.ErrorMessage,
	}
	if parseErr != nil {
		out.ErrorCode = string(parseErr.Code)
	}
	return out
}

// ExtractBook runs field extraction and validation on one message without
// classifying it.
func (s *Service) ExtractBook(ctx context.Context, input ExtractBookInput) ExtractBookOutput {
	requestID := uuid.New().String()
	start := time.Now()

	book := s.ext.ExtractBookInfo(input.Message)
	violations := s.ext.ValidateBookInfo(book)

	if s.obs != nil {
		s.obs.RecordRequestProcessed(ctx, "extract_book", outcomeFor(len(violations) == 0))
		s.obs.RecordRequestDuration(ctx, time.Since(start), "extract_book")
	}

	out := ExtractBookOutput{
		RequestID:  requestID,
		Book:       book,
		Violations: violations,
	}
	if len(violations) > 0 {
		vErr := apperrors.NewBookValidationFailedError(strings.Join(violations, "; "))
		s.logger.WithError(vErr).Info("extracted book failed validation", map[string]interface{}{
			"request_id": requestID,
		})
		out.ErrorCode = string(vErr.Code)
	}
	return out
}

func outcomeFor(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// flattenIntent projects the intent sum type onto the transport shape.
func flattenIntent(requestID string, intent models.Intent) DetectIntentOutput {
	out := DetectIntentOutput{
		RequestID: requestID,
		Intent:    intent.Kind(),
		Message:   intent.Message(),
	}
	switch it := intent.(type) {
	case models.BookCataloging:
		out.HasImage = it.HasImage
	case models.ManualBookEntry:
		out.Title = it.Title
		out.Author = it.Author
		out.Price = it.Price
		out.Quantity = it.Quantity
		out.Location = it.Location
	case models.InventorySearch:
		out.Query = it.Query
		out.SearchType = it.SearchType
	case models.UpdateBook:
		out.UpdateType = it.UpdateType
		out.BookIdentifier = it.BookIdentifier
		out.NewValue = it.NewValue
	case models.DeleteBook:
		out.BookIdentifier = it.BookIdentifier
	case models.InventoryAnalytics:
		out.AnalyticsType = it.AnalyticsType
	case models.InventoryExport:
		out.ExportType = it.ExportType
	case models.BatchOperation:
		out.OperationType = it.OperationType
	}
	return out
}
