// internal/service/service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-nlu/internal/common/cache"
	apperrors "inventory-nlu/internal/common/errors"
	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/models"
	"inventory-nlu/internal/nlu/detector"
	"inventory-nlu/internal/nlu/extractor"
	"inventory-nlu/internal/nlu/lexicon"
	"inventory-nlu/internal/nlu/parser"
)

func newTestService(t *testing.T, resultCache *cache.ResultCache) *Service {
	t.Helper()
	log := logger.NewTestLogger(t)
	lex := lexicon.Default()
	ext := extractor.New(lex, extractor.DefaultWeights(), log)
	det := detector.New(lex, ext, log)
	p := parser.New(parser.DefaultConfig(), log)
	return New(det, ext, p, resultCache, nil, log)
}

func TestService_DetectIntent(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	t.Run("manual entry fields are flattened", func(t *testing.T) {
		out := svc.DetectIntent(ctx, DetectIntentInput{
			Message: "Add book: Atomic Habits by James Clear price ₹299 qty 5",
		})
		assert.NotEmpty(t, out.RequestID)
		assert.Equal(t, models.KindManualBookEntry, out.Intent)
		assert.Equal(t, "Atomic Habits", out.Title)
		assert.Equal(t, "James Clear", out.Author)
		require.NotNil(t, out.Price)
		assert.InDelta(t, 299, *out.Price, 0.001)
	})

	t.Run("regular chat keeps the message verbatim", func(t *testing.T) {
		msg := "  hello there  "
		out := svc.DetectIntent(ctx, DetectIntentInput{Message: msg})
		assert.Equal(t, models.KindRegularChat, out.Intent)
		assert.Equal(t, msg, out.Message)
	})

	t.Run("search fields are flattened", func(t *testing.T) {
		out := svc.DetectIntent(ctx, DetectIntentInput{Message: "Find books by James Clear"})
		assert.Equal(t, models.KindInventorySearch, out.Intent)
		assert.Equal(t, models.SearchByAuthor, out.SearchType)
		assert.Equal(t, "James Clear", out.Query)
	})

	t.Run("request ids are unique", func(t *testing.T) {
		a := svc.DetectIntent(ctx, DetectIntentInput{Message: "hi"})
		b := svc.DetectIntent(ctx, DetectIntentInput{Message: "hi"})
		assert.NotEqual(t, a.RequestID, b.RequestID)
	})
}

func TestService_ParseResponse(t *testing.T) {
	ctx := context.Background()
	raw := "---\n1. The Alchemist\n2. Paulo Coelho\n---"

	t.Run("without cache", func(t *testing.T) {
		svc := newTestService(t, nil)
		out := svc.ParseResponse(ctx, ParseResponseInput{Response: raw})
		require.True(t, out.Success)
		assert.False(t, out.CacheHit)
		require.Len(t, out.Books, 1)
		assert.Equal(t, "The Alchemist", out.Books[0].EnglishTitle)
	})

	t.Run("second call hits the cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		resultCache := cache.NewWithClient(client, time.Hour, logger.NewTestLogger(t))
		svc := newTestService(t, resultCache)

		first := svc.ParseResponse(ctx, ParseResponseInput{Response: raw})
		require.True(t, first.Success)
		assert.False(t, first.CacheHit)

		second := svc.ParseResponse(ctx, ParseResponseInput{Response: raw})
		require.True(t, second.Success)
		assert.True(t, second.CacheHit)
		assert.Equal(t, first.Books, second.Books)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		resultCache := cache.NewWithClient(client, time.Hour, logger.NewTestLogger(t))
		svc := newTestService(t, resultCache)

		out := svc.ParseResponse(ctx, ParseResponseInput{Response: "no books here"})
		assert.False(t, out.Success)
		assert.NotEmpty(t, out.ErrorMessage)

		again := svc.ParseResponse(ctx, ParseResponseInput{Response: "no books here"})
		assert.False(t, again.CacheHit)
	})

	t.Run("failures carry a standardized error code", func(t *testing.T) {
		svc := newTestService(t, nil)

		empty := svc.ParseResponse(ctx, ParseResponseInput{Response: "   \n "})
		assert.False(t, empty.Success)
		assert.Equal(t, string(apperrors.ErrCodeEmptyOracleResponse), empty.ErrorCode)

		garbage := svc.ParseResponse(ctx, ParseResponseInput{Response: "no books here"})
		assert.False(t, garbage.Success)
		assert.Equal(t, string(apperrors.ErrCodeOracleParseFailed), garbage.ErrorCode)

		parsed := svc.ParseResponse(ctx, ParseResponseInput{Response: raw})
		assert.True(t, parsed.Success)
		assert.Empty(t, parsed.ErrorCode)
	})
}

func TestService_ExtractBook(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	t.Run("valid record", func(t *testing.T) {
		out := svc.ExtractBook(ctx, ExtractBookInput{
			Message: "title: Deep Work author: Cal Newport price ₹450",
		})
		assert.Equal(t, "Deep Work", out.Book.Title)
		assert.Equal(t, "Cal Newport", out.Book.Author)
		assert.Empty(t, out.Violations)
	})

	t.Run("violations reported", func(t *testing.T) {
		out := svc.ExtractBook(ctx, ExtractBookInput{Message: "just chatting"})
		assert.Contains(t, out.Violations, "title is blank")
		assert.Contains(t, out.Violations, "author is blank")
		assert.Equal(t, string(apperrors.ErrCodeBookValidationFailed), out.ErrorCode)
	})
}
