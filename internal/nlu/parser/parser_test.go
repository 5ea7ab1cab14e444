// internal/nlu/parser/parser_test.go
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/models"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return New(DefaultConfig(), logger.NewTestLogger(t))
}

const standardResponse = `Here are the books I can see:
---
1. The Alchemist
2. Paulo Coelho
3. ಆಲ್ಕೆಮಿಸ್ಟ್
4. ಪಾವ್ಲೊ ಕೊಯ್ಲೊ
---
1. Atomic Habits
2. James Clear
---
`

func TestParseResponse_Standard(t *testing.T) {
	p := newTestParser(t)

	result := p.ParseResponse(standardResponse)
	require.True(t, result.Success)
	require.Len(t, result.Books, 2)

	first := result.Books[0]
	assert.Equal(t, "The Alchemist", first.EnglishTitle)
	assert.Equal(t, "Paulo Coelho", first.EnglishAuthor)
	assert.Equal(t, "ಆಲ್ಕೆಮಿಸ್ಟ್", first.KannadaTitle)
	assert.Equal(t, "ಪಾವ್ಲೊ ಕೊಯ್ಲೊ", first.KannadaAuthor)
	assert.Equal(t, models.MethodStandard, first.Method)
	// All four fields in the expected format scores high confidence.
	assert.Greater(t, first.Confidence, 0.8)
	assert.Empty(t, first.Flags)

	second := result.Books[1]
	assert.Equal(t, "Atomic Habits", second.EnglishTitle)
	assert.Equal(t, "James Clear", second.EnglishAuthor)
	assert.Empty(t, second.KannadaTitle)
	// English-only records land in the medium band.
	assert.GreaterOrEqual(t, second.Confidence, 0.6)
	assert.LessOrEqual(t, second.Confidence, 0.8)
}

func TestParseResponse_NumberedWithoutFences(t *testing.T) {
	p := newTestParser(t)

	result := p.ParseResponse(`1. Deep Work
2. Cal Newport
1. Sapiens
2. Yuval Noah Harari`)
	require.True(t, result.Success)
	require.Len(t, result.Books, 2)
	assert.Equal(t, models.MethodAlternative1, result.Books[0].Method)
	assert.Equal(t, "Deep Work", result.Books[0].EnglishTitle)
	assert.Equal(t, "Sapiens", result.Books[1].EnglishTitle)
	assert.Equal(t, "Yuval Noah Harari", result.Books[1].EnglishAuthor)
}

func TestParseResponse_Labeled(t *testing.T) {
	p := newTestParser(t)

	result := p.ParseResponse(`Title: Deep Work
Author: Cal Newport
Kannada Title: ಡೀಪ್ ವರ್ಕ್
Kannada Author: ಕಾಲ್ ನ್ಯೂಪೋರ್ಟ್

Title: Sapiens
Author: Yuval Noah Harari`)
	require.True(t, result.Success)
	require.Len(t, result.Books, 2)

	first := result.Books[0]
	assert.Equal(t, models.MethodAlternative2, first.Method)
	assert.Equal(t, "Deep Work", first.EnglishTitle)
	assert.Equal(t, "Cal Newport", first.EnglishAuthor)
	assert.Equal(t, "ಡೀಪ್ ವರ್ಕ್", first.KannadaTitle)
	assert.NotEmpty(t, first.KannadaAuthor)

	second := result.Books[1]
	assert.Equal(t, "Sapiens", second.EnglishTitle)
	assert.GreaterOrEqual(t, second.Confidence, 0.6)
	assert.LessOrEqual(t, second.Confidence, 0.8)
}

func TestParseResponse_Compact(t *testing.T) {
	p := newTestParser(t)

	result := p.ParseResponse(`Book: The Alchemist by Paulo Coelho (Kannada: ಆಲ್ಕೆಮಿಸ್ಟ್ by ಪಾವ್ಲೊ ಕೊಯ್ಲೊ)
Book: Atomic Habits by James Clear`)
	require.True(t, result.Success)
	require.Len(t, result.Books, 2)
	assert.Equal(t, models.MethodAlternative3, result.Books[0].Method)
	assert.Equal(t, "The Alchemist", result.Books[0].EnglishTitle)
	assert.Equal(t, "ಆಲ್ಕೆಮಿಸ್ಟ್", result.Books[0].KannadaTitle)
	assert.Equal(t, "ಪಾವ್ಲೊ ಕೊಯ್ಲೊ", result.Books[0].KannadaAuthor)
	assert.Equal(t, "James Clear", result.Books[1].EnglishAuthor)
}

func TestParseResponse_FreeTextFallback(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name           string
		raw            string
		expectedTitle  string
		expectedAuthor string
	}{
		{
			"trailing prose stays out of the name",
			`I can see "The Power of Now" by Eckhart Tolle on the shelf.`,
			"The Power of Now", "Eckhart Tolle",
		},
		{
			"initials survive in the author",
			`I can see "The Hobbit" by J.R.R. Tolkien on the table.`,
			"The Hobbit", "J.R.R. Tolkien",
		},
		{
			"two-letter initials",
			`This looks like "Harry Potter" by J.K. Rowling.`,
			"Harry Potter", "J.K. Rowling",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.ParseResponse(tt.raw)
			require.True(t, result.Success)
			require.Len(t, result.Books, 1)

			book := result.Books[0]
			assert.Equal(t, models.MethodFallback, book.Method)
			assert.Equal(t, tt.expectedTitle, book.EnglishTitle)
			assert.Equal(t, tt.expectedAuthor, book.EnglishAuthor)
			assert.Less(t, book.Confidence, 0.6)
		})
	}
}

func TestParseResponse_Failures(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name          string
		raw           string
		expectedError string
	}{
		{"empty input", "", "Empty AI response"},
		{"whitespace only", "   \n\t ", "Empty AI response"},
		{"no book shape", "I could not identify any books in this image.", "Response did not match any known book format"},
		{"delimiters without records", "---\nnothing here\n---", "Response did not match any known book format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.ParseResponse(tt.raw)
			assert.False(t, result.Success)
			assert.Empty(t, result.Books)
			assert.Equal(t, tt.expectedError, result.ErrorMessage)
		})
	}
}

func TestParseResponse_ShortFieldsFlaggedNotDropped(t *testing.T) {
	p := newTestParser(t)

	result := p.ParseResponse("Title: It\nAuthor: K")
	require.True(t, result.Success)
	require.Len(t, result.Books, 1)

	book := result.Books[0]
	assert.Equal(t, "It", book.EnglishTitle)
	assert.Equal(t, "K", book.EnglishAuthor)
	assert.Contains(t, book.Flags, "title is suspiciously short")
	assert.Contains(t, book.Flags, "author is suspiciously short")
}

func TestParseResponse_MalformedBlockSkipped(t *testing.T) {
	p := newTestParser(t)

	// The second block lacks an author line and must be dropped without
	// affecting the first.
	result := p.ParseResponse(`---
1. The Alchemist
2. Paulo Coelho
---
1. Orphan Title
---
`)
	require.True(t, result.Success)
	require.Len(t, result.Books, 1)
	assert.Equal(t, "The Alchemist", result.Books[0].EnglishTitle)
}

func TestParseResponse_StrategyOrder(t *testing.T) {
	p := newTestParser(t)

	// Delimited input must parse as the standard format even though the
	// labeled strategy could also read it.
	result := p.ParseResponse(`---
1. Title: The Alchemist
2. Author: Paulo Coelho
---
`)
	require.True(t, result.Success)
	require.Len(t, result.Books, 1)
	assert.Equal(t, models.MethodStandard, result.Books[0].Method)
	assert.Equal(t, "The Alchemist", result.Books[0].EnglishTitle)
	assert.Equal(t, "Paulo Coelho", result.Books[0].EnglishAuthor)
}
